package models

const (
	envelopeVersion     = "1.0"
	SpeechTypePlain     = "PlainText"
	CardTypeLinkAccount = "LinkAccount"
)

// Envelope is the response document returned to the voice platform.
type Envelope struct {
	Version           string                 `json:"version"`
	SessionAttributes map[string]interface{} `json:"sessionAttributes"`
	Response          SpeechletResponse      `json:"response"`
}

// SpeechletResponse carries the spoken output and session state.
type SpeechletResponse struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech,omitempty"`
	Card             *Card         `json:"card,omitempty"`
	ShouldEndSession bool          `json:"shouldEndSession"`
}

// OutputSpeech is plain text to be spoken.
type OutputSpeech struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Card is shown in the companion app.
type Card struct {
	Type string `json:"type"`
}

// NewEnvelope wraps a speechlet response with the fixed version and empty session attributes.
func NewEnvelope(resp SpeechletResponse) Envelope {
	return Envelope{
		Version:           envelopeVersion,
		SessionAttributes: map[string]interface{}{},
		Response:          resp,
	}
}

// Text returns the spoken text, or "" when there is none.
func (e Envelope) Text() string {
	if e.Response.OutputSpeech == nil {
		return ""
	}
	return e.Response.OutputSpeech.Text
}
