package models

// Request types sent by the voice platform.
const (
	RequestTypeLaunch       = "LaunchRequest"
	RequestTypeIntent       = "IntentRequest"
	RequestTypeSessionEnded = "SessionEndedRequest"
)

// Event is the inbound voice-platform request. Only the fields the skill reads are decoded.
type Event struct {
	Version string       `json:"version,omitempty"`
	Context EventContext `json:"context"`
	Request EventRequest `json:"request"`
}

// EventContext carries the platform system state.
type EventContext struct {
	System SystemContext `json:"System"`
}

// SystemContext holds the linked user.
type SystemContext struct {
	User User `json:"user"`
}

// User is the platform user; AccessToken is set only once the account has been linked.
type User struct {
	UserID      string `json:"userId,omitempty"`
	AccessToken string `json:"accessToken,omitempty"`
}

// EventRequest classifies the invocation.
type EventRequest struct {
	Type      string  `json:"type"`
	RequestID string  `json:"requestId,omitempty"`
	Locale    string  `json:"locale,omitempty"`
	Intent    *Intent `json:"intent,omitempty"`
}

// Intent is present for IntentRequest only.
type Intent struct {
	Name string `json:"name"`
}

// IntentName returns the intent name, or "" when the request carries none.
func (e Event) IntentName() string {
	if e.Request.Intent == nil {
		return ""
	}
	return e.Request.Intent.Name
}
