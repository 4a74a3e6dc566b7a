package service

import "energyskill/backend/services/energy-skill/internal/models"

const (
	MessageNotLinked = "Hello. To use this skill, you must provide your GivEnergy API key. You can do this from the Alexa app or Amazon website."
	MessageHelp      = "Hello. For example say, 'How full is my battery?'"
)

// Speech builds a plain-text response.
func Speech(text string, endSession bool) models.Envelope {
	return models.NewEnvelope(models.SpeechletResponse{
		OutputSpeech:     &models.OutputSpeech{Type: models.SpeechTypePlain, Text: text},
		ShouldEndSession: endSession,
	})
}

// LinkAccount builds a plain-text response with the account-linking card.
func LinkAccount(text string, endSession bool) models.Envelope {
	return models.NewEnvelope(models.SpeechletResponse{
		OutputSpeech:     &models.OutputSpeech{Type: models.SpeechTypePlain, Text: text},
		Card:             &models.Card{Type: models.CardTypeLinkAccount},
		ShouldEndSession: endSession,
	})
}

// Acknowledge ends the session without speaking.
func Acknowledge() models.Envelope {
	return models.NewEnvelope(models.SpeechletResponse{ShouldEndSession: true})
}

// NotLinked asks the user to link their account.
func NotLinked() models.Envelope {
	return LinkAccount(MessageNotLinked, true)
}

// Help keeps the session open with an example question.
func Help() models.Envelope {
	return Speech(MessageHelp, false)
}
