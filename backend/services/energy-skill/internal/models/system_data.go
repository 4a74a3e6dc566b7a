package models

import "encoding/json"

// CommunicationDevice is a dongle on the account together with the inverter behind it.
type CommunicationDevice struct {
	SerialNumber string          `json:"serial_number"`
	Type         string          `json:"type,omitempty"`
	Inverter     InverterSummary `json:"inverter"`
}

// InverterSummary identifies the inverter queried for telemetry.
type InverterSummary struct {
	Serial string `json:"serial"`
	Status string `json:"status,omitempty"`
}

// SystemData is the latest telemetry snapshot of an inverter. Readings keep the number text
// exactly as received; a missing reading is an empty Number.
type SystemData struct {
	Time        string      `json:"time,omitempty"`
	Status      string      `json:"status,omitempty"`
	Battery     Battery     `json:"battery"`
	Grid        Grid        `json:"grid"`
	Solar       Solar       `json:"solar"`
	Consumption json.Number `json:"consumption"`
}

type Battery struct {
	Percent json.Number `json:"percent"`
	Power   json.Number `json:"power,omitempty"`
}

type Grid struct {
	Voltage json.Number `json:"voltage"`
	Power   json.Number `json:"power,omitempty"`
}

type Solar struct {
	Power json.Number `json:"power"`
}

// Outcome is the result of a telemetry query: either a snapshot or a message saying why there
// is none. Exactly one of the two is set.
type Outcome struct {
	snapshot *SystemData
	message  string
}

// Succeeded wraps a snapshot.
func Succeeded(data *SystemData) Outcome {
	if data == nil {
		data = &SystemData{}
	}
	return Outcome{snapshot: data}
}

// Failed wraps a user-facing failure message.
func Failed(message string) Outcome {
	return Outcome{message: message}
}

// Snapshot returns the telemetry and true, or nil and false for a failed outcome.
func (o Outcome) Snapshot() (*SystemData, bool) {
	return o.snapshot, o.snapshot != nil
}

// Failure returns the failure message and true, or "" and false for a successful outcome.
func (o Outcome) Failure() (string, bool) {
	if o.snapshot != nil {
		return "", false
	}
	return o.message, true
}
