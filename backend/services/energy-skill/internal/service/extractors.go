package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"energyskill/backend/services/energy-skill/internal/models"
)

const messageMissingReading = "I couldn't read your %s from the latest system data."

// Metric projects one reading out of a snapshot and phrases it.
type Metric struct {
	Name     string
	Reading  func(*models.SystemData) json.Number
	Sentence string
}

var (
	BatteryMetric = Metric{
		Name:     "battery level",
		Reading:  func(d *models.SystemData) json.Number { return d.Battery.Percent },
		Sentence: "Your battery is %s%% full.",
	}
	GridVoltageMetric = Metric{
		Name:     "grid voltage",
		Reading:  func(d *models.SystemData) json.Number { return d.Grid.Voltage },
		Sentence: "The grid is at %s volts.",
	}
	SolarPowerMetric = Metric{
		Name:     "solar generation",
		Reading:  func(d *models.SystemData) json.Number { return d.Solar.Power },
		Sentence: "You are currently generating %s watts.",
	}
	ConsumptionMetric = Metric{
		Name:     "consumption",
		Reading:  func(d *models.SystemData) json.Number { return d.Consumption },
		Sentence: "You are currently using %s watts.",
	}
	// StatusMetric reports current consumption.
	StatusMetric = Metric{
		Name:     "status",
		Reading:  func(d *models.SystemData) json.Number { return d.Consumption },
		Sentence: "You are currently using %s watts.",
	}
)

// Speak renders the outcome for this metric. A failed outcome is spoken verbatim. The reading
// is spoken as the number text the API sent, with exponent forms written out in decimal.
func (m Metric) Speak(outcome models.Outcome) string {
	if msg, failed := outcome.Failure(); failed {
		return msg
	}
	data, _ := outcome.Snapshot()
	value := m.Reading(data)
	if value == "" {
		return fmt.Sprintf(messageMissingReading, m.Name)
	}
	return fmt.Sprintf(m.Sentence, decimal(value))
}

func decimal(n json.Number) string {
	text := n.String()
	if !strings.ContainsAny(text, "eE") {
		return text
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return text
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
