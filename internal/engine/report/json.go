package report

import (
	"encoding/json"
)

// JSONFormatter renders a GateReport as pretty-printed JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format returns the GateReport as indented JSON.
func (f *JSONFormatter) Format(report GateReport) string {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		// Fallback: should never happen since GateReport is fully serializable.
		return `{"error": "failed to marshal report"}`
	}
	return string(data)
}
