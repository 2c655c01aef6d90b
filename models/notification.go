package models

// Severity of a user-facing notification
type Severity string

const (
	SeverityError   Severity = "error"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
)

// Notification is a message pushed to the presentation layer
type Notification struct {
	ID      string   `json:"id"`
	Message string   `json:"message"`
	Type    Severity `json:"type"`
}
