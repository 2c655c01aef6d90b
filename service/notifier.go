package service

import (
	"log"

	"storefront-pricing/models"
)

// Notifier receives user-facing confirmation and rejection messages
type Notifier interface {
	Notify(message string, severity models.Severity)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(message string, severity models.Severity)

func (f NotifierFunc) Notify(message string, severity models.Severity) {
	f(message, severity)
}

// LogNotifier writes notifications to the process log
type LogNotifier struct{}

func (LogNotifier) Notify(message string, severity models.Severity) {
	switch severity {
	case models.SeverityError:
		log.Printf("❌ Notify: %s", message)
	case models.SeverityWarning:
		log.Printf("⚠️ Notify: %s", message)
	default:
		log.Printf("✅ Notify: %s", message)
	}
}

// MultiNotifier fans a notification out to every wrapped notifier in order
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(message string, severity models.Severity) {
	for _, n := range m {
		if n != nil {
			n.Notify(message, severity)
		}
	}
}
