package services

import "log"

// Analytics is the event sink collaborator: a named event plus one string
// payload. The delivery backend is external; the log sink stands in when no
// real sink is wired.
type Analytics interface {
	Event(name, payload string)
}

type LogAnalytics struct{}

func (LogAnalytics) Event(name, payload string) {
	log.Printf("analytics: %s %s", name, payload)
}
