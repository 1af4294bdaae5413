package controllers

import "sync"

// Login flow states. Terminal states are consumed exactly once so a re-read
// cannot re-trigger navigation.
const (
	StateIdle           = "idle"
	StateAuthenticating = "authenticating"
	StateSuccess        = "success"
	StateError          = "error"
	StateUserNotFound   = "user_not_found"
)

type flowState struct {
	state   string
	message string
}

// AuthState holds the observable login state per flow, keyed by the email the
// attempt was made with, so concurrent logins cannot observe or consume each
// other's transitions. Set publishes a transition; Consume returns the flow's
// current state and drops it if it was terminal. An unknown key reads idle.
type AuthState struct {
	mu    sync.Mutex
	flows map[string]flowState
}

func NewAuthState() *AuthState {
	return &AuthState{flows: make(map[string]flowState)}
}

func (a *AuthState) Set(key, state, message string) {
	a.mu.Lock()
	a.flows[key] = flowState{state: state, message: message}
	a.mu.Unlock()
}

func (a *AuthState) Consume(key string) (string, string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	f, ok := a.flows[key]
	if !ok {
		return StateIdle, ""
	}
	switch f.state {
	case StateSuccess, StateError, StateUserNotFound:
		delete(a.flows, key)
	}
	return f.state, f.message
}
