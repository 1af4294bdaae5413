package utils

import "errors"

// Failure taxonomy shared by the storage layer, the remote store client and
// the HTTP API clients. Controllers map these to stable UI-facing codes
// instead of matching on error text.
var (
	ErrRemoteUnavailable = errors.New("remote store unavailable")
	ErrLocalStorage      = errors.New("local storage failure")
	ErrMalformedResponse = errors.New("malformed response")
	ErrAuthRejected      = errors.New("authentication rejected")
	ErrNotFound          = errors.New("not found")
)

// Code classifies err into one of the stable codes the UI keys off.
func Code(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrRemoteUnavailable):
		return "remote_unavailable"
	case errors.Is(err, ErrLocalStorage):
		return "local_storage_failure"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed_response"
	case errors.Is(err, ErrAuthRejected):
		return "auth_rejected"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal"
	}
}
