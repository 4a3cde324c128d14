package api

import (
	"errors"
	"strings"
)

// Kind classifies a normalized API failure. The kind is derived from the HTTP
// status first; message inspection is only used for the forced-logout trigger
// (see Client.handleErrorResponse).
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindValidation
	KindUnauthorized
	KindNotFound
)

const genericErrorMessage = "an unknown error occurred"

// Error is the single error shape every gateway call resolves to.
// Message prefers the server-supplied message, then transport-level text,
// then a generic fallback.
type Error struct {
	Kind    Kind
	Status  int // 0 when the request never reached the server
	Message string
}

func (e *Error) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return genericErrorMessage
	}
	return e.Message
}

// CredentialInvalid reports whether this error tore down the session (the
// gateway's forced-logout hook fires on exactly these responses).
func (e *Error) CredentialInvalid() bool {
	return credentialInvalid(e.Status, e.Message)
}

// AsError extracts the normalized gateway error, if err carries one.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsUnauthorized reports whether err is a credential problem.
func IsUnauthorized(err error) bool {
	e, ok := AsError(err)
	return ok && e.Kind == KindUnauthorized
}

func kindForStatus(status int) Kind {
	switch {
	case status == 401 || status == 403:
		return KindUnauthorized
	case status == 404:
		return KindNotFound
	case status >= 400 && status < 500:
		return KindValidation
	default:
		return KindUnknown
	}
}

// credentialInvalid detects the backend's invalid/expired-token wording.
// Deliberately a substring match: the backend signals token problems in the
// message body, and other 401s (e.g. wrong password) must NOT tear down the
// session.
func credentialInvalid(status int, message string) bool {
	return status == 401 &&
		strings.Contains(message, "Invalid") &&
		strings.Contains(message, "token")
}
