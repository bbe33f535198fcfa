package domain

import "errors"

// Error kinds reported to callers alongside the human readable message.
const (
	KindValidation    = "validation"
	KindConfiguration = "configuration"
	KindCredential    = "credential"
	KindTransport     = "transport"
	KindProvider      = "provider"
	KindTooLarge      = "too_large"
	KindUnauthorized  = "unauthorized"
	KindRateLimited   = "rate_limited"
	KindInternal      = "internal"
)

var (
	ErrValidation    = errors.New("invalid request")
	ErrConfiguration = errors.New("storage destination not configured")
	ErrCredentials   = errors.New("storage credentials unavailable")
	ErrTransport     = errors.New("transport failure")
	ErrProvider      = errors.New("storage provider rejected the request")
	ErrFileTooLarge  = errors.New("file exceeds maximum allowed size")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrRateLimited   = errors.New("too many requests")

	ErrFilenameRequired = &ValidationError{Msg: "filename required"}
	ErrFilenameTooLong  = &ValidationError{Msg: "filename too long"}
	ErrFileMissing      = &ValidationError{Msg: "file missing"}
	ErrPromptRequired   = &ValidationError{Msg: "prompt required"}
)

// ValidationError is a caller mistake. Its message is safe to return verbatim.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Is makes every ValidationError match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// KindOf classifies err into one of the Kind constants.
func KindOf(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrConfiguration):
		return KindConfiguration
	case errors.Is(err, ErrCredentials):
		return KindCredential
	case errors.Is(err, ErrTransport):
		return KindTransport
	case errors.Is(err, ErrProvider):
		return KindProvider
	case errors.Is(err, ErrFileTooLarge):
		return KindTooLarge
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrRateLimited):
		return KindRateLimited
	default:
		return KindInternal
	}
}
