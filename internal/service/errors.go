package service

// Error is a service failure with a stable code and a human message.
// Values are comparable so callers can match them with errors.Is.
type Error struct {
	Code    string
	Message string
}

func (e Error) Error() string {
	return e.Message
}

// NewError builds an Error from a code and message.
func NewError(code, message string) Error {
	return Error{Code: code, Message: message}
}

// Sentinel errors for the score service. Handlers map these onto HTTP
// statuses; the ErrUserRequired message is part of the wire contract.
var (
	ErrUserRequired     = NewError("user_required", "User ID is required")
	ErrStoreUnavailable = NewError("store_unavailable", "score store unavailable")
)
