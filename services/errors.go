package services

// DefaultErrorMessage is substituted when an unexpected error carries no
// message of its own.
const DefaultErrorMessage = "Something went wrong"

// Error is the unexpected-failure tier: storage faults, invalid file
// types. It carries a status code for the HTTP layer to translate.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return DefaultErrorMessage
	}
	return e.Message
}

func NewError(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}
