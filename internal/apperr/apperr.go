// Package apperr defines the typed errors surfaced through the GraphQL
// response, each carrying an extensions code the way Apollo-style clients
// expect. The types satisfy graphql-go's ResolverError so the engine copies
// the extensions into the error entry instead of flattening the message.
package apperr

import "fmt"

// Extensions codes.
const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeBadUserInput    = "BAD_USER_INPUT"
	CodeNotFound        = "NOT_FOUND"
)

// Error is a domain failure with a GraphQL extensions code. InvalidArgs
// carries the offending input when a store write was rejected.
type Error struct {
	Code        string
	Message     string
	InvalidArgs string
}

func (e *Error) Error() string {
	return e.Message
}

// Extensions implements the graphql-go ResolverError contract.
func (e *Error) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": e.Code}
	if e.InvalidArgs != "" {
		ext["invalidArgs"] = e.InvalidArgs
	}
	return ext
}

// Authentication reports a missing or invalid session where one is required.
func Authentication(msg string) *Error {
	return &Error{Code: CodeUnauthenticated, Message: msg}
}

// Validation reports input that fails a stated constraint.
func Validation(msg string) *Error {
	return &Error{Code: CodeBadUserInput, Message: msg}
}

// ValidationWithInput reports a rejected write together with the offending input.
func ValidationWithInput(msg, input string) *Error {
	return &Error{Code: CodeBadUserInput, Message: msg, InvalidArgs: input}
}

// NotFound reports a referenced entity that is absent where the operation
// requires it.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// IsCode reports whether err is an *Error with the given extensions code.
func IsCode(err error, code string) bool {
	e, ok := err.(*Error)
	return ok && e.Code == code
}
