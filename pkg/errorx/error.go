package errorx

import "fmt"

type Error struct {
	Code    Code
	Message string

	// Detail is an optional object sent back to client in the data field of
	// the error response.
	Detail any
}

func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

func (e Error) Error() string {
	return e.Message
}

func (e Error) WithDetail(detail any) Error {
	e.Detail = detail
	return e
}
