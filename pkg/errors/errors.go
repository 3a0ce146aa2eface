package errors

import (
	"fmt"
	"runtime"
	"strings"
)

// Error codes by taxonomy: validation failures never reach the network,
// API errors carry the server detail when one was supplied, permission
// errors come from the capture device.
const (
	CodeValidation = 1000
	CodeAPI        = 2000
	CodeAuth       = 2001
	CodeNotFound   = 2004
	CodePermission = 3000
	CodeGeocoding  = 4000
)

// FallbackMessage is shown when the server gives no usable detail.
const FallbackMessage = "Something went wrong. Please try again."

// Error is a coded error with optional cause and stack trace.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
	Stack   string `json:"stack,omitempty"`
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(message string) *Error {
	return &Error{Message: message, Stack: captureStack()}
}

func Errorf(format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Stack: captureStack()}
}

func WithCode(code int, message string) *Error {
	return &Error{Code: code, Message: message, Stack: captureStack()}
}

func WithCodef(code int, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Stack: captureStack()}
}

func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Message: message, Err: err, Stack: captureStack()}
}

func Wrapf(err error, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return &Error{Message: fmt.Sprintf(format, args...), Err: err, Stack: captureStack()}
}

// WrapCode wraps a cause while attaching a code.
func WrapCode(code int, err error, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Err: err, Stack: captureStack()}
}

func GetCode(err error) int {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return 0
}

func GetMessage(err error) string {
	if e, ok := err.(*Error); ok {
		return e.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// IsValidation reports whether the error was raised before any request
// went out.
func IsValidation(err error) bool { return GetCode(err) == CodeValidation }

// UserMessage resolves the text to surface to the user: the coded message
// when present, else the fallback.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := err.(*Error); ok && e.Message != "" {
		return e.Message
	}
	return FallbackMessage
}

func Cause(err error) error {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Err != nil {
			err = e.Err
		} else {
			return err
		}
	}
	return err
}

func captureStack() string {
	buf := make([]byte, 1024)
	n := runtime.Stack(buf, false)
	stack := string(buf[:n])
	lines := strings.Split(stack, "\n")
	if len(lines) > 6 {
		stack = strings.Join(lines[6:], "\n")
	}
	return strings.TrimSpace(stack)
}
