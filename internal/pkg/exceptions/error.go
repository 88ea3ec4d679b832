package exceptions

import (
	"errors"
	"fmt"
	"medtour-service/internal/pkg/constvars"
	"runtime"
)

type CustomError struct {
	StatusCode    int        `json:"status_code"`
	Success       bool       `json:"success"`
	ClientMessage string     `json:"message"`
	DevMessage    string     `json:"dev_message,omitempty"`
	Locations     []Location `json:"locations,omitempty"`
	Err           error      `json:"-"`
}

type Location struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	FunctionName string `json:"function_name"`
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.DevMessage, e.Err.Error())
	}
	return e.DevMessage
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// BuildNewCustomError wraps err with an HTTP status and messages. When err is
// already a CustomError its status and messages win and only the caller
// location is appended.
func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	location := getLocation(3)

	var existing *CustomError
	if errors.As(err, &existing) {
		wrapped := *existing
		wrapped.Locations = append(append([]Location{}, existing.Locations...), location)
		return &wrapped
	}

	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Locations:     []Location{location},
		Err:           err,
	}
}

// StatusCodeOf reports the HTTP status carried by err, or 500 when err is not a CustomError.
func StatusCodeOf(err error) int {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.StatusCode
	}
	return constvars.StatusInternalServerError
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         "unknown",
			FunctionName: "unknown",
		}
	}
	return Location{
		File:         file,
		Line:         line,
		FunctionName: runtime.FuncForPC(pc).Name(),
	}
}
