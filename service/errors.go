package service

import "fmt"

// InputError reports a request the caller can fix: missing or blank
// required fields, malformed encoded documents, out-of-range thresholds.
// Detected before any comparison work begins.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string {
	return e.Msg
}

func inputErrorf(format string, args ...interface{}) *InputError {
	return &InputError{Msg: fmt.Sprintf(format, args...)}
}

// InternalError reports an unexpected failure inside the pipeline, tagged
// with the failing stage. The comparison is all-or-nothing: no partial
// result survives one of these.
type InternalError struct {
	Stage string
	Err   error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}
