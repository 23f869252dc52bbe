package handler

import "fmt"

// ResultStatus is the outcome of an action.
type ResultStatus uint8

const (
	StatusOK        ResultStatus = iota // the action ran and edited or reported
	StatusNoOp                          // nothing needed changing
	StatusError                         // the action failed
	StatusCancelled                     // a hook or the user stopped it
)

var statusNames = [...]string{
	StatusOK:        "ok",
	StatusNoOp:      "no-op",
	StatusError:     "error",
	StatusCancelled: "cancelled",
}

// String returns the status name.
func (s ResultStatus) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// Result is what a handler reports back for one action.
type Result struct {
	Status  ResultStatus
	Error   error
	Message string

	// RedrawLines lists lines whose text may have changed.
	RedrawLines []uint32

	// Data carries handler-specific values such as plans and previews.
	Data map[string]any
}

// IsOK reports whether the action ran.
func (r Result) IsOK() bool {
	return r.Status == StatusOK
}

// IsError reports whether the action failed.
func (r Result) IsError() bool {
	return r.Status == StatusError
}

// Success, NoOp and Cancelled build bare results with that status.
func Success() Result { return Result{Status: StatusOK} }

func NoOp() Result { return Result{Status: StatusNoOp} }

func Cancelled() Result { return Result{Status: StatusCancelled} }

// NoOpWithMessage reports that nothing changed and why.
func NoOpWithMessage(msg string) Result {
	return Result{Status: StatusNoOp, Message: msg}
}

// Error wraps err in a failed result.
func Error(err error) Result {
	return Result{Status: StatusError, Error: err}
}

// Errorf is Error with a formatted error.
func Errorf(format string, args ...any) Result {
	return Error(fmt.Errorf(format, args...))
}

// WithRedrawLines appends lines to the result's redraw set.
func (r Result) WithRedrawLines(lines ...uint32) Result {
	r.RedrawLines = append(r.RedrawLines, lines...)
	return r
}

// WithData returns a copy of r with key set. The original's map is not
// modified.
func (r Result) WithData(key string, value any) Result {
	data := make(map[string]any, len(r.Data)+1)
	for k, v := range r.Data {
		data[k] = v
	}
	data[key] = value
	r.Data = data
	return r
}

// GetData returns the value stored under key.
func (r Result) GetData(key string) (any, bool) {
	v, ok := r.Data[key]
	return v, ok
}

// GetDataBool returns the bool stored under key, or false.
func (r Result) GetDataBool(key string) bool {
	b, _ := r.Data[key].(bool)
	return b
}
