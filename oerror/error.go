package oerror

import "fmt"

// ControllerError is returned for programmer errors and invalid configuration inside the controller.
type ControllerError struct {
	Err string
}

// New returns a ControllerError with a message built from the format and args given.
func New(format string, args ...interface{}) *ControllerError {
	return &ControllerError{Err: fmt.Sprintf(format, args...)}
}

func (e *ControllerError) Error() string {
	return "fpcontroller: " + e.Err
}
