package assert

import "github.com/oomph-ac/fpcontroller/oerror"

// IsTrue panics with a ControllerError if ok is false.
func IsTrue(ok bool, message string, args ...interface{}) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}
