package assert

import (
	"errors"
	"testing"

	"github.com/oomph-ac/fpcontroller/oerror"
)

func TestIsTrue(t *testing.T) {
	IsTrue(true, "should not panic")

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Fatalf("expected error panic, got %v", r)
		}
		var cErr *oerror.ControllerError
		if !errors.As(err, &cErr) {
			t.Fatalf("expected *oerror.ControllerError, got %T", err)
		}
		if cErr.Error() != "fpcontroller: radius must be positive (got -1)" {
			t.Fatalf("unexpected message %q", cErr.Error())
		}
	}()
	IsTrue(false, "radius must be positive (got %v)", -1)
}
