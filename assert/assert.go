package assert

import "github.com/oomph-ac/ascent/oerror"

// IsTrue panics with the formatted message if ok is false. It guards invariants that only a
// programming error can break.
func IsTrue(ok bool, message string, args ...any) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}
