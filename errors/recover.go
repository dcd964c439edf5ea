package errors

import "fmt"

// Recover converts a panic carrying an *Error into a returned error.
// It must be deferred directly:
//
//	func decodeOne(s stream.Stream) (g *graph.Graph, err error) {
//		defer errors.Recover(&err)
//		return graph.Decode(s, cat), nil
//	}
//
// Panics with any other value are re-raised.
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(*Error); ok {
		*errp = e
		return
	}
	panic(r)
}

// Throw panics with a formatted precondition error. It is used for the
// conditions that indicate a corrupted stream or a programming error in the
// caller rather than a runtime condition.
func Throw(phase Phase, kind Kind, format string, args ...any) {
	panic(&Error{Phase: phase, Kind: kind, Detail: fmt.Sprintf(format, args...)})
}
