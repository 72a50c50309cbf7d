package utils

// Assert panics if condition is false. It is used for invariants that a
// caller violating the package's contract (not a recoverable runtime
// condition) would trip.
func Assert(condition bool, message ...string) {
	if !condition {
		if len(message) == 1 {
			panic(message[0])
		}
		panic("failed assertion")
	}
}
