package assert

import "fmt"

// NotNil panics when v is nil; used to guard singleton construction.
func NotNil(v interface{}) {
	if v == nil {
		panic("assert: unexpected nil value")
	}
}

// Must panics on error during startup-only wiring.
func Must(err error) {
	if err != nil {
		panic(fmt.Sprintf("assert: %v", err))
	}
}
