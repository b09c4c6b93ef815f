package app

import "fmt"

// NativeExitError reports a non-zero return from a native entry point.
type NativeExitError struct {
	Code int
}

func (e *NativeExitError) Error() string {
	return fmt.Sprintf("native entry point exited with code %d", e.Code)
}
