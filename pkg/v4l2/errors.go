package v4l2

import "fmt"

// SetupError reports an unmet device prerequisite: kernel module not
// loaded, index not registered, or device node unusable. Setup errors
// are fatal, the caller is expected to terminate without retrying.
type SetupError struct {
	Reason string
	Err    error
}

func (e *SetupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *SetupError) Unwrap() error { return e.Err }

// NegotiationError reports that the device did not accept the
// requested output format.
type NegotiationError struct {
	Want, Got Format
}

func (e *NegotiationError) Error() string {
	return fmt.Sprintf("device declined format %v, kept %v", e.Want, e.Got)
}
