package dispatch

import "fmt"

// DispatchSendError is the failure to send the pageview for a single record
type DispatchSendError struct {
	// Index is the position of the record in the dispatched slice
	Index int
	Err   error
}

func (e *DispatchSendError) Error() string {
	return fmt.Sprintf("failed to send record %d: %s", e.Index, e.Err.Error())
}

func (e *DispatchSendError) Unwrap() error {
	return e.Err
}
