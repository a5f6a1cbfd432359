package dispatch

import "fmt"

type Status int

const (
	StatusSkipped Status = iota
	StatusSent
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusSent:
		return "sent"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Outcome is the result of dispatching a single record
type Outcome struct {
	Status Status
	// Err is a *DispatchSendError when Status is StatusFailed
	Err error
}

// Summary counts outcomes by status
type Summary struct {
	Sent    int
	Skipped int
	Failed  int
}

func Summarize(outcomes []Outcome) Summary {
	var s Summary
	for _, o := range outcomes {
		switch o.Status {
		case StatusSent:
			s.Sent++
		case StatusSkipped:
			s.Skipped++
		case StatusFailed:
			s.Failed++
		}
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("sent: %d, skipped: %d, failed: %d", s.Sent, s.Skipped, s.Failed)
}
