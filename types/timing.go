package types

import (
	"strings"
	"time"
)

type Timing struct {
	Start time.Time
	End   time.Time
}

func (t *Timing) Duration() time.Duration {
	return t.End.Sub(t.Start)
}

// TryStart sets the start time if it has not already been set
func (t *Timing) TryStart() {
	if t.Start.IsZero() {
		t.Start = time.Now()
	}
}

func (t *Timing) SetEnd() {
	t.End = time.Now()
}

// TimingCollection is an ordered list of named phase timings
type TimingCollection struct {
	names   []string
	timings map[string]*Timing
}

func NewTimingCollection() *TimingCollection {
	return &TimingCollection{timings: make(map[string]*Timing)}
}

// Phase returns the timing for the given phase, adding it if necessary
func (c *TimingCollection) Phase(name string) *Timing {
	if t, ok := c.timings[name]; ok {
		return t
	}
	t := &Timing{}
	c.names = append(c.names, name)
	c.timings[name] = t
	return t
}

// Durations returns the duration of each completed phase, keyed by phase name
func (c *TimingCollection) Durations() map[string]time.Duration {
	res := make(map[string]time.Duration, len(c.names))
	for _, name := range c.names {
		t := c.timings[name]
		if t.End.IsZero() {
			continue
		}
		res[name] = t.Duration()
	}
	return res
}

func (c *TimingCollection) String() string {
	var sb strings.Builder
	sb.WriteString("Timing:\n")
	// get max label length
	maxLabelLen := 0
	for _, k := range c.names {
		if len(k) > maxLabelLen {
			maxLabelLen = len(k)
		}
	}

	for _, k := range c.names {
		sb.WriteString(k)
		sb.WriteString(":")
		// pad label to max length
		for i := len(k); i < maxLabelLen; i++ {
			sb.WriteString(" ")
		}
		sb.WriteString(" ")
		sb.WriteString(c.timings[k].Duration().String())
		sb.WriteString("\n")
	}
	return sb.String()
}
