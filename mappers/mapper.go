package mappers

import (
	"context"
	"errors"

	"github.com/turbot/cloudfront-analytics-forwarder/table"
)

// ErrNoMatch is returned by a Mapper when a line does not match the expected layout
var ErrNoMatch = errors.New("line does not match log layout")

// Mapper converts a single log line into a LogRecord
type Mapper interface {
	Identifier() string
	// Map returns ErrNoMatch (possibly wrapped) if the line does not match
	Map(context.Context, string) (*table.LogRecord, error)
}
