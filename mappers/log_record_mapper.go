package mappers

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/turbot/cloudfront-analytics-forwarder/table"
)

const LogRecordMapperIdentifier = "log_record_mapper"

// index of the time_taken field, which may hold two space separated tokens
var timeTakenIndex = table.LogRecordColumns.Index("time_taken")

// LogRecordMapper maps a tab delimited CloudFront access log line to a LogRecord
//
// A line matches when it has exactly table.LogRecordFieldCount tab separated fields and
// no field is empty or contains whitespace. The time_taken field is the exception: it may be two
// tokens joined by a single space, which are kept together as one value.
type LogRecordMapper struct{}

func NewLogRecordMapper() Mapper {
	return &LogRecordMapper{}
}

func (m *LogRecordMapper) Identifier() string {
	return LogRecordMapperIdentifier
}

func (m *LogRecordMapper) Map(_ context.Context, line string) (*table.LogRecord, error) {
	line = strings.TrimSuffix(line, "\r")
	if line == "" {
		return nil, fmt.Errorf("%w: empty line", ErrNoMatch)
	}

	fields := strings.Split(line, "\t")
	if len(fields) != table.LogRecordFieldCount {
		return nil, fmt.Errorf("%w: expected %d fields, got %d", ErrNoMatch, table.LogRecordFieldCount, len(fields))
	}

	for i, f := range fields {
		if !validField(f, i == timeTakenIndex) {
			return nil, fmt.Errorf("%w: invalid value for %s", ErrNoMatch, table.LogRecordColumns[i])
		}
	}

	return table.NewLogRecordFromFields(fields)
}

func validField(f string, allowTwoTokens bool) bool {
	if !allowTwoTokens {
		return isToken(f)
	}
	first, second, found := strings.Cut(f, " ")
	if !found {
		return isToken(f)
	}
	return isToken(first) && isToken(second)
}

// isToken returns whether s is a non empty run of non whitespace characters
func isToken(s string) bool {
	return s != "" && strings.IndexFunc(s, unicode.IsSpace) == -1
}
