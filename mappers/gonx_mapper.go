package mappers

import (
	"context"
	"fmt"

	"github.com/satyrius/gonx"
	"github.com/turbot/cloudfront-analytics-forwarder/table"
)

const GonxMapperIdentifier = "gonx_mapper"

// GonxMapper maps a log line using one or more gonx layouts, e.g. "$date\t$time\t$edge_location..."
// layout variables are matched to LogRecord columns by name
type GonxMapper struct {
	parsers []*gonx.Parser
}

func NewGonxMapper(formats ...string) *GonxMapper {
	res := &GonxMapper{}
	for _, format := range formats {
		res.parsers = append(res.parsers, gonx.NewParser(format))
	}
	return res
}

func (c *GonxMapper) Identifier() string {
	return GonxMapperIdentifier
}

func (c *GonxMapper) Map(_ context.Context, line string) (*table.LogRecord, error) {
	var parsed *gonx.Entry
	var err error

	// we must have at least one parser
	if len(c.parsers) == 0 {
		return nil, fmt.Errorf("no parsers configured")
	}

	for _, parser := range c.parsers {
		parsed, err = parser.ParseString(line)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: all formats failed: %w", ErrNoMatch, err)
	}

	fields := parsed.Fields()
	if err := checkColumns(fields); err != nil {
		return nil, err
	}

	row := &table.LogRecord{}
	if err := row.InitialiseFromMap(fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoMatch, err)
	}

	return row, nil
}

// checkColumns applies the same field rules as LogRecordMapper: every column must be present,
// non empty and free of whitespace, apart from the two token time_taken exception
func checkColumns(fields map[string]string) error {
	for i, col := range table.LogRecordColumns {
		v, ok := fields[col]
		if !ok {
			return fmt.Errorf("%w: layout has no %s field", ErrNoMatch, col)
		}
		if !validField(v, i == timeTakenIndex) {
			return fmt.Errorf("%w: invalid value for %s", ErrNoMatch, col)
		}
	}
	return nil
}
