package mappers

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/turbot/cloudfront-analytics-forwarder/constants"
	"github.com/turbot/cloudfront-analytics-forwarder/table"
	"golang.org/x/sync/errgroup"
)

// ParseLines splits text into lines and maps each line using the mapper.
//
// Lines are mapped concurrently in up to concurrency contiguous chunks. Lines which do not match are dropped.
// The returned records are in the same order as the lines they were parsed from.
// An error is returned only if the context is cancelled or the mapper fails for a reason other than ErrNoMatch.
func ParseLines(ctx context.Context, mapper Mapper, text string, concurrency int) ([]*table.LogRecord, error) {
	if text == "" {
		return []*table.LogRecord{}, nil
	}
	if concurrency <= 0 {
		concurrency = constants.DefaultParseConcurrency
	}

	lines := strings.Split(text, "\n")
	results := make([]*table.LogRecord, len(lines))

	chunkSize := (len(lines) + concurrency - 1) / concurrency

	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < len(lines); start += chunkSize {
		end := min(start+chunkSize, len(lines))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				if lines[i] == "" {
					continue
				}
				record, err := mapper.Map(gctx, lines[i])
				if err != nil {
					if errors.Is(err, ErrNoMatch) {
						slog.Debug("Skipping unmatched log line", "line", i+1, "error", err)
						continue
					}
					return err
				}
				results[i] = record
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]*table.LogRecord, 0, len(results))
	for _, r := range results {
		if r != nil {
			records = append(records, r)
		}
	}
	slog.Debug("Parsed log lines", "lines", len(lines), "records", len(records), "mapper", mapper.Identifier())
	return records, nil
}
