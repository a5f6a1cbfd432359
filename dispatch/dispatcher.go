package dispatch

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/turbot/cloudfront-analytics-forwarder/analytics"
	"github.com/turbot/cloudfront-analytics-forwarder/rate_limiter"
	"github.com/turbot/cloudfront-analytics-forwarder/table"
)

// Dispatcher sends a pageview for every log record
type Dispatcher struct {
	client  analytics.Client
	limiter *rate_limiter.APILimiter
}

// NewDispatcher creates a Dispatcher, if limiter is nil sends are not limited
func NewDispatcher(client analytics.Client, limiter *rate_limiter.APILimiter) *Dispatcher {
	return &Dispatcher{
		client:  client,
		limiter: limiter,
	}
}

// Dispatch sends the records concurrently and waits for every send to finish
// a limiter slot is taken before each send starts, so the number of running sends is bounded by the limiter
// the returned outcomes are in record order; send failures are reported in the outcomes, never returned
func (d *Dispatcher) Dispatch(ctx context.Context, records []*table.LogRecord) []Outcome {
	outcomes := make([]Outcome, len(records))

	var wg sync.WaitGroup
	for i, r := range records {
		if skip(r) {
			outcomes[i] = Outcome{Status: StatusSkipped}
			continue
		}

		p, err := BuildPageview(r)
		if err != nil {
			outcomes[i] = failed(i, err)
			continue
		}

		if d.limiter != nil {
			if err := d.limiter.Wait(ctx); err != nil {
				outcomes[i] = failed(i, err)
				continue
			}
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			if d.limiter != nil {
				defer d.limiter.Release()
			}
			outcomes[i] = d.send(ctx, i, p)
		}()
	}
	wg.Wait()

	return outcomes
}

func (d *Dispatcher) send(ctx context.Context, i int, p analytics.Pageview) Outcome {
	if err := d.client.Send(ctx, p); err != nil {
		return failed(i, err)
	}
	return Outcome{Status: StatusSent}
}

func failed(i int, err error) Outcome {
	sendErr := &DispatchSendError{Index: i, Err: err}
	slog.Debug("Dispatch failed", "error", sendErr)
	return Outcome{Status: StatusFailed, Err: sendErr}
}

// skip returns whether a record produces no hit: unparsed records and CORS preflight requests
func skip(r *table.LogRecord) bool {
	return r == nil || r.IsMethod(http.MethodOptions)
}
