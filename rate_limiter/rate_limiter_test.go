package rate_limiter

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestDefinition_Validate(t *testing.T) {
	tests := []struct {
		name    string
		d       Definition
		wantErr bool
	}{
		{name: "unbounded", d: Definition{Name: "analytics"}},
		{name: "concurrency only", d: Definition{Name: "analytics", MaxConcurrency: 4}},
		{name: "rate", d: Definition{Name: "analytics", FillRate: 10, BucketSize: 10}},
		{name: "missing name", d: Definition{MaxConcurrency: 4}, wantErr: true},
		{name: "rate without bucket", d: Definition{Name: "analytics", FillRate: 10}, wantErr: true},
		{name: "negative concurrency", d: Definition{Name: "analytics", MaxConcurrency: -1}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.d.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAPILimiter_MaxConcurrency(t *testing.T) {
	l := NewAPILimiter(&Definition{Name: "test", MaxConcurrency: 2})

	var active, maxActive atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, l.Wait(context.Background()))
			defer l.Release()

			n := active.Add(1)
			for {
				m := maxActive.Load()
				if n <= m || maxActive.CompareAndSwap(m, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			active.Add(-1)
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, maxActive.Load(), int32(2))
}

func TestAPILimiter_WaitCancelled(t *testing.T) {
	l := NewAPILimiter(&Definition{Name: "test", MaxConcurrency: 1, FillRate: rate.Limit(1), BucketSize: 1})
	require.NoError(t, l.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, l.Wait(ctx))

	// after release the slot is available again
	l.Release()
	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, l.Wait(ctx))
}

func TestAPILimiter_Unbounded(t *testing.T) {
	l := NewAPILimiter(&Definition{Name: "test"})
	for i := 0; i < 100; i++ {
		require.NoError(t, l.Wait(context.Background()))
	}
	// release on an unbounded limiter is a no-op
	l.Release()
	assert.Equal(t, "", l.String())
}
