package rate_limiter

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/time/rate"
)

// Definition describes how calls to an external API are limited
type Definition struct {
	// the limiter name
	Name string
	// calls per second, 0 means no rate limit
	FillRate   rate.Limit
	BucketSize int
	// the max number of concurrent calls, 0 means unbounded
	MaxConcurrency int64
}

func (d *Definition) String() string {
	var parts []string
	if d.FillRate > 0 {
		parts = append(parts, fmt.Sprintf("Limit(/s): %v, Burst: %d", d.FillRate, d.BucketSize))
	}
	if d.MaxConcurrency > 0 {
		parts = append(parts, fmt.Sprintf("MaxConcurrency: %d", d.MaxConcurrency))
	}
	return strings.Join(parts, " ")
}

func (d *Definition) Validate() error {
	var validationErrors []error
	if d.Name == "" {
		validationErrors = append(validationErrors, errors.New("rate limiter definition must specify a name"))
	}
	if d.FillRate < 0 {
		validationErrors = append(validationErrors, errors.New("rate limiter fill rate must not be negative"))
	}
	if d.FillRate > 0 && d.BucketSize < 1 {
		validationErrors = append(validationErrors, errors.New("rate limiter with a fill rate must have a bucket size of at least 1"))
	}
	if d.MaxConcurrency < 0 {
		validationErrors = append(validationErrors, errors.New("rate limiter max concurrency must not be negative"))
	}
	return errors.Join(validationErrors...)
}
