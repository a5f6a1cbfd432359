package factory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/turbot/cloudfront-analytics-forwarder/analytics"
	"github.com/turbot/cloudfront-analytics-forwarder/artifact_loader"
	"github.com/turbot/cloudfront-analytics-forwarder/artifact_source"
	"github.com/turbot/cloudfront-analytics-forwarder/config"
	"github.com/turbot/cloudfront-analytics-forwarder/dispatch"
	"github.com/turbot/cloudfront-analytics-forwarder/mappers"
	"github.com/turbot/cloudfront-analytics-forwarder/pipeline"
	"github.com/turbot/cloudfront-analytics-forwarder/rate_limiter"
)

// Forwarder is a pipeline together with the source it reads from
// the source must be closed when the forwarder is no longer needed
type Forwarder struct {
	Pipeline *pipeline.Pipeline
	Source   artifact_source.ArtifactSource
}

func (f *Forwarder) Close() error {
	return f.Source.Close()
}

// NewForwarder builds every pipeline component from the config
func NewForwarder(ctx context.Context, cfg *config.Config) (*Forwarder, error) {
	source, err := artifact_source.NewArtifactSource(ctx, cfg.Source, cfg.SourceConfigs())
	if err != nil {
		return nil, fmt.Errorf("failed to create source, %w", err)
	}

	client, err := analytics.NewMeasurementProtocolClient(analytics.Options{
		TrackingId: cfg.TrackingId,
		Endpoint:   *cfg.Analytics.Endpoint,
		Validate:   cfg.Analytics.Validate,
		HTTPClient: artifact_source.SharedHTTPClient(),
	})
	if err != nil {
		_ = source.Close()
		return nil, fmt.Errorf("failed to create analytics client, %w", err)
	}

	limiter := rate_limiter.NewAPILimiter(cfg.Analytics.RateLimiterDefinition())
	slog.Info("Created analytics limiter", "limiter", limiter.String())

	p := pipeline.New(source, artifact_loader.NewGzipLoader(), newMapper(cfg), dispatch.NewDispatcher(client, limiter), pipeline.Options{
		ParseConcurrency: cfg.ParseConcurrency,
	})

	return &Forwarder{Pipeline: p, Source: source}, nil
}

func newMapper(cfg *config.Config) mappers.Mapper {
	if cfg.Layout != nil {
		return mappers.NewGonxMapper(*cfg.Layout)
	}
	return mappers.NewLogRecordMapper()
}
