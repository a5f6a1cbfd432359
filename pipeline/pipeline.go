package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/turbot/cloudfront-analytics-forwarder/artifact_loader"
	"github.com/turbot/cloudfront-analytics-forwarder/artifact_source"
	"github.com/turbot/cloudfront-analytics-forwarder/constants"
	"github.com/turbot/cloudfront-analytics-forwarder/context_values"
	"github.com/turbot/cloudfront-analytics-forwarder/dispatch"
	"github.com/turbot/cloudfront-analytics-forwarder/mappers"
	"github.com/turbot/cloudfront-analytics-forwarder/table"
	"github.com/turbot/cloudfront-analytics-forwarder/types"
)

const (
	phaseRead       = "read"
	phaseDecompress = "decompress"
	phaseParse      = "parse"
	phaseDispatch   = "dispatch"
	phaseDelete     = "delete"
)

// Dispatcher sends the records of an artifact
type Dispatcher interface {
	Dispatch(context.Context, []*table.LogRecord) []dispatch.Outcome
}

type Options struct {
	// ParseConcurrency is the number of goroutines used to parse lines
	ParseConcurrency int
}

// Pipeline processes a single log artifact: read, decompress, parse, dispatch then delete
type Pipeline struct {
	source     artifact_source.ArtifactSource
	loader     artifact_loader.Loader
	mapper     mappers.Mapper
	dispatcher Dispatcher

	parseConcurrency int
}

// Result describes a completed run
type Result struct {
	Artifact *types.ArtifactInfo
	// Records is the number of lines which parsed into a record
	Records  int
	Outcomes []dispatch.Outcome
	Summary  dispatch.Summary
	Timing   *types.TimingCollection
}

func New(source artifact_source.ArtifactSource, loader artifact_loader.Loader, mapper mappers.Mapper, dispatcher Dispatcher, opts Options) *Pipeline {
	parseConcurrency := opts.ParseConcurrency
	if parseConcurrency <= 0 {
		parseConcurrency = constants.DefaultParseConcurrency
	}
	return &Pipeline{
		source:           source,
		loader:           loader,
		mapper:           mapper,
		dispatcher:       dispatcher,
		parseConcurrency: parseConcurrency,
	}
}

// Run processes the artifact
// if reading or decompression fails nothing is sent and the artifact is kept
// send failures are recorded in the result and do not stop the artifact being deleted
func (p *Pipeline) Run(ctx context.Context, info *types.ArtifactInfo) (*Result, error) {
	if _, err := context_values.ExecutionIdFromContext(ctx); err != nil {
		ctx = context_values.WithNewExecutionId(ctx)
	}
	executionId, _ := context_values.ExecutionIdFromContext(ctx)
	logger := slog.With("execution_id", executionId, "artifact", info.String())

	res := &Result{
		Artifact: info,
		Timing:   types.NewTimingCollection(),
	}
	logger.Info("Processing artifact", "source", p.source.Identifier(), "loader", p.loader.Identifier(), "mapper", p.mapper.Identifier())

	t := res.Timing.Phase(phaseRead)
	t.TryStart()
	data, err := p.source.Read(ctx, info)
	t.SetEnd()
	if err != nil {
		logger.Error("Failed to read artifact", "error", err)
		return res, &StorageReadError{Artifact: info, Err: err}
	}
	logger.Debug("Read artifact", "bytes", len(data))

	t = res.Timing.Phase(phaseDecompress)
	t.TryStart()
	text, err := p.loader.Load(ctx, data)
	t.SetEnd()
	if err != nil {
		logger.Error("Failed to decompress artifact", "error", err)
		return res, &DecompressionError{Artifact: info, Err: err}
	}

	t = res.Timing.Phase(phaseParse)
	t.TryStart()
	records, err := mappers.ParseLines(ctx, p.mapper, text, p.parseConcurrency)
	t.SetEnd()
	if err != nil {
		logger.Error("Failed to parse artifact", "error", err)
		return res, fmt.Errorf("failed to parse %s, %w", info, err)
	}
	res.Records = len(records)
	logger.Debug("Parsed artifact", "records", res.Records)

	t = res.Timing.Phase(phaseDispatch)
	t.TryStart()
	res.Outcomes = p.dispatcher.Dispatch(ctx, records)
	t.SetEnd()
	res.Summary = dispatch.Summarize(res.Outcomes)
	logger.Info("Dispatched records", "sent", res.Summary.Sent, "skipped", res.Summary.Skipped, "failed", res.Summary.Failed)
	for _, o := range res.Outcomes {
		if o.Err != nil {
			logger.Warn("Record not sent", "error", o.Err)
		}
	}

	t = res.Timing.Phase(phaseDelete)
	t.TryStart()
	err = p.source.Delete(ctx, info)
	t.SetEnd()
	if err != nil {
		logger.Error("Failed to delete artifact", "error", err)
		return res, &StorageDeleteError{Artifact: info, Err: err}
	}

	logger.Info("Processed artifact", "timing", res.Timing.Durations())
	return res, nil
}
