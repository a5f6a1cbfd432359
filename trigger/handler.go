package trigger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"github.com/turbot/cloudfront-analytics-forwarder/context_values"
	"github.com/turbot/cloudfront-analytics-forwarder/pipeline"
	"github.com/turbot/cloudfront-analytics-forwarder/types"
)

// ErrNoRecords is returned for an event which carries no records
var ErrNoRecords = errors.New("event has no records")

// Runner processes a single artifact
type Runner interface {
	Run(context.Context, *types.ArtifactInfo) (*pipeline.Result, error)
}

// Handler handles S3 event notifications, running the pipeline for the object named by the first record
type Handler struct {
	runner Runner
	// bucket, if set, is used in place of the event bucket
	bucket     string
	extensions types.ExtensionLookup
}

func NewHandler(runner Runner, bucket string, extensions []string) *Handler {
	return &Handler{
		runner:     runner,
		bucket:     bucket,
		extensions: types.NewExtensionLookup(extensions),
	}
}

// Handle is the Lambda handler
func (h *Handler) Handle(ctx context.Context, event events.S3Event) error {
	ctx = context_values.WithNewExecutionId(ctx)

	info, err := h.ArtifactInfo(event)
	if err != nil {
		return err
	}

	if !h.extensions.IsValid(info.Key) {
		// the object is left in the bucket
		slog.Warn("Ignoring object with unsupported extension", "artifact", info.String())
		return nil
	}

	_, err = h.runner.Run(ctx, info)
	return err
}

// ArtifactInfo returns the artifact named by the first record of the event
func (h *Handler) ArtifactInfo(event events.S3Event) (*types.ArtifactInfo, error) {
	if len(event.Records) == 0 {
		return nil, ErrNoRecords
	}
	if len(event.Records) > 1 {
		slog.Warn("Event has more than one record, only the first is processed", "records", len(event.Records))
	}

	s3Entity := event.Records[0].S3
	key := s3Entity.Object.URLDecodedKey
	if key == "" {
		key = s3Entity.Object.Key
	}
	if key == "" {
		return nil, fmt.Errorf("event record has no object key")
	}

	bucket := h.bucket
	if bucket == "" {
		bucket = s3Entity.Bucket.Name
	}
	if bucket == "" {
		return nil, fmt.Errorf("no bucket configured and event record has no bucket")
	}

	info := types.NewArtifactInfo(bucket, key)
	info.Size = s3Entity.Object.Size
	return info, nil
}
