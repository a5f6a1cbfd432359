package trigger

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turbot/cloudfront-analytics-forwarder/context_values"
	"github.com/turbot/cloudfront-analytics-forwarder/pipeline"
	"github.com/turbot/cloudfront-analytics-forwarder/types"
)

type fakeRunner struct {
	runs        []*types.ArtifactInfo
	executionId string
	err         error
}

func (f *fakeRunner) Run(ctx context.Context, info *types.ArtifactInfo) (*pipeline.Result, error) {
	f.runs = append(f.runs, info)
	f.executionId, _ = context_values.ExecutionIdFromContext(ctx)
	return &pipeline.Result{Artifact: info}, f.err
}

func s3Event(t *testing.T, bucket, key string) events.S3Event {
	t.Helper()
	// the key is url encoded in the notification, as S3 sends it
	raw := `{"Records":[{"eventSource":"aws:s3","s3":{"bucket":{"name":"` + bucket + `"},"object":{"key":"` + key + `","size":1024}}}]}`
	var event events.S3Event
	require.NoError(t, json.Unmarshal([]byte(raw), &event))
	return event
}

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name         string
		bucket       string
		eventBucket  string
		key          string
		wantArtifact string
	}{
		{
			name:         "event bucket used when none configured",
			eventBucket:  "event-bucket",
			key:          "cf/E2ABC.2024-01-01-10.abcd.gz",
			wantArtifact: "event-bucket/cf/E2ABC.2024-01-01-10.abcd.gz",
		},
		{
			name:         "configured bucket takes precedence",
			bucket:       "configured-bucket",
			eventBucket:  "event-bucket",
			key:          "cf/a.gz",
			wantArtifact: "configured-bucket/cf/a.gz",
		},
		{
			name:         "key is url decoded",
			eventBucket:  "event-bucket",
			key:          "cf/my+logs/a%3Db.gz",
			wantArtifact: "event-bucket/cf/my logs/a=b.gz",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{}
			h := NewHandler(runner, tt.bucket, []string{".gz"})

			require.NoError(t, h.Handle(context.Background(), s3Event(t, tt.eventBucket, tt.key)))

			require.Len(t, runner.runs, 1)
			assert.Equalf(t, tt.wantArtifact, runner.runs[0].String(), "Handle(%s)", tt.key)
			assert.Equal(t, int64(1024), runner.runs[0].Size)
			assert.NotEmpty(t, runner.executionId)
		})
	}
}

func TestHandler_IgnoresUnsupportedExtension(t *testing.T) {
	runner := &fakeRunner{}
	h := NewHandler(runner, "", []string{".gz"})

	require.NoError(t, h.Handle(context.Background(), s3Event(t, "b", "cf/readme.txt")))
	assert.Empty(t, runner.runs)
}

func TestHandler_NoExtensionFilter(t *testing.T) {
	runner := &fakeRunner{}
	h := NewHandler(runner, "", nil)

	require.NoError(t, h.Handle(context.Background(), s3Event(t, "b", "cf/E2ABC.2024-01-01-10.abcd")))
	require.Len(t, runner.runs, 1)
	assert.Equal(t, "b/cf/E2ABC.2024-01-01-10.abcd", runner.runs[0].String())
}

func TestHandler_NoRecords(t *testing.T) {
	runner := &fakeRunner{}
	h := NewHandler(runner, "", nil)

	err := h.Handle(context.Background(), events.S3Event{})
	assert.ErrorIs(t, err, ErrNoRecords)
	assert.Empty(t, runner.runs)
}

func TestHandler_ReturnsRunError(t *testing.T) {
	deleteErr := &pipeline.StorageDeleteError{Artifact: types.NewArtifactInfo("b", "k.gz"), Err: errors.New("AccessDenied")}
	runner := &fakeRunner{err: deleteErr}
	h := NewHandler(runner, "", nil)

	err := h.Handle(context.Background(), s3Event(t, "b", "k.gz"))
	var target *pipeline.StorageDeleteError
	assert.ErrorAs(t, err, &target)
}
