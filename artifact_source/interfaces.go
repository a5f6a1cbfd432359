package artifact_source

import (
	"context"
	"errors"

	"github.com/turbot/cloudfront-analytics-forwarder/types"
)

// ErrArtifactNotFound is wrapped by Read when the artifact does not exist
var ErrArtifactNotFound = errors.New("artifact not found")

// ArtifactSource provides access to the log artifacts held in a storage service
type ArtifactSource interface {
	Identifier() string
	// Read returns the raw (still compressed) contents of the artifact
	Read(context.Context, *types.ArtifactInfo) ([]byte, error)
	// Delete removes the artifact from storage
	Delete(context.Context, *types.ArtifactInfo) error
	Close() error
}
