package artifact_source

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/turbot/cloudfront-analytics-forwarder/artifact_source_config"
	"golang.org/x/exp/maps"
)

type sourceCtor func(context.Context, artifact_source_config.SourceConfigs) (ArtifactSource, error)

var sourceCtors = map[string]sourceCtor{
	artifact_source_config.AwsS3BucketSourceIdentifier: func(ctx context.Context, c artifact_source_config.SourceConfigs) (ArtifactSource, error) {
		return NewAwsS3BucketSource(ctx, c.Aws)
	},
	artifact_source_config.GcpStorageBucketSourceIdentifier: func(ctx context.Context, c artifact_source_config.SourceConfigs) (ArtifactSource, error) {
		return NewGcpStorageBucketSource(ctx, c.Gcp)
	},
	artifact_source_config.FileSystemSourceIdentifier: func(_ context.Context, c artifact_source_config.SourceConfigs) (ArtifactSource, error) {
		return NewFileSystemSource(c.FileSystem)
	},
}

// SupportedSources returns the identifiers of all sources, sorted
func SupportedSources() []string {
	res := maps.Keys(sourceCtors)
	slices.Sort(res)
	return res
}

// NewArtifactSource creates the source with the given identifier
func NewArtifactSource(ctx context.Context, identifier string, configs artifact_source_config.SourceConfigs) (ArtifactSource, error) {
	ctor, ok := sourceCtors[identifier]
	if !ok {
		return nil, fmt.Errorf("unsupported source '%s', expected one of: %s", identifier, strings.Join(SupportedSources(), ", "))
	}
	return ctor(ctx, configs)
}
