package artifact_source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"cloud.google.com/go/storage"
	"github.com/mitchellh/go-homedir"
	"github.com/turbot/cloudfront-analytics-forwarder/artifact_source_config"
	"github.com/turbot/cloudfront-analytics-forwarder/types"
	typehelpers "github.com/turbot/go-kit/types"
	"google.golang.org/api/impersonate"
	"google.golang.org/api/option"
)

// GcpStorageBucketSource is an [ArtifactSource] implementation that reads and deletes artifacts in a GCP Storage bucket
type GcpStorageBucketSource struct {
	client *storage.Client
}

func NewGcpStorageBucketSource(ctx context.Context, connection *artifact_source_config.GcpConnection) (*GcpStorageBucketSource, error) {
	if connection == nil {
		connection = &artifact_source_config.GcpConnection{}
	}

	opts, err := getGcpClientOptions(ctx, connection)
	if err != nil {
		return nil, fmt.Errorf("failed setting GCP Storage client config: %w", err)
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCP Storage client: %w", err)
	}

	slog.Info("Initialized GcpStorageBucketSource", "project", typehelpers.SafeString(connection.Project))
	return &GcpStorageBucketSource{client: client}, nil
}

func (s *GcpStorageBucketSource) Identifier() string {
	return artifact_source_config.GcpStorageBucketSourceIdentifier
}

func (s *GcpStorageBucketSource) Read(ctx context.Context, info *types.ArtifactInfo) ([]byte, error) {
	reader, err := s.client.Bucket(info.Bucket).Object(info.Key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("%w: %s, %w", ErrArtifactNotFound, info, err)
		}
		return nil, fmt.Errorf("failed to get object reader for %s, %w", info, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s, %w", info, err)
	}
	return data, nil
}

func (s *GcpStorageBucketSource) Delete(ctx context.Context, info *types.ArtifactInfo) error {
	if err := s.client.Bucket(info.Bucket).Object(info.Key).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete artifact %s, %w", info, err)
	}
	return nil
}

func (s *GcpStorageBucketSource) Close() error {
	return s.client.Close()
}

func getGcpClientOptions(ctx context.Context, c *artifact_source_config.GcpConnection) ([]option.ClientOption, error) {
	var opts []option.ClientOption

	if c.Credentials != nil {
		contents, err := pathOrContents(*c.Credentials)
		if err != nil {
			return nil, fmt.Errorf("error reading credentials file: %w", err)
		}
		opts = append(opts, option.WithCredentialsJSON([]byte(contents)))
	}

	quotaProject := os.Getenv("GOOGLE_CLOUD_QUOTA_PROJECT")
	if c.QuotaProject != nil {
		quotaProject = *c.QuotaProject
	}
	if quotaProject != "" {
		opts = append(opts, option.WithQuotaProject(quotaProject))
	}

	if c.Impersonate != nil {
		ts, err := impersonate.CredentialsTokenSource(ctx, impersonate.CredentialsConfig{
			TargetPrincipal: *c.Impersonate,
			Scopes:          []string{"https://www.googleapis.com/auth/cloud-platform"},
		})
		if err != nil {
			return nil, err
		}
		opts = append(opts, option.WithTokenSource(ts))
	}

	return opts, nil
}

// pathOrContents returns the contents of the file at the given path, or the value itself if it is not a path
func pathOrContents(in string) (string, error) {
	if len(in) == 0 {
		return "", nil
	}

	filePath := in
	if filePath[0] == '~' {
		var err error
		filePath, err = homedir.Expand(filePath)
		if err != nil {
			return filePath, err
		}
	}

	if _, err := os.Stat(filePath); err == nil {
		contents, err := os.ReadFile(filePath)
		if err != nil {
			return "", err
		}
		return string(contents), nil
	}

	if len(filePath) > 1 && (filePath[0] == '/' || filePath[0] == '\\') {
		return "", fmt.Errorf("%s: no such file or dir", filePath)
	}

	return in, nil
}
