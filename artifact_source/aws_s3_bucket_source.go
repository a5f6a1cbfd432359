package artifact_source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/turbot/cloudfront-analytics-forwarder/artifact_source_config"
	"github.com/turbot/cloudfront-analytics-forwarder/types"
	typehelpers "github.com/turbot/go-kit/types"
)

// s3Client is the subset of the S3 API used by AwsS3BucketSource
type s3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// AwsS3BucketSource is an [ArtifactSource] implementation that reads and deletes artifacts in an S3 bucket
type AwsS3BucketSource struct {
	client s3Client
}

func NewAwsS3BucketSource(ctx context.Context, connection *artifact_source_config.AwsConnection) (*AwsS3BucketSource, error) {
	if connection == nil {
		connection = &artifact_source_config.AwsConnection{}
	}
	if err := connection.Validate(); err != nil {
		return nil, fmt.Errorf("invalid aws config: %w", err)
	}

	cfg, err := getAwsClientConfiguration(ctx, connection)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(*cfg, func(o *s3.Options) {
		if connection.EndpointUrl != nil {
			o.BaseEndpoint = connection.EndpointUrl
		}
		if connection.S3ForcePathStyle != nil {
			o.UsePathStyle = *connection.S3ForcePathStyle
		}
	})

	slog.Info("Initialized AwsS3BucketSource", "region", cfg.Region, "endpoint", typehelpers.SafeString(connection.EndpointUrl))
	return &AwsS3BucketSource{client: client}, nil
}

func (s *AwsS3BucketSource) Identifier() string {
	return artifact_source_config.AwsS3BucketSourceIdentifier
}

func (s *AwsS3BucketSource) Read(ctx context.Context, info *types.ArtifactInfo) ([]byte, error) {
	output, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &info.Bucket,
		Key:    &info.Key,
	})
	if err != nil {
		var noSuchKey *s3types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("%w: %s, %w", ErrArtifactNotFound, info, err)
		}
		return nil, fmt.Errorf("failed to get artifact %s, %w", info, err)
	}
	defer output.Body.Close()

	data, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s, %w", info, err)
	}

	slog.Debug("Read artifact from S3", "artifact", info.String(), "bytes", len(data))
	return data, nil
}

func (s *AwsS3BucketSource) Delete(ctx context.Context, info *types.ArtifactInfo) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &info.Bucket,
		Key:    &info.Key,
	})
	if err != nil {
		return fmt.Errorf("failed to delete artifact %s, %w", info, err)
	}
	slog.Debug("Deleted artifact from S3", "artifact", info.String())
	return nil
}

func (s *AwsS3BucketSource) Close() error {
	return nil
}
