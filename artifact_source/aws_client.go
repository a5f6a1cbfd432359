package artifact_source

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/turbot/cloudfront-analytics-forwarder/artifact_source_config"
)

const defaultBucketRegion = "us-east-1"

// getAwsClientConfiguration builds the SDK config for a connection
// requests are not retried
func getAwsClientConfiguration(ctx context.Context, c *artifact_source_config.AwsConnection) (*aws.Config, error) {
	var configOptions []func(*config.LoadOptions) error

	if c.Profile != nil {
		configOptions = append(configOptions, config.WithSharedConfigProfile(aws.ToString(c.Profile)))
	}

	if c.AccessKey != nil && c.SecretKey != nil {
		provider := credentials.NewStaticCredentialsProvider(aws.ToString(c.AccessKey), aws.ToString(c.SecretKey), aws.ToString(c.SessionToken))
		configOptions = append(configOptions, config.WithCredentialsProvider(provider))
	}

	configOptions = append(configOptions,
		config.WithHTTPClient(SharedHTTPClient()),
		config.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(retry.NewStandard(), 1)
		}),
	)

	cfg, err := config.LoadDefaultConfig(ctx, configOptions...)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	// if no region from the environment or shared config, apply the default region
	if cfg.Region == "" {
		cfg.Region = defaultBucketRegion
		if c.DefaultRegion != nil {
			cfg.Region = *c.DefaultRegion
		}
	}

	return &cfg, nil
}
