package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/mitchellh/go-homedir"
	"github.com/turbot/cloudfront-analytics-forwarder/artifact_source"
	"github.com/turbot/cloudfront-analytics-forwarder/artifact_source_config"
	"github.com/turbot/cloudfront-analytics-forwarder/constants"
	"github.com/turbot/cloudfront-analytics-forwarder/rate_limiter"
	"golang.org/x/time/rate"
)

// Config is the forwarder configuration, read from an HCL file and overridden from the environment
type Config struct {
	// Bucket, if set, is used in place of the bucket named by the trigger event
	Bucket     string   `hcl:"bucket,optional"`
	TrackingId string   `hcl:"tracking_id,optional"`
	Source     string   `hcl:"source,optional"`
	// Extensions, if set, restricts processing to objects with one of these extensions
	Extensions []string `hcl:"extensions,optional"`
	// ParseConcurrency is the number of goroutines used to parse the lines of an artifact
	ParseConcurrency int `hcl:"parse_concurrency,optional"`
	// Layout is an optional gonx layout used in place of the built in tab separated mapper
	Layout *string `hcl:"layout"`

	Aws        *artifact_source_config.AwsConnection          `hcl:"aws,block"`
	Gcp        *artifact_source_config.GcpConnection          `hcl:"gcp,block"`
	FileSystem *artifact_source_config.FileSystemSourceConfig `hcl:"file_system,block"`
	Analytics  *AnalyticsConfig                               `hcl:"analytics,block"`
}

// AnalyticsConfig configures the analytics client and the limits applied to its calls
type AnalyticsConfig struct {
	Endpoint       *string  `hcl:"endpoint"`
	Validate       bool     `hcl:"validate,optional"`
	MaxConcurrency *int64   `hcl:"max_concurrency"`
	RateLimit      *float64 `hcl:"rate_limit"`
	Burst          *int     `hcl:"burst"`
}

// Load reads the config at path (if any), applies environment overrides and defaults, then validates it
func Load(path string) (*Config, error) {
	c := &Config{}
	if path == "" {
		path = os.Getenv(constants.EnvConfigPath)
	}
	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return nil, fmt.Errorf("failed to expand config path %s, %w", path, err)
		}
		data, err := os.ReadFile(expanded)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s, %w", expanded, err)
		}
		if err := ParseConfig(data, expanded, hcl.Pos{Line: 1, Column: 1}, c); err != nil {
			return nil, err
		}
	}

	c.applyEnv()
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(constants.EnvBucket); v != "" {
		c.Bucket = v
	}
	if v := os.Getenv(constants.EnvTrackingId); v != "" {
		c.TrackingId = v
	}
	if v := os.Getenv(constants.EnvSource); v != "" {
		c.Source = v
	}
}

func (c *Config) applyDefaults() {
	if c.Source == "" {
		c.Source = artifact_source_config.AwsS3BucketSourceIdentifier
	}
	if c.ParseConcurrency == 0 {
		c.ParseConcurrency = constants.DefaultParseConcurrency
	}
	if c.Analytics == nil {
		c.Analytics = &AnalyticsConfig{}
	}
	if c.Analytics.Endpoint == nil {
		endpoint := constants.DefaultAnalyticsEndpoint
		c.Analytics.Endpoint = &endpoint
	}
	if c.Analytics.MaxConcurrency == nil {
		maxConcurrency := int64(constants.DefaultDispatchConcurrency)
		c.Analytics.MaxConcurrency = &maxConcurrency
	}
}

func (c *Config) Validate() error {
	var validationErrors []error
	if c.TrackingId == "" {
		validationErrors = append(validationErrors, fmt.Errorf("tracking_id must be set, either in config or with %s", constants.EnvTrackingId))
	}
	if !slices.Contains(artifact_source.SupportedSources(), c.Source) {
		validationErrors = append(validationErrors, fmt.Errorf("unsupported source '%s', expected one of: %s", c.Source, strings.Join(artifact_source.SupportedSources(), ", ")))
	}
	if c.ParseConcurrency < 0 {
		validationErrors = append(validationErrors, errors.New("parse_concurrency must not be negative"))
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			validationErrors = append(validationErrors, fmt.Errorf("extension '%s' must start with '.'", ext))
		}
	}
	if c.Aws != nil {
		if err := c.Aws.Validate(); err != nil {
			validationErrors = append(validationErrors, fmt.Errorf("invalid aws block: %w", err))
		}
	}
	if c.Analytics != nil {
		if err := c.Analytics.RateLimiterDefinition().Validate(); err != nil {
			validationErrors = append(validationErrors, fmt.Errorf("invalid analytics block: %w", err))
		}
	}
	return errors.Join(validationErrors...)
}

// SourceConfigs returns the connection config for each source
func (c *Config) SourceConfigs() artifact_source_config.SourceConfigs {
	return artifact_source_config.SourceConfigs{
		Aws:        c.Aws,
		Gcp:        c.Gcp,
		FileSystem: c.FileSystem,
	}
}

// RateLimiterDefinition returns the limits applied to analytics calls
func (a *AnalyticsConfig) RateLimiterDefinition() *rate_limiter.Definition {
	d := &rate_limiter.Definition{Name: "analytics"}
	if a.RateLimit != nil {
		d.FillRate = rate.Limit(*a.RateLimit)
		d.BucketSize = 1
	}
	if a.Burst != nil {
		d.BucketSize = *a.Burst
	}
	if a.MaxConcurrency != nil {
		d.MaxConcurrency = *a.MaxConcurrency
	}
	return d
}
