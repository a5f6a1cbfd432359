package artifact_source_config

import (
	"fmt"
)

// AwsConnection is the configuration used to build the S3 client
// anything not set here is taken from the default AWS credential chain (environment, shared config, role)
type AwsConnection struct {
	DefaultRegion *string `hcl:"default_region"`
	Profile       *string `hcl:"profile"`
	AccessKey     *string `hcl:"access_key"`
	SecretKey     *string `hcl:"secret_key"`
	SessionToken  *string `hcl:"session_token"`
	// EndpointUrl is set to target S3 compatible stores (or a local stack)
	EndpointUrl      *string `hcl:"endpoint_url"`
	S3ForcePathStyle *bool   `hcl:"s3_force_path_style"`
}

func (c *AwsConnection) Validate() error {
	if c.AccessKey != nil && c.SecretKey == nil {
		return fmt.Errorf("access_key set without secret_key")
	}

	if c.AccessKey == nil && c.SecretKey != nil {
		return fmt.Errorf("secret_key set without access_key")
	}

	if c.SessionToken != nil && c.AccessKey == nil {
		return fmt.Errorf("session_token set without access_key")
	}

	return nil
}
