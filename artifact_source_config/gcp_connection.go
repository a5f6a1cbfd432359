package artifact_source_config

// GcpConnection is the configuration used to build the GCP Storage client
type GcpConnection struct {
	Project *string `hcl:"project"`
	// Credentials is either the path to a credentials file or the JSON contents
	Credentials  *string `hcl:"credentials"`
	QuotaProject *string `hcl:"quota_project"`
	// Impersonate is the service account to impersonate
	Impersonate *string `hcl:"impersonate"`
}
