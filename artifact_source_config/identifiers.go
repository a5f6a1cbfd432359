package artifact_source_config

const (
	AwsS3BucketSourceIdentifier      = "aws_s3_bucket"
	GcpStorageBucketSourceIdentifier = "gcp_storage_bucket"
	FileSystemSourceIdentifier       = "file_system"
)
