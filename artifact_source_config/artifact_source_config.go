package artifact_source_config

// SourceConfigs holds the connection config for each supported source
// only the config for the selected source is used, and any of them may be nil
type SourceConfigs struct {
	Aws        *AwsConnection
	Gcp        *GcpConnection
	FileSystem *FileSystemSourceConfig
}
