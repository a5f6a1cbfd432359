package constants

// environment variables read at process start
const (
	EnvConfigPath = "FORWARDER_CONFIG"
	EnvLogLevel   = "FORWARDER_LOG_LEVEL"
	EnvBucket     = "FORWARDER_BUCKET"
	EnvTrackingId = "FORWARDER_TRACKING_ID"
	EnvSource     = "FORWARDER_SOURCE"
)
