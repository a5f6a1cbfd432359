package constants

import "log/slog"

const (
	// LogLevelOff is above every level slog emits, so nothing is written
	LogLevelOff = slog.Level(100)

	DefaultParseConcurrency    = 16
	DefaultDispatchConcurrency = 16

	DefaultAnalyticsEndpoint = "https://www.google-analytics.com"

	// NullFieldValue is the placeholder written by CloudFront for an empty field
	NullFieldValue = "-"
)
