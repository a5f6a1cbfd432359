package logging

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/turbot/cloudfront-analytics-forwarder/constants"
)

func Test_getLogLevel(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want slog.Leveler
	}{
		{name: "unset defaults to info", env: "", want: slog.LevelInfo},
		{name: "debug", env: "debug", want: slog.LevelDebug},
		{name: "case insensitive", env: "WARN", want: slog.LevelWarn},
		{name: "error", env: "error", want: slog.LevelError},
		{name: "off", env: "off", want: constants.LogLevelOff},
		{name: "unknown defaults to info", env: "verbose", want: slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(constants.EnvLogLevel, tt.env)
			assert.Equal(t, tt.want, getLogLevel())
		})
	}
}
