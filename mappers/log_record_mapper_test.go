package mappers

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogRecordMapper_Map(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantMatch bool
	}{
		{name: "well formed line", line: sampleLine(nil), wantMatch: true},
		{name: "trailing carriage return", line: sampleLine(nil) + "\r", wantMatch: true},
		{name: "two token time taken", line: sampleLine(map[int]string{18: "0.001 0.002"}), wantMatch: true},
		{name: "empty line", line: "", wantMatch: false},
		{name: "header line", line: "#Version: 1.0", wantMatch: false},
		{name: "too few fields", line: strings.Join(sampleFields()[:22], "\t"), wantMatch: false},
		{name: "too many fields", line: sampleLine(nil) + "\textra", wantMatch: false},
		{name: "empty field", line: sampleLine(map[int]string{3: ""}), wantMatch: false},
		{name: "space in field", line: sampleLine(map[int]string{10: "Mozilla 5.0"}), wantMatch: false},
		{name: "three token time taken", line: sampleLine(map[int]string{18: "1 2 3"}), wantMatch: false},
		{name: "double space time taken", line: sampleLine(map[int]string{18: "1  2"}), wantMatch: false},
		{name: "space separated fields", line: strings.Join(sampleFields(), " "), wantMatch: false},
	}
	m := NewLogRecordMapper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Map(context.Background(), tt.line)
			if !tt.wantMatch {
				assert.ErrorIs(t, err, ErrNoMatch)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, got)
		})
	}
}

func TestLogRecordMapper_MapFields(t *testing.T) {
	got, err := NewLogRecordMapper().Map(context.Background(), sampleLine(map[int]string{8: "-", 18: "0.001 0.002"}))
	require.NoError(t, err)

	assert.Equal(t, "2019-12-04", *got.Date)
	assert.Equal(t, "21:02:31", *got.Time)
	assert.Equal(t, "LAX1", *got.EdgeLocation)
	assert.Equal(t, "392", *got.BytesSent)
	assert.Equal(t, "192.0.2.100", *got.ClientIP)
	assert.Equal(t, "GET", *got.HTTPMethod)
	assert.Equal(t, "d111111abcdef8.cloudfront.net", *got.ServerHost)
	assert.Equal(t, "/index.html", *got.URI)
	// '-' becomes nil
	assert.Nil(t, got.StatusCode)
	assert.Equal(t, "https://example.com/start", *got.Referrer)
	assert.Equal(t, "Mozilla/5.0%2520(Windows%2520NT%252010.0)", *got.UserAgent)
	assert.Equal(t, "a=1&b=2", *got.URIQuery)
	assert.Nil(t, got.Cookie)
	assert.Equal(t, "Hit", *got.EdgeResultType)
	assert.Equal(t, "SOX4xwn4XV6Q4rgb7XiVGOHms_BGlTAC4KyHmureZmBNrjGdRLiNIQ==", *got.EdgeRequestID)
	assert.Equal(t, "www.example.com", *got.ForwardedHostHeaders)
	assert.Equal(t, "https", *got.Protocol)
	assert.Equal(t, "23", *got.BytesReceived)
	assert.Equal(t, "0.001 0.002", *got.TimeTaken)
	assert.Equal(t, "203.0.113.7", *got.XForwardedFor)
	assert.Equal(t, "TLSv1.2", *got.SSLProtocol)
	assert.Equal(t, "ECDHE-RSA-AES128-GCM-SHA256", *got.SSLCipher)
	assert.Equal(t, "Hit", *got.EdgeResponseResultType)
}

func TestLogRecordMapper_AllNull(t *testing.T) {
	fields := make(map[int]string)
	for i := range sampleFields() {
		fields[i] = "-"
	}
	got, err := NewLogRecordMapper().Map(context.Background(), sampleLine(fields))
	require.NoError(t, err)
	for _, f := range []*string{got.Date, got.URI, got.HTTPMethod, got.XForwardedFor, got.EdgeResponseResultType} {
		assert.Nil(t, f)
	}
}
