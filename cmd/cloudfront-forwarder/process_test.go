package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, path string, lines ...string) {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write([]byte(strings.Join(lines, "\n")))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

func logLine(method string) string {
	return strings.Join([]string{
		"2024-03-01", "10:15:02", "LHR62-C2", "2311", "192.0.2.10", method, "d111111abcdef8.cloudfront.net",
		"/index.html", "200", "-", "curl/8.4.0", "-", "-", "Hit", "SOX4xwn4XV6Q4rgb7XiVGOHms_BGlTAC4KyHmureZmBNrjGdRLiNIQ==",
		"www.example.com", "https", "245", "0.001", "-", "TLSv1.3", "TLS_AES_128_GCM_SHA256", "Hit",
	}, "\t")
}

func TestProcessCommand(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	root := t.TempDir()
	artifact := filepath.Join(root, "logs", "cf", "a.gz")
	writeArtifact(t, artifact, logLine("GET"), logLine("OPTIONS"), logLine("GET"))

	configFile := filepath.Join(t.TempDir(), "forwarder.hcl")
	require.NoError(t, os.WriteFile(configFile, []byte(fmt.Sprintf(`
bucket      = "logs"
tracking_id = "UA-12345-1"
source      = "file_system"

file_system {
  root = %q
}

analytics {
  endpoint = %q
}
`, root, srv.URL)), 0644))

	t.Setenv("FORWARDER_LOG_LEVEL", "off")
	t.Setenv("FORWARDER_TRACKING_ID", "")
	t.Setenv("FORWARDER_BUCKET", "")
	t.Setenv("FORWARDER_SOURCE", "")

	var out bytes.Buffer
	cmd := rootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"process", "--config", configFile, "--key", "cf/a.gz"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, int32(2), hits.Load())
	assert.NoFileExists(t, artifact)
	assert.Contains(t, out.String(), "logs/cf/a.gz: 3 records, sent: 2, skipped: 1, failed: 0")
}

func TestProcessCommand_MissingKey(t *testing.T) {
	cmd := rootCommand()
	cmd.SetArgs([]string{"process"})
	assert.Error(t, cmd.Execute())
}
