package artifact_loader

import (
	"bytes"
	"context"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gzipBytes(t *testing.T, members ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	for _, m := range members {
		w := gzip.NewWriter(&buf)
		_, err := w.Write([]byte(m))
		require.NoError(t, err)
		require.NoError(t, w.Close())
	}
	return buf.Bytes()
}

func zlibBytes(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, err := w.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestGzipLoader_Load(t *testing.T) {
	tests := []struct {
		name    string
		data    func(t *testing.T) []byte
		want    string
		wantErr bool
	}{
		{
			name: "gzip",
			data: func(t *testing.T) []byte { return gzipBytes(t, "line 1\nline 2\n") },
			want: "line 1\nline 2\n",
		},
		{
			name: "multi member gzip",
			data: func(t *testing.T) []byte { return gzipBytes(t, "line 1\n", "line 2\n") },
			want: "line 1\nline 2\n",
		},
		{
			name: "empty gzip payload",
			data: func(t *testing.T) []byte { return gzipBytes(t, "") },
			want: "",
		},
		{
			name: "zlib",
			data: func(t *testing.T) []byte { return zlibBytes(t, "line 1\n") },
			want: "line 1\n",
		},
		{
			name:    "not compressed",
			data:    func(*testing.T) []byte { return []byte("plain text") },
			wantErr: true,
		},
		{
			name: "truncated gzip",
			data: func(t *testing.T) []byte {
				b := gzipBytes(t, "line 1\nline 2\n")
				return b[:len(b)-6]
			},
			wantErr: true,
		},
		{
			name:    "empty input",
			data:    func(*testing.T) []byte { return nil },
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewGzipLoader().Load(context.Background(), tt.data(t))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
