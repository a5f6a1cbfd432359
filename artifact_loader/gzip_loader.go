package artifact_loader

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

const GzipLoaderIdentifier = "gzip_loader"

var gzipMagic = []byte{0x1f, 0x8b}

// GzipLoader is a Loader which inflates a gzip artifact
// if the data does not carry a gzip header it is treated as zlib wrapped deflate
type GzipLoader struct {
}

func NewGzipLoader() Loader {
	return &GzipLoader{}
}

func (g GzipLoader) Identifier() string {
	return GzipLoaderIdentifier
}

// Load implements Loader
func (g GzipLoader) Load(ctx context.Context, data []byte) (string, error) {
	var reader io.ReadCloser
	var err error
	if bytes.HasPrefix(data, gzipMagic) {
		reader, err = gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return "", fmt.Errorf("error creating gzip reader: %w", err)
		}
	} else {
		reader, err = zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return "", fmt.Errorf("error creating zlib reader: %w", err)
		}
	}
	defer reader.Close()

	text, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("error decompressing %d bytes: %w", len(data), err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	return string(text), nil
}
