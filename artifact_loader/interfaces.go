package artifact_loader

import (
	"context"
)

// Loader is an interface which provides a method for converting the raw bytes of an artifact into text
// performing any necessary decompression/decryption
// Loaders provided: [GzipLoader]
type Loader interface {
	Identifier() string
	Load(context.Context, []byte) (string, error)
}
