package artifact_source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/turbot/cloudfront-analytics-forwarder/artifact_source_config"
	"github.com/turbot/cloudfront-analytics-forwarder/types"
)

// FileSystemSource is an [ArtifactSource] which reads artifacts from local disk
// the bucket is a directory below the root and the key a path below that
type FileSystemSource struct {
	Root string
}

func NewFileSystemSource(config *artifact_source_config.FileSystemSourceConfig) (*FileSystemSource, error) {
	if config == nil {
		return nil, fmt.Errorf("file_system source requires a file_system config block")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	root, err := filepath.Abs(config.Root)
	if err != nil {
		return nil, err
	}
	slog.Info("Initialized FileSystemSource", "root", root)
	return &FileSystemSource{Root: root}, nil
}

func (s *FileSystemSource) Identifier() string {
	return artifact_source_config.FileSystemSourceIdentifier
}

func (s *FileSystemSource) Read(_ context.Context, info *types.ArtifactInfo) ([]byte, error) {
	path, err := s.localPath(info)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s, %w", ErrArtifactNotFound, info, err)
		}
		return nil, fmt.Errorf("failed to read artifact %s, %w", info, err)
	}
	return data, nil
}

func (s *FileSystemSource) Delete(_ context.Context, info *types.ArtifactInfo) error {
	path, err := s.localPath(info)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete artifact %s, %w", info, err)
	}
	return nil
}

func (s *FileSystemSource) Close() error {
	return nil
}

// localPath returns the path of the artifact, which must be inside the root
func (s *FileSystemSource) localPath(info *types.ArtifactInfo) (string, error) {
	path := filepath.Join(s.Root, info.Bucket, filepath.FromSlash(info.Key))
	if !strings.HasPrefix(path, s.Root+string(filepath.Separator)) {
		return "", fmt.Errorf("artifact %s is outside the source root", info)
	}
	return path, nil
}
