package artifact_source_config

import (
	"fmt"
	"os"
)

// FileSystemSourceConfig configures a source which reads artifacts from local disk
// an artifact is stored at <root>/<bucket>/<key>
type FileSystemSourceConfig struct {
	Root string `hcl:"root"`
}

func (f *FileSystemSourceConfig) Validate() error {
	if f.Root == "" {
		return fmt.Errorf("required field: root can not be empty")
	}

	info, err := os.Stat(f.Root)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("root %s is not a directory or does not exist", f.Root)
	}

	return nil
}
