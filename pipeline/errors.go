package pipeline

import (
	"fmt"

	"github.com/turbot/cloudfront-analytics-forwarder/types"
)

// StorageReadError is returned when the artifact could not be read, nothing is sent or deleted
type StorageReadError struct {
	Artifact *types.ArtifactInfo
	Err      error
}

func (e *StorageReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %s", e.Artifact, e.Err.Error())
}

func (e *StorageReadError) Unwrap() error {
	return e.Err
}

// DecompressionError is returned when the artifact is not valid compressed data, nothing is sent or deleted
type DecompressionError struct {
	Artifact *types.ArtifactInfo
	Err      error
}

func (e *DecompressionError) Error() string {
	return fmt.Sprintf("failed to decompress %s: %s", e.Artifact, e.Err.Error())
}

func (e *DecompressionError) Unwrap() error {
	return e.Err
}

// StorageDeleteError is returned when the artifact could not be deleted after dispatch
type StorageDeleteError struct {
	Artifact *types.ArtifactInfo
	Err      error
}

func (e *StorageDeleteError) Error() string {
	return fmt.Sprintf("failed to delete %s: %s", e.Artifact, e.Err.Error())
}

func (e *StorageDeleteError) Unwrap() error {
	return e.Err
}
