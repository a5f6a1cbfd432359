package types

import (
	"fmt"
	"path"
)

// ArtifactInfo identifies a single log object in a storage bucket
type ArtifactInfo struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
	// Size as reported by the trigger event, if known
	Size int64 `json:"size,omitempty"`
}

func NewArtifactInfo(bucket, key string) *ArtifactInfo {
	return &ArtifactInfo{
		Bucket: bucket,
		Key:    key,
	}
}

// Name returns the base name of the object key
func (i *ArtifactInfo) Name() string {
	return path.Base(i.Key)
}

func (i *ArtifactInfo) String() string {
	return fmt.Sprintf("%s/%s", i.Bucket, i.Key)
}
