// Package artifact_source provides access to the storage services which hold CloudFront log artifacts.
//
// An [ArtifactSource] reads the raw (compressed) contents of a single artifact, identified by a
// [types.ArtifactInfo], and deletes it once it has been processed.
//
// Sources provided:
// - [AwsS3BucketSource]
// - [GcpStorageBucketSource]
// - [FileSystemSource]
//
// Use [NewArtifactSource] to create a source from its identifier and the configured connections.
package artifact_source
