// Package artifact stores the files a run produces. Every run writes under
// its own prefix, a random UUID unless the caller fixes one, into a local
// directory, an S3 bucket or a MinIO bucket.
package artifact
