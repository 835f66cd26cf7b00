// Package source provides read access to annotation and mapping tables.
//
// A Source resolves a table name to a stream. Implementations exist for the
// local file system (memory-mapped), in-memory tables, Amazon S3
// (source/s3) and S3-compatible stores such as MinIO (source/minio).
//
// # Usage
//
//	src := source.NewLocal("/data/go")
//	rc, err := src.Open(ctx, "go.anno.tsv")
//	if err != nil { ... }
//	defer rc.Close()
//
// Wrappers add rate limiting (Throttle) and caching (Cache). FetchAll reads
// several tables concurrently.
package source
