// Package s3 provides an Amazon S3 implementation of source.Source.
//
// # Usage
//
//	src, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("go/2024-06/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	session, err := enriched.Open(ctx, src, cfg)
//
// Objects are fetched with the S3 transfer manager, which splits large
// tables into concurrent ranged GETs.
package s3
