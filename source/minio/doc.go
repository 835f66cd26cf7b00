// Package minio provides a source.Source over MinIO and other S3-compatible
// object stores (Ceph, SeaweedFS, Garage).
//
// # Basic Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	src := miniosrc.NewStore(client, "annotations", "go/")
//	session, err := enriched.Open(ctx, src, cfg)
package minio
