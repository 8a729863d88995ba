// Package minio provides a BlobStore implementation using the MinIO
// client, for self-hosted and S3-compatible object storage (MinIO,
// Ceph, SeaweedFS, Garage).
//
// It mirrors the behavior of the s3 package without pulling in any
// AWS dependencies, which matters for air-gapped render farms that
// publish bundles to a local MinIO deployment.
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
//	store := minioblob.NewStore(client, "bundles", "models/")
//	est, err := pixgo.FromStore(ctx, store, "teapot-512.pcm")
package minio
