// Package blobstore provides storage abstraction for contribution
// bundle artifacts.
//
// Bundles are built offline and fetched by viewers at load time, so
// the read and write sides are split: BlobStore is the minimal read
// surface an estimator needs, WritableStore is what build pipelines
// publish through. Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, memory-mapped reads, atomic writes
//   - MemoryStore: in-process, for tests and composition
//   - CachingStore: remote store mirrored into a local directory
//   - s3.Store: Amazon S3 with range reads and managed uploads
//   - minio.Store: MinIO and other S3-compatible object storage
//
// # Reading
//
//	store := blobstore.NewLocalStore("/var/lib/pixgo")
//	est, err := pixgo.FromStore(ctx, store, "teapot-512.pcm")
//
// Blobs that implement Mappable decode without copying; everything
// else streams through NewReader.
//
// # Publishing
//
//	w, err := store.Create(ctx, "teapot-512.pcm")
//	if err != nil {
//	    return err
//	}
//	if err := maps.Encode(w, contrib.CompressionZSTD); err != nil {
//	    w.Abort()
//	    return err
//	}
//	return w.Close()
//
// For cloud backends this streams the encoder output directly into a
// managed multipart upload.
package blobstore
