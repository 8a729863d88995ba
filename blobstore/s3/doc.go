// Package s3 provides a BlobStore implementation backed by Amazon S3.
//
// Reads use ranged GETs so partial access to a bundle does not fetch
// the whole object; streaming writes go through the SDK's managed
// uploader, which switches to multipart uploads for large bundles.
//
// # Basic Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("bundles/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	est, err := pixgo.FromStore(ctx, store, "teapot-512.pcm")
//
// An already configured client can be injected with WithClient; tests
// use that to substitute a mock.
//
// # Versioned Publishing
//
// Bundles are immutable, so republishing a model means writing a new
// object and moving a pointer. Catalog keeps that pointer in a
// DynamoDB table with optimistic version checks, and CatalogStore
// exposes the latest bundle as the virtual blob name CurrentBundle:
//
//	catalog := s3.NewCatalog(ddbClient, "pixgo-bundles")
//	cs := s3.NewCatalogStore(store, catalog, "teapot")
//
//	version, err := cs.Publish(ctx, "teapot-20260825.pcm", data)
//	...
//	est, err := pixgo.FromStore(ctx, cs, s3.CurrentBundle)
package s3
