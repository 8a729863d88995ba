package blobstore

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"
)

// CachingOptions configures a CachingStore.
type CachingOptions struct {
	// Logger receives cache fill events. Defaults to a discarding
	// logger.
	Logger *slog.Logger
}

// CachingStore wraps a remote store with a directory of local copies.
// Bundles are immutable, so a blob is downloaded at most once and
// every later Open is served from the memory-mapped local file.
//
// Concurrent opens of the same missing blob share one download; the
// context of the caller that started it drives the transfer.
type CachingStore struct {
	remote BlobStore
	local  *LocalStore
	logger *slog.Logger
	group  singleflight.Group
}

// NewCachingStore creates a caching store that mirrors blobs from
// remote into dir.
func NewCachingStore(remote BlobStore, dir string, optFns ...func(o *CachingOptions)) *CachingStore {
	opts := CachingOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &CachingStore{
		remote: remote,
		local:  NewLocalStore(dir),
		logger: opts.Logger,
	}
}

// Open returns the named blob, downloading it on the first access.
// The returned blob implements Mappable.
func (c *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := c.local.Open(ctx, name)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if _, err, _ := c.group.Do(name, func() (any, error) {
		return nil, c.fill(ctx, name)
	}); err != nil {
		return nil, err
	}
	return c.local.Open(ctx, name)
}

// Evict drops the local copy of a blob. The next Open downloads it
// again.
func (c *CachingStore) Evict(ctx context.Context, name string) error {
	return c.local.Delete(ctx, name)
}

func (c *CachingStore) fill(ctx context.Context, name string) error {
	// A flight that completed between the miss and this call has
	// already placed the file.
	if b, err := c.local.Open(ctx, name); err == nil {
		return b.Close()
	}

	start := time.Now()

	src, err := c.remote.Open(ctx, name)
	if err != nil {
		return err
	}
	defer src.Close()

	r, err := NewReader(src)
	if err != nil {
		return err
	}
	defer r.Close()

	w, err := c.local.Create(ctx, name)
	if err != nil {
		return err
	}
	n, err := io.Copy(w, r)
	if err != nil {
		w.Abort()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	c.logger.Debug("Cached remote blob",
		"name", name,
		"bytes", n,
		"duration", time.Since(start),
	)
	return nil
}
