package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// ErrExists is returned by conditional writes when the blob is
// already present. The default maps to `os.ErrExist`.
var ErrExists = os.ErrExist

// BlobStore is an abstraction for reading immutable contribution
// artifacts. Implementations must be safe for concurrent use.
type BlobStore interface {
	// Open opens a blob for reading. Remote implementations retain
	// ctx for subsequent reads on the returned Blob.
	Open(ctx context.Context, name string) (Blob, error)
}

// Blob is a read-only handle to a stored artifact.
type Blob interface {
	io.ReaderAt
	io.Closer
	// Size returns the size of the blob in bytes.
	Size() int64
}

// Mappable is an optional interface for Blobs backed by memory or a
// memory mapping.
type Mappable interface {
	// Bytes returns the underlying byte slice.
	// The slice is valid until the Blob is closed.
	// This is a zero-copy operation if supported.
	Bytes() ([]byte, error)
}

// Ranger is an optional interface for Blobs that can stream a byte
// range in a single request. Remote backends implement it so that a
// sequential decode does not issue one request per ReadAt.
type Ranger interface {
	// ReadRange returns a reader over [off, off+length). A range
	// reaching past the end of the blob is truncated.
	ReadRange(off, length int64) (io.ReadCloser, error)
}

// WritableStore extends BlobStore with the write side used by bundle
// builders and publishing pipelines.
type WritableStore interface {
	BlobStore

	// Put writes a blob in one shot. The write is atomic: readers
	// never observe a partially written blob.
	Put(ctx context.Context, name string, data []byte) error

	// Create opens a blob for streaming writes. The blob becomes
	// visible when Close returns without error.
	Create(ctx context.Context, name string) (WritableBlob, error)

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all blobs with the given prefix,
	// sorted ascending.
	List(ctx context.Context, prefix string) ([]string, error)
}

// WritableBlob is a streaming write handle returned by Create.
type WritableBlob interface {
	io.Writer
	io.Closer
	// Abort discards the blob instead of completing it. Abort after
	// Close is a no-op.
	Abort() error
}

// NewReader returns a reader over the whole blob. Blobs that
// implement Ranger stream their content in a single request;
// everything else is read through ReadAt. Closing the reader does
// not close the blob.
func NewReader(b Blob) (io.ReadCloser, error) {
	size := b.Size()
	if size == 0 {
		return io.NopCloser(io.NewSectionReader(b, 0, 0)), nil
	}
	if r, ok := b.(Ranger); ok {
		return r.ReadRange(0, size)
	}
	return io.NopCloser(io.NewSectionReader(b, 0, size)), nil
}
