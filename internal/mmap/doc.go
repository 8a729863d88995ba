// Package mmap provides read-only memory-mapped file access.
//
// Contribution map bundles are decoded straight out of the mapped
// bytes, so opening a blob costs no read or copy up front:
//
//	m, err := mmap.Open("bundle.pcm")
//	if err != nil { ... }
//	defer m.Close()
//
//	m.Advise(mmap.AccessSequential)
//	data := m.Bytes()
//
// On unix systems the package uses mmap(2) with madvise(2) for access
// hints; on Windows it uses CreateFileMapping/MapViewOfFile and access
// hints are a no-op.
//
// A Mapping is safe for concurrent reads. Close is idempotent, but the
// caller must make sure no reads of Bytes() outlive it.
package mmap
