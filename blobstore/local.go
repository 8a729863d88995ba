package blobstore

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hupe1980/pixgo/internal/fs"
	"github.com/hupe1980/pixgo/internal/mmap"
)

// LocalStore stores blobs as files under a root directory. Reads are
// served from a read-only memory mapping, so decoding a bundle does
// not copy it through userspace buffers first.
type LocalStore struct {
	dir  string
	fsys fs.FileSystem
}

// NewLocalStore creates a store rooted at dir. The directory is
// created lazily on the first write.
func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir, fsys: fs.Default}
}

func (l *LocalStore) path(name string) string {
	return filepath.Join(l.dir, filepath.FromSlash(name))
}

// Open memory-maps the named blob. The returned blob implements
// Mappable for zero-copy decoding.
func (l *LocalStore) Open(ctx context.Context, name string) (Blob, error) {
	m, err := mmap.Open(l.path(name))
	if err != nil {
		return nil, err
	}
	// Bundles are decoded front to back.
	_ = m.Advise(mmap.AccessSequential)
	return &localBlob{m: m}, nil
}

// Put writes a blob atomically via a temp file and rename.
func (l *LocalStore) Put(ctx context.Context, name string, data []byte) error {
	p := l.path(name)
	if err := l.fsys.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}
	return fs.SaveToFile(l.fsys, p, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// PutIfAbsent writes a blob only if it does not exist yet. It returns
// an error satisfying errors.Is(err, ErrExists) when the name is
// already taken.
func (l *LocalStore) PutIfAbsent(ctx context.Context, name string, data []byte) error {
	p := l.path(name)
	if err := l.fsys.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}
	f, err := l.fsys.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		l.fsys.Remove(p)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		l.fsys.Remove(p)
		return err
	}
	return f.Close()
}

// Create opens a streaming writer. Data goes to a temp file that is
// synced and renamed into place on Close, so readers never see a
// partial blob.
func (l *LocalStore) Create(ctx context.Context, name string) (WritableBlob, error) {
	p := l.path(name)
	if err := l.fsys.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return nil, err
	}
	tmp := p + ".tmp"
	f, err := l.fsys.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, err
	}
	return &localWritableBlob{
		fsys:  l.fsys,
		f:     f,
		buf:   bufio.NewWriterSize(f, 256*1024),
		tmp:   tmp,
		final: p,
	}, nil
}

// Delete removes a blob. Missing blobs are ignored.
func (l *LocalStore) Delete(ctx context.Context, name string) error {
	if err := l.fsys.Remove(l.path(name)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// List walks the store directory and returns the relative,
// slash-separated names of all blobs under prefix, sorted.
func (l *LocalStore) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string

	var walk func(rel string) error
	walk = func(rel string) error {
		entries, err := l.fsys.ReadDir(filepath.Join(l.dir, filepath.FromSlash(rel)))
		if err != nil {
			// A store that was never written to has no directory yet.
			if rel == "" && os.IsNotExist(err) {
				return nil
			}
			return err
		}
		for _, e := range entries {
			child := e.Name()
			if rel != "" {
				child = rel + "/" + child
			}
			if e.IsDir() {
				if err := walk(child); err != nil {
					return err
				}
				continue
			}
			// In-flight temp files are not blobs.
			if strings.HasSuffix(child, ".tmp") {
				continue
			}
			if strings.HasPrefix(child, prefix) {
				names = append(names, child)
			}
		}
		return nil
	}

	if err := walk(""); err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

type localBlob struct {
	m *mmap.Mapping
}

func (b *localBlob) ReadAt(p []byte, off int64) (int, error) {
	return b.m.ReadAt(p, off)
}

func (b *localBlob) Size() int64 {
	return int64(b.m.Size())
}

func (b *localBlob) Bytes() ([]byte, error) {
	data := b.m.Bytes()
	if data == nil && b.m.Size() > 0 {
		return nil, mmap.ErrClosed
	}
	return data, nil
}

func (b *localBlob) Close() error {
	return b.m.Close()
}

type localWritableBlob struct {
	fsys  fs.FileSystem
	f     fs.File
	buf   *bufio.Writer
	tmp   string
	final string
	done  bool
}

func (b *localWritableBlob) Write(p []byte) (int, error) {
	return b.buf.Write(p)
}

func (b *localWritableBlob) Close() error {
	if b.done {
		return nil
	}
	b.done = true

	if err := b.buf.Flush(); err != nil {
		b.f.Close()
		b.fsys.Remove(b.tmp)
		return err
	}
	if err := b.f.Sync(); err != nil {
		b.f.Close()
		b.fsys.Remove(b.tmp)
		return err
	}
	if err := b.f.Close(); err != nil {
		b.fsys.Remove(b.tmp)
		return err
	}
	if err := b.fsys.Rename(b.tmp, b.final); err != nil {
		b.fsys.Remove(b.tmp)
		return err
	}
	fs.SyncDir(b.fsys, filepath.Dir(b.final))
	return nil
}

func (b *localWritableBlob) Abort() error {
	if b.done {
		return nil
	}
	b.done = true
	b.f.Close()
	return b.fsys.Remove(b.tmp)
}
