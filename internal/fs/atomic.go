package fs

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
)

// SaveToFile writes a file through writeFunc and atomically replaces
// the target: the data goes to a temp file in the same directory that
// is synced, closed and renamed over the target.
func SaveToFile(fsys FileSystem, filename string, writeFunc func(io.Writer) error) error {
	tmpName := filename + ".tmp"

	f, err := fsys.OpenFile(tmpName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	// Use buffered writer to batch writes (critical for performance)
	buf := bufio.NewWriterSize(f, 256*1024) // 256KB buffer
	if err := writeFunc(buf); err != nil {
		f.Close()
		fsys.Remove(tmpName)
		return err
	}
	if err := buf.Flush(); err != nil {
		f.Close()
		fsys.Remove(tmpName)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		fsys.Remove(tmpName)
		return err
	}
	if err := f.Close(); err != nil {
		fsys.Remove(tmpName)
		return err
	}

	if err := fsys.Rename(tmpName, filename); err != nil {
		fsys.Remove(tmpName)
		return err
	}

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	SyncDir(fsys, filepath.Dir(filename))

	return nil
}

// SyncDir fsyncs a directory so a preceding rename is durable. Errors
// are ignored: not every platform or filesystem supports it.
func SyncDir(fsys FileSystem, dir string) {
	if d, err := fsys.OpenFile(dir, os.O_RDONLY, 0); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}
}

// LoadFromFile opens a file and reads it through readFunc.
func LoadFromFile(fsys FileSystem, filename string, readFunc func(io.Reader) error) error {
	f, err := fsys.OpenFile(filename, os.O_RDONLY, 0)
	if err != nil {
		return err
	}
	defer f.Close()

	// Use buffered reader to batch reads
	buf := bufio.NewReaderSize(f, 256*1024) // 256KB buffer
	return readFunc(buf)
}
