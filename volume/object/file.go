package object

import (
	"io"
	"io/fs"
	"time"

	"github.com/offlinereader/zimscan/volume"
)

// File represents a fetched object. The object's contents are held in
// memory, so all reads are served locally.
type File struct {
	name string

	// reader wraps the downloaded object data. The field holds a type
	// that implements both io.ReadSeeker and io.ReaderAt (like
	// *bytes.Reader).
	reader interface {
		io.ReadSeeker
		io.ReaderAt
	}
	size    int64
	modTime time.Time
	closed  bool
}

// Read reads up to len(p) bytes into p. At end of file, Read returns
// 0, io.EOF.
func (f *File) Read(p []byte) (int, error) {
	if f.closed {
		return 0, &fs.PathError{Op: "read", Path: f.name, Err: fs.ErrClosed}
	}
	return f.reader.Read(p)
}

// ReadAt reads len(p) bytes from the File starting at byte offset off.
func (f *File) ReadAt(p []byte, off int64) (int, error) {
	if f.closed {
		return 0, &fs.PathError{Op: "readat", Path: f.name, Err: fs.ErrClosed}
	}
	return f.reader.ReadAt(p, off)
}

// Seek sets the offset for the next Read operation.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	if f.closed {
		return 0, &fs.PathError{Op: "seek", Path: f.name, Err: fs.ErrClosed}
	}
	return f.reader.Seek(offset, whence)
}

// Stat returns the FileInfo structure describing the fetched object.
func (f *File) Stat() (fs.FileInfo, error) {
	return &fileInfo{
		name:    f.name,
		size:    f.size,
		modTime: f.modTime,
		mode:    0o644,
	}, nil
}

// Close releases the in-memory contents. Close is idempotent.
func (f *File) Close() error {
	f.closed = true
	return nil
}

// Name returns the path the file was fetched with.
func (f *File) Name() string {
	return f.name
}

// fileInfo implements fs.FileInfo for fetched objects.
type fileInfo struct {
	name    string
	size    int64
	modTime time.Time
	mode    fs.FileMode
}

func (fi *fileInfo) Name() string       { return fi.name }
func (fi *fileInfo) Size() int64        { return fi.size }
func (fi *fileInfo) Mode() fs.FileMode  { return fi.mode }
func (fi *fileInfo) ModTime() time.Time { return fi.modTime }
func (fi *fileInfo) IsDir() bool        { return fi.mode&fs.ModeDir != 0 }
func (fi *fileInfo) Sys() interface{}   { return nil }

// Compile-time interface checks.
var (
	_ volume.File = (*File)(nil)
	_ io.Seeker   = (*File)(nil)
	_ io.ReaderAt = (*File)(nil)
)
