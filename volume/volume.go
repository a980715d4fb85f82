// Package volume defines the storage contract used to discover archives
// on heterogeneous storage backends.
//
// A Volume is one logical storage unit (an SD card, a device storage
// area, a bucket on an object store). Call sites never know which
// concrete storage technology backs a volume: every backend normalizes
// its native API into the same small capability set of fetching a file
// by path and scanning the whole volume for archives.
//
// Two backend variants exist, each owning its own traversal algorithm:
//
//   - local: batched directory listings walked with an explicit stack
//     (see the local subpackage)
//   - object: a single sequential listing cursor driven to completion
//     (see the object subpackage)
//
// ## Thread Safety
//
// Volume implementations are safe for concurrent use. A scan's
// accumulator is owned exclusively by that scan invocation and is never
// shared between concurrent scans.
package volume

import (
	"context"
	"io/fs"
	"time"
)

// File represents an open read-only file handle on a volume.
// Implementations should behave consistently with the standard library.
type File interface {
	Close() error
	Name() string
	Read(p []byte) (n int, err error)
	ReadAt(p []byte, off int64) (n int, err error)
	Seek(offset int64, whence int) (int64, error)
	Stat() (fs.FileInfo, error)
}

// Volume is the backend contract implemented by every storage variant.
//
// Paths are slash-separated and relative to the volume root; a volume's
// results are never rooted in another volume's convention. The handle to
// the underlying native store is fixed at construction and a volume is
// never re-pointed at a different store.
type Volume interface {
	// Name returns the human-readable volume name.
	Name() string

	// Fetch opens the file at the exact path for reading. Backend
	// failures are reduced to the error taxonomy of this package
	// (ErrNotFound, ErrPermission, ...); errors with no mapping are
	// surfaced unchanged inside an *Error so they can still be logged.
	Fetch(ctx context.Context, path string) (File, error)

	// Scan traverses the entire volume and returns every discovered
	// archive entry: directory paths with a trailing separator for
	// split archives marked by a sentinel file, and full file paths for
	// self-contained archive files. If the underlying enumeration or
	// listing primitive fails partway through, Scan returns the error
	// and discards everything found so far; there is no partial-success
	// contract at this layer.
	Scan(ctx context.Context) ([]string, error)
}

// Entry is a single object yielded by a Cursor step.
type Entry struct {
	// Path is the object's volume-relative path.
	Path string

	// Size is the object's size in bytes.
	Size int64

	// LastModified is the object's last modification time.
	LastModified time.Time
}

// Cursor steps through a backend enumeration one entry at a time.
// Exactly one step is outstanding at any moment; the enumeration is
// inherently sequential. Usage mirrors bufio.Scanner:
//
//	cur := vol.Enumerate(ctx, "")
//	for cur.Next() {
//		entry := cur.Entry()
//		// ...
//	}
//	if err := cur.Err(); err != nil {
//		// the enumeration failed partway through
//	}
type Cursor interface {
	// Next advances the cursor to the next entry. It returns false when
	// the enumeration is exhausted or a step failed; Err distinguishes
	// the two.
	Next() bool

	// Entry returns the entry produced by the last successful Next.
	Entry() Entry

	// Err returns the error that stopped the cursor, or nil if the
	// enumeration completed.
	Err() error
}

// Enumerator is an optional capability exposing a backend's raw listing
// cursor. Only cursor-style backends implement it; it is not used by
// Scan itself but lets callers run a custom traversal.
type Enumerator interface {
	// Enumerate returns a cursor over every object under prefix.
	Enumerate(ctx context.Context, prefix string) Cursor
}
