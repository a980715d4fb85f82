// Package archive routes a discovered path, or an explicit file set, to
// the matching archive construction entry point.
//
// The package is a pure dispatch boundary: it performs no I/O of its own
// and never inspects the handle the archive subsystem returns.
package archive

import (
	"context"

	"github.com/offlinereader/zimscan/volume"
)

// Reader is the opaque handle produced by the archive subsystem.
type Reader interface {
	Close() error
}

// Opener is the boundary to the archive subsystem. Implementations open
// and parse the archive format; this package only selects which entry
// point to call.
type Opener interface {
	// OpenSplit opens a legacy split archive rooted at a marked
	// directory on the volume.
	OpenSplit(ctx context.Context, vol volume.Volume, dir string) (Reader, error)

	// OpenSplitFiles opens a legacy split archive from an explicit,
	// already-resolved file collection.
	OpenSplitFiles(ctx context.Context, files []volume.File) (Reader, error)

	// OpenSingle opens a self-contained archive file on the volume.
	OpenSingle(ctx context.Context, vol volume.Volume, path string) (Reader, error)
}

// Resolver decides the archive representation for a source and hands
// back whatever handle the opener constructs. It retains nothing; the
// caller owns the handle from that point.
type Resolver struct {
	opener Opener
}

// NewResolver creates a Resolver over the given opener.
func NewResolver(opener Opener) *Resolver {
	return &Resolver{
		opener: opener,
	}
}

// Resolve maps a source onto the matching construction entry point.
// Paths ending in a recognized archive extension open as single-file
// archives; every other input (directory-marker paths, or an explicit
// file collection) opens through the split path.
//
//nolint:ireturn // API returns the Reader interface by design; the handle is opaque.
func (r *Resolver) Resolve(ctx context.Context, src Source) (Reader, error) {
	switch {
	case len(src.Files) > 0:
		return r.opener.OpenSplitFiles(ctx, src.Files)
	case volume.IsArchiveFile(src.Path):
		return r.opener.OpenSingle(ctx, src.Volume, src.Path)
	default:
		return r.opener.OpenSplit(ctx, src.Volume, src.Path)
	}
}
