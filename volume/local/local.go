// Package local implements volume.Volume over a go-billy filesystem
// tree, the backend used for device directories and SD cards.
//
// Scanning is an explicit-stack depth-first traversal: each directory is
// read with one batched listing call, child directories are pushed onto
// a work list and files are classified as they are seen. The work list
// keeps traversal memory bounded and independent of call-stack behavior.
package local

import (
	"context"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/offlinereader/zimscan/volume"
)

// Volume is the tree-walking variant of volume.Volume. The billy handle
// is fixed at construction; a volume is never re-pointed at a different
// filesystem.
type Volume struct {
	name string
	fs   billy.Filesystem
}

// New creates a Volume over the given billy filesystem, rooted at the
// filesystem's root.
func New(name string, fsys billy.Filesystem) *Volume {
	return &Volume{
		name: name,
		fs:   fsys,
	}
}

// NewOS creates a Volume rooted at an OS directory.
func NewOS(name, root string) *Volume {
	return New(name, osfs.New(root))
}

// NewInMemory creates an empty in-memory Volume.
func NewInMemory(name string) *Volume {
	return New(name, memfs.New())
}

// Name implements volume.Volume.Name.
func (v *Volume) Name() string {
	return v.name
}

// Raw returns the underlying go-billy filesystem.
//
//nolint:ireturn // returning interface here is intentional to expose the adapter target.
func (v *Volume) Raw() billy.Filesystem {
	return v.fs
}

// Fetch implements volume.Volume.Fetch.
//
//nolint:ireturn // API returns the volume.File interface by design for flexibility.
func (v *Volume) Fetch(ctx context.Context, path string) (volume.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, volume.NewPathError("fetch", v.name, path, err)
	}
	f, err := v.fs.Open(path)
	if err != nil {
		return nil, volume.NewPathError("fetch", v.name, path, translateError(err))
	}
	return &File{
		file: f,
		fs:   v.fs,
	}, nil
}

// Scan implements volume.Volume.Scan.
//
// The traversal visits every reachable directory exactly once and
// classifies every file in it exactly once; no particular order is
// guaranteed. A failed listing call aborts the whole scan and the
// entries found so far are discarded, matching the contract of the
// cursor variant.
func (v *Volume) Scan(ctx context.Context) ([]string, error) {
	var found []string
	stack := []string{""}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, volume.NewError("scan", v.name, err)
		}

		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := v.fs.ReadDir(listArg(dir))
		if err != nil {
			return nil, volume.NewPathError("scan", v.name, dir, translateError(err))
		}

		for _, info := range entries {
			child := childPath(dir, info.Name())
			if info.IsDir() {
				stack = append(stack, child)
				continue
			}
			if entry, ok := volume.Classify(child); ok {
				found = append(found, entry)
			}
		}
	}

	return found, nil
}

// listArg maps the empty volume root onto billy's current-directory form.
func listArg(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}

// childPath joins a parent directory and a child name without the "./"
// prefix billy would otherwise carry into result entries.
func childPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

var _ volume.Volume = (*Volume)(nil)
