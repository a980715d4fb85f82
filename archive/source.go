package archive

import "github.com/offlinereader/zimscan/volume"

// Source identifies an archive before it is opened: either a volume and
// a path produced by a scan, or an explicit pre-resolved file set picked
// by the user off-volume. At most one of the two forms is populated.
type Source struct {
	// Volume is the originating volume for a path-backed source.
	Volume volume.Volume

	// Path is a scan result entry: a marked directory with a trailing
	// separator, or a single archive file path.
	Path string

	// Files is the explicit file collection of a file-backed source.
	Files []volume.File
}

// PathSource creates a Source from a scan result entry.
func PathSource(vol volume.Volume, path string) Source {
	return Source{
		Volume: vol,
		Path:   path,
	}
}

// FileSource creates a Source from an explicit file collection.
func FileSource(files ...volume.File) Source {
	return Source{
		Files: files,
	}
}
