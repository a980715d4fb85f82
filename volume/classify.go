package volume

import (
	"path"
	"strings"
)

// MarkerName is the sentinel file whose presence marks its containing
// directory as the root of a legacy split archive.
const MarkerName = "titles.idx"

// archiveExts are the recognized self-contained archive extensions,
// matched case-insensitively.
var archiveExts = []string{".zim", ".zimaa"}

// IsArchiveFile reports whether name ends in a recognized single-file
// archive extension. The match is case-insensitive.
func IsArchiveFile(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range archiveExts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Classify applies the archive naming rule to a volume-relative file
// path and returns the scan entry it produces, if any.
//
// A file named with the MarkerName suffix yields its containing
// directory with a trailing separator ("/" when the file sits at the
// volume root). A file with a recognized archive extension yields its
// own full path. Every other name yields nothing. The two rules are
// mutually exclusive for any single name.
func Classify(p string) (string, bool) {
	name := path.Base(p)
	if strings.HasSuffix(name, MarkerName) {
		dir := path.Dir(p)
		if dir == "." || dir == "/" {
			return "/", true
		}
		return dir + "/", true
	}
	if IsArchiveFile(name) {
		return p, true
	}
	return "", false
}
