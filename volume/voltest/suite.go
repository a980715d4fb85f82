// Package voltest provides a conformance test suite for validating
// volume.Volume implementations against the storage contract.
//
// The suite validates the contract, not backend-specific behavior: every
// backend must classify the same trees into the same entry sets, treat
// scan failures as all-or-nothing, and reduce fetch failures to the
// shared error taxonomy. Traversal order is left to the backend, so
// results are compared as sets.
//
// Example usage:
//
//	func TestMyBackend(t *testing.T) {
//	    voltest.TestVolume(t, func(t *testing.T, files map[string][]byte) volume.Volume {
//	        return mybackend.NewSeeded(t, files)
//	    })
//	}
package voltest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"testing"

	"github.com/offlinereader/zimscan/volume"
)

// Factory returns a fresh volume populated with the given files, keyed
// by volume-relative path. Each invocation should start clean.
type Factory func(t *testing.T, files map[string][]byte) volume.Volume

// TestVolume runs the conformance suite against a volume implementation.
func TestVolume(t *testing.T, newVolume Factory) {
	t.Run("ScanEmptyVolume", func(t *testing.T) {
		testScanEmptyVolume(t, newVolume)
	})
	t.Run("ScanMarkerAtRoot", func(t *testing.T) {
		testScanMarkerAtRoot(t, newVolume)
	})
	t.Run("ScanMarkerInSubdir", func(t *testing.T) {
		testScanMarkerInSubdir(t, newVolume)
	})
	t.Run("ScanSingleArchive", func(t *testing.T) {
		testScanSingleArchive(t, newVolume)
	})
	t.Run("ScanNestedArchive", func(t *testing.T) {
		testScanNestedArchive(t, newVolume)
	})
	t.Run("ScanCaseInsensitive", func(t *testing.T) {
		testScanCaseInsensitive(t, newVolume)
	})
	t.Run("ScanMarkerAndArchiveSameDir", func(t *testing.T) {
		testScanMarkerAndArchiveSameDir(t, newVolume)
	})
	t.Run("ScanIgnoresOtherFiles", func(t *testing.T) {
		testScanIgnoresOtherFiles(t, newVolume)
	})
	t.Run("ScanIdempotent", func(t *testing.T) {
		testScanIdempotent(t, newVolume)
	})
	t.Run("FetchExisting", func(t *testing.T) {
		testFetchExisting(t, newVolume)
	})
	t.Run("FetchNotFound", func(t *testing.T) {
		testFetchNotFound(t, newVolume)
	})
}

// scanSet runs a scan and returns the entries as a sorted set.
func scanSet(t *testing.T, vol volume.Volume) []string {
	t.Helper()
	entries, err := vol.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan(): got error %v, want nil", err)
	}
	sorted := append([]string(nil), entries...)
	sort.Strings(sorted)
	return sorted
}

// wantSet asserts the scan of vol yields exactly the given entry set.
func wantSet(t *testing.T, vol volume.Volume, want []string) {
	t.Helper()
	got := scanSet(t, vol)
	sortedWant := append([]string(nil), want...)
	sort.Strings(sortedWant)
	if len(got) != len(sortedWant) {
		t.Fatalf("Scan(): got %v, want %v", got, sortedWant)
	}
	for i := range got {
		if got[i] != sortedWant[i] {
			t.Fatalf("Scan(): got %v, want %v", got, sortedWant)
		}
	}
}

func testScanEmptyVolume(t *testing.T, newVolume Factory) {
	vol := newVolume(t, map[string][]byte{})
	wantSet(t, vol, nil)
}

func testScanMarkerAtRoot(t *testing.T, newVolume Factory) {
	vol := newVolume(t, map[string][]byte{
		"titles.idx": []byte("index"),
	})
	wantSet(t, vol, []string{"/"})
}

func testScanMarkerInSubdir(t *testing.T, newVolume Factory) {
	vol := newVolume(t, map[string][]byte{
		"wikipedia/titles.idx": []byte("index"),
	})
	wantSet(t, vol, []string{"wikipedia/"})
}

func testScanSingleArchive(t *testing.T, newVolume Factory) {
	vol := newVolume(t, map[string][]byte{
		"wiktionary.zim": []byte("zim"),
	})
	wantSet(t, vol, []string{"wiktionary.zim"})
}

func testScanNestedArchive(t *testing.T, newVolume Factory) {
	vol := newVolume(t, map[string][]byte{
		"archives/split/full.zimaa": []byte("zimaa"),
	})
	wantSet(t, vol, []string{"archives/split/full.zimaa"})
}

func testScanCaseInsensitive(t *testing.T, newVolume Factory) {
	vol := newVolume(t, map[string][]byte{
		"ARCHIVE.ZIM": []byte("zim"),
	})
	wantSet(t, vol, []string{"ARCHIVE.ZIM"})
}

// A directory holding both a marker and an archive file yields two
// separate entries, never merged or deduplicated.
func testScanMarkerAndArchiveSameDir(t *testing.T, newVolume Factory) {
	vol := newVolume(t, map[string][]byte{
		"pack/titles.idx": []byte("index"),
		"pack/foo.zim":    []byte("zim"),
	})
	wantSet(t, vol, []string{"pack/", "pack/foo.zim"})
}

func testScanIgnoresOtherFiles(t *testing.T, newVolume Factory) {
	vol := newVolume(t, map[string][]byte{
		"readme.txt":    []byte("text"),
		"data/blob.bin": []byte{0x01, 0x02},
		"zim.notes":     []byte("notes"),
	})
	wantSet(t, vol, nil)
}

func testScanIdempotent(t *testing.T, newVolume Factory) {
	vol := newVolume(t, map[string][]byte{
		"titles.idx":      []byte("index"),
		"books/maths.zim": []byte("zim"),
	})
	first := scanSet(t, vol)
	second := scanSet(t, vol)
	if len(first) != len(second) {
		t.Fatalf("repeated Scan(): got %v then %v, want identical sets", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("repeated Scan(): got %v then %v, want identical sets", first, second)
		}
	}
}

func testFetchExisting(t *testing.T, newVolume Factory) {
	content := []byte("0123456789")
	vol := newVolume(t, map[string][]byte{
		"dir/titles.idx": content,
	})

	f, err := vol.Fetch(context.Background(), "dir/titles.idx")
	if err != nil {
		t.Fatalf("Fetch(): got error %v, want nil", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			t.Errorf("Close(): got error %v", closeErr)
		}
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll(): got error %v, want nil", err)
	}
	if !bytes.Equal(data, content) {
		t.Errorf("ReadAll(): got %q, want %q", data, content)
	}

	// Random access must work without a fresh handle.
	at := make([]byte, 3)
	if _, err := f.ReadAt(at, 4); err != nil {
		t.Fatalf("ReadAt(): got error %v, want nil", err)
	}
	if !bytes.Equal(at, content[4:7]) {
		t.Errorf("ReadAt(): got %q, want %q", at, content[4:7])
	}

	info, err := f.Stat()
	if err != nil {
		t.Fatalf("Stat(): got error %v, want nil", err)
	}
	if info.Size() != int64(len(content)) {
		t.Errorf("Stat().Size(): got %d, want %d", info.Size(), len(content))
	}
}

func testFetchNotFound(t *testing.T, newVolume Factory) {
	vol := newVolume(t, map[string][]byte{})

	_, err := vol.Fetch(context.Background(), "missing.zim")
	if err == nil {
		t.Fatal("Fetch(missing): got nil error, want not-found")
	}
	if !volume.IsNotFound(err) {
		t.Errorf("Fetch(missing): got %v, want a not-found taxonomy error", err)
	}
	var volErr *volume.Error
	if !errors.As(err, &volErr) {
		t.Errorf("Fetch(missing): error %v does not carry volume context", err)
	}
}
