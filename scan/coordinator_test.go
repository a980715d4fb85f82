package scan_test

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offlinereader/zimscan/scan"
	"github.com/offlinereader/zimscan/volume"
	"github.com/offlinereader/zimscan/volume/local"
)

// stubVolume is a scripted volume whose scan resolves with fixed paths
// or rejects with a fixed error.
type stubVolume struct {
	name  string
	paths []string
	err   error

	// block makes Scan wait on the context, simulating a hung backend.
	block bool

	mu    sync.Mutex
	scans int
}

func (s *stubVolume) Name() string {
	return s.name
}

func (s *stubVolume) Fetch(_ context.Context, path string) (volume.File, error) {
	return nil, volume.NewPathError("fetch", s.name, path, volume.ErrNotFound)
}

func (s *stubVolume) Scan(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	s.scans++
	s.mu.Unlock()

	if s.block {
		<-ctx.Done()
		return nil, volume.NewError("scan", s.name, ctx.Err())
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.paths, nil
}

func TestScanMergesInVolumeOrder(t *testing.T) {
	vols := []volume.Volume{
		&stubVolume{name: "a", paths: []string{"a1.zim", "sub/"}},
		&stubVolume{name: "b", paths: nil},
		&stubVolume{name: "c", paths: []string{"c1.zim"}},
	}

	got, err := scan.New().Scan(context.Background(), vols)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1.zim", "sub/", "c1.zim"}, got)
}

func TestScanEmptyVolumeList(t *testing.T) {
	got, err := scan.New().Scan(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

// All-or-nothing fan-in: one volume's failure rejects the aggregate and
// the other volumes' contributions are discarded.
func TestScanAllOrNothing(t *testing.T) {
	failure := volume.NewError("scan", "b", fmt.Errorf("%w: gone", volume.ErrNotFound))
	vols := []volume.Volume{
		&stubVolume{name: "a", paths: []string{"/a/"}},
		&stubVolume{name: "b", err: failure},
	}

	got, err := scan.New().Scan(context.Background(), vols)
	require.Error(t, err)
	assert.True(t, volume.IsNotFound(err))
	assert.Nil(t, got)
}

func TestScanReportsOneErrorWhenSeveralFail(t *testing.T) {
	errA := volume.NewError("scan", "a", volume.ErrPermission)
	errB := volume.NewError("scan", "b", volume.ErrInvalidState)
	vols := []volume.Volume{
		&stubVolume{name: "a", err: errA},
		&stubVolume{name: "b", err: errB},
	}

	_, err := scan.New().Scan(context.Background(), vols)
	require.Error(t, err)
	// First settled failure wins; either volume may finish first.
	assert.True(t, err == errA || err == errB, "got unexpected error %v", err)
}

func TestScanEachVolumeScannedOnce(t *testing.T) {
	a := &stubVolume{name: "a", paths: []string{"x.zim"}}
	b := &stubVolume{name: "b"}

	_, err := scan.New().Scan(context.Background(), []volume.Volume{a, b})
	require.NoError(t, err)
	assert.Equal(t, 1, a.scans)
	assert.Equal(t, 1, b.scans)
}

func TestScanAcrossRealVolumes(t *testing.T) {
	seed := func(name string, files map[string]string) volume.Volume {
		vol := local.NewInMemory(name)
		for path, content := range files {
			if err := util.WriteFile(vol.Raw(), path, []byte(content), 0o644); err != nil {
				t.Fatalf("seed %q: %v", path, err)
			}
		}
		return vol
	}

	vols := []volume.Volume{
		seed("internal", map[string]string{
			"titles.idx": "index",
			"notes.txt":  "ignore",
		}),
		seed("sdcard", map[string]string{
			"books/maths.zim": "zim",
		}),
	}

	got, err := scan.New().Scan(context.Background(), vols)
	require.NoError(t, err)
	assert.Equal(t, []string{"/", "books/maths.zim"}, got)
}

func TestScanVolumeTimeout(t *testing.T) {
	vols := []volume.Volume{
		&stubVolume{name: "fast", paths: []string{"ok.zim"}},
		&stubVolume{name: "hung", block: true},
	}

	c := scan.New(
		scan.WithVolumeTimeout(20 * time.Millisecond),
		scan.WithLogger(slog.New(slog.DiscardHandler)),
	)

	done := make(chan struct{})
	var got []string
	var err error
	go func() {
		got, err = c.Scan(context.Background(), vols)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Scan did not return; the timeout guard is not working")
	}

	require.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
