//go:build integration
// +build integration

package object_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/offlinereader/zimscan/volume"
	"github.com/offlinereader/zimscan/volume/object"
)

// TestIntegrationObjectVolume runs the object backend against a real
// MinIO server in a container.
func TestIntegrationObjectVolume(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "minio/minio:RELEASE.2024-01-16T16-07-38Z",
			ExposedPorts: []string{"9000/tcp"},
			Env: map[string]string{
				"MINIO_ROOT_USER":     "minioadmin",
				"MINIO_ROOT_PASSWORD": "minioadmin",
			},
			Cmd:        []string{"server", "/data"},
			WaitingFor: wait.ForHTTP("/minio/health/ready").WithPort("9000/tcp"),
		},
		Started: true,
	})
	require.NoError(t, err, "Failed to start MinIO container")
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	require.NoError(t, err)

	const bucket = "zim-archives"
	require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))

	put := func(key, body string) {
		_, err := client.PutObject(ctx, bucket, key,
			strings.NewReader(body), int64(len(body)), minio.PutObjectOptions{})
		require.NoError(t, err, "Failed to seed object %s", key)
	}
	put("wikipedia/titles.idx", "index")
	put("wiktionary.zim", "zim body")
	put("notes/readme.txt", "not an archive")

	vol := object.NewFromClient("bucket-card", client, bucket)

	t.Run("Scan", func(t *testing.T) {
		entries, err := vol.Scan(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"wikipedia/", "wiktionary.zim"}, entries)
	})

	t.Run("Fetch", func(t *testing.T) {
		f, err := vol.Fetch(ctx, "wikipedia/titles.idx")
		require.NoError(t, err)
		defer func() {
			require.NoError(t, f.Close())
		}()

		data, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, "index", string(data))
	})

	t.Run("FetchNotFound", func(t *testing.T) {
		_, err := vol.Fetch(ctx, "missing.zim")
		require.Error(t, err)
		assert.True(t, volume.IsNotFound(err))
	})

	t.Run("Enumerate", func(t *testing.T) {
		cur := vol.Enumerate(ctx, "wikipedia/")
		var keys []string
		for cur.Next() {
			keys = append(keys, cur.Entry().Path)
		}
		require.NoError(t, cur.Err())
		assert.Equal(t, []string{"wikipedia/titles.idx"}, keys)
	})
}
