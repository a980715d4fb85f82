// Package object implements volume.Volume over an S3-compatible object
// store via the MinIO client, the backend used for bucket-hosted archive
// collections.
//
// Scanning drives a single sequential listing cursor to completion: the
// store yields one entry per step and the scan classifies entries as
// they arrive. There is no directory recursion; the key space is flat.
package object

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/offlinereader/zimscan/volume"
)

// API is the narrow slice of the MinIO client used by Volume. Keeping it
// an interface lets tests substitute a scripted backend.
type API interface {
	ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	StatObject(ctx context.Context, bucket, name string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	GetObject(ctx context.Context, bucket, name string, opts minio.GetObjectOptions) (io.ReadCloser, error)
}

// clientAPI adapts *minio.Client to API, narrowing GetObject's concrete
// *minio.Object return to io.ReadCloser.
type clientAPI struct {
	c *minio.Client
}

func (a clientAPI) ListObjects(
	ctx context.Context,
	bucket string,
	opts minio.ListObjectsOptions,
) <-chan minio.ObjectInfo {
	return a.c.ListObjects(ctx, bucket, opts)
}

func (a clientAPI) StatObject(
	ctx context.Context,
	bucket, name string,
	opts minio.StatObjectOptions,
) (minio.ObjectInfo, error) {
	return a.c.StatObject(ctx, bucket, name, opts)
}

func (a clientAPI) GetObject(
	ctx context.Context,
	bucket, name string,
	opts minio.GetObjectOptions,
) (io.ReadCloser, error) {
	obj, err := a.c.GetObject(ctx, bucket, name, opts)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// Volume is the cursor-enumeration variant of volume.Volume. The client
// handle and bucket are fixed at construction; a volume is never
// re-pointed at a different store.
type Volume struct {
	name   string
	api    API
	bucket string
}

// New creates a Volume over the given API and bucket.
func New(name string, api API, bucket string) *Volume {
	return &Volume{
		name:   name,
		api:    api,
		bucket: bucket,
	}
}

// NewFromClient creates a Volume over a MinIO client and bucket.
func NewFromClient(name string, client *minio.Client, bucket string) *Volume {
	return New(name, clientAPI{c: client}, bucket)
}

// Name implements volume.Volume.Name.
func (v *Volume) Name() string {
	return v.name
}

// Fetch implements volume.Volume.Fetch. The object is downloaded into
// memory and served from there, so the returned handle supports Seek and
// ReadAt without further round trips.
//
//nolint:ireturn // API returns the volume.File interface by design for flexibility.
func (v *Volume) Fetch(ctx context.Context, path string) (volume.File, error) {
	key := strings.TrimPrefix(path, "/")

	stat, err := v.api.StatObject(ctx, v.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, volume.NewPathError("fetch", v.name, path, translateError(err))
	}

	obj, err := v.api.GetObject(ctx, v.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, volume.NewPathError("fetch", v.name, path, translateError(err))
	}
	defer func() {
		_ = obj.Close()
	}()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, volume.NewPathError("fetch", v.name, path, translateError(err))
	}

	return &File{
		name:    path,
		reader:  bytes.NewReader(data),
		size:    stat.Size,
		modTime: stat.LastModified,
	}, nil
}

// Scan implements volume.Volume.Scan by driving the listing cursor to
// completion. Exactly one step is outstanding at a time. The first
// failed step aborts the scan and the entries found so far are
// discarded.
func (v *Volume) Scan(ctx context.Context) ([]string, error) {
	cur := v.Enumerate(ctx, "")

	var found []string
	for cur.Next() {
		if entry, ok := volume.Classify(cur.Entry().Path); ok {
			found = append(found, entry)
		}
	}
	if err := cur.Err(); err != nil {
		return nil, volume.NewError("scan", v.name, err)
	}

	return found, nil
}

// Enumerate implements volume.Enumerator, exposing the raw listing
// cursor under the given key prefix.
//
//nolint:ireturn // API returns the volume.Cursor interface by design for flexibility.
func (v *Volume) Enumerate(ctx context.Context, prefix string) volume.Cursor {
	ch := v.api.ListObjects(ctx, v.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})
	return &cursor{ch: ch}
}

// Compile-time interface checks.
var (
	_ volume.Volume     = (*Volume)(nil)
	_ volume.Enumerator = (*Volume)(nil)
	_ API               = clientAPI{}
)
