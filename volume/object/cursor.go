package object

import (
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/offlinereader/zimscan/volume"
)

// cursor adapts the MinIO listing channel to volume.Cursor. Each receive
// is one enumeration step; an item carrying Err moves the cursor into
// its terminal error state and the step's error is reported by Err.
type cursor struct {
	ch   <-chan minio.ObjectInfo
	cur  volume.Entry
	err  error
	done bool
}

// Next implements volume.Cursor.Next.
func (c *cursor) Next() bool {
	if c.done {
		return false
	}
	for {
		info, ok := <-c.ch
		if !ok {
			c.done = true
			return false
		}
		if info.Err != nil {
			c.err = translateError(info.Err)
			c.done = true
			return false
		}
		// Listing with a delimiter yields prefix placeholders; skip them.
		if strings.HasSuffix(info.Key, "/") {
			continue
		}
		c.cur = volume.Entry{
			Path:         info.Key,
			Size:         info.Size,
			LastModified: info.LastModified,
		}
		return true
	}
}

// Entry implements volume.Cursor.Entry.
func (c *cursor) Entry() volume.Entry {
	return c.cur
}

// Err implements volume.Cursor.Err.
func (c *cursor) Err() error {
	return c.err
}
