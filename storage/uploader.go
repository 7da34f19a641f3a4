package storage

import (
	"context"
	"io"
)

// SnapshotUploader stores generated draw snapshots in object storage and
// returns the public URL they can be fetched from.
type SnapshotUploader interface {
	Upload(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
}
