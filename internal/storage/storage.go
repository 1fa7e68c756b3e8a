package storage

import (
	"context"
	"io"
)

// Store hides the hosted object store behind the two calls the portal makes:
// put a binary asset, get the URL it is served from.
type Store interface {
	Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error)
	PublicURL(objectName string) string
}
