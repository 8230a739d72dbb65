package objectstore

import "context"

// Uploader stores a local file in an object store and returns a URL the
// object can subsequently be fetched from.
type Uploader interface {
	Upload(ctx context.Context, key, localPath, contentType string) (url string, err error)
}
