package interfaces

import (
	"context"
	"io"
)

// ObjectStorage abstracts the hosted object store that backs media uploads.
// Put streams the object body under the provided key and returns the public
// URL the stored object is reachable at. Delete removes an object by key;
// deleting a key that does not exist must not return an error.
type ObjectStorage interface {
	Put(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}
