package ports

import "context"

// BlobStore resolves stored document references to URLs a client can fetch.
// Proof documents for deposits live in the host platform's blob storage.
type BlobStore interface {
	// ResolveURL turns a storage reference into a fetchable URL.
	ResolveURL(ctx context.Context, ref string) (string, error)
}
