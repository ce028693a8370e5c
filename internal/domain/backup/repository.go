package backup

import "context"

// Repository reads and replaces whole collections.
type Repository interface {
	Dump(ctx context.Context, collection string) ([]Document, error)
	// ReplaceAll swaps every collection named in docs for the given documents.
	// Collections absent from docs are emptied.
	ReplaceAll(ctx context.Context, docs map[string][]Document) error
}
