// ABOUTME: Storage interfaces for publishing generated artifacts
// ABOUTME: Defines contracts for writing the headlines snapshot to files or object storage

package interfaces

import "context"

// ObjectStorage persists a named blob
type ObjectStorage interface {
	// Put writes data under key, replacing any previous content
	Put(ctx context.Context, key string, data []byte, contentType string) error
}
