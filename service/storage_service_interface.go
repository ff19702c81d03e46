package service

import "context"

// StorageServiceInterface defines the contract for persisting exported
// artwork to durable storage and returning a shareable URL.
type StorageServiceInterface interface {
	Upload(ctx context.Context, filename string, data []byte) (publicURL string, storagePath string, err error)
	Delete(ctx context.Context, storagePath string) error
}
