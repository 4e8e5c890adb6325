package storage

import "context"

// StorageService defines the interface for avatar storage operations.
type StorageService interface {
	// UploadAvatar stores the local file and returns its public ID and
	// delivery URL.
	UploadAvatar(ctx context.Context, localFilePath string) (publicID, url string, err error)
	// DeleteFile removes a stored file by its public ID.
	DeleteFile(ctx context.Context, publicID string) error
}
