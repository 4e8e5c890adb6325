package fileRepo

import (
	"context"

	"gobarber/models"
)

// FileRepository defines methods for uploaded file metadata access.
type FileRepository interface {
	// Create inserts a new file record.
	Create(ctx context.Context, file *models.File) error
	// GetByID retrieves a file by its unique ID.
	GetByID(ctx context.Context, id string) (*models.File, error)
}
