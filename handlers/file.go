package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"gobarber/models"
	"gobarber/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UploadFileHandler handles POST /files: a multipart avatar upload stored
// on Cloudinary, with its metadata persisted for later avatar_id linking.
func (h *HandlerBundle) UploadFileHandler(c *gin.Context) {
	logger := utils.GetLogger()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation fails"})
		return
	}

	// Stage the upload on disk; Cloudinary takes a local path.
	tmpPath := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		logger.Error("Failed to stage uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	defer os.Remove(tmpPath)

	publicID, url, err := h.Storage.UploadAvatar(c.Request.Context(), tmpPath)
	if err != nil {
		logger.Error("Failed to upload avatar", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	file := &models.File{
		ID:       uuid.New().String(),
		Name:     fileHeader.Filename,
		PublicID: publicID,
		URL:      url,
	}
	if err := h.FileRepo.Create(c.Request.Context(), file); err != nil {
		logger.Error("Failed to persist file record", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, file)
}
