package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stagepass/ticketing-backend/internal/models"
	"github.com/stagepass/ticketing-backend/utils"
)

type UploadHandler struct{}

func NewUploadHandler() *UploadHandler {
	return &UploadHandler{}
}

// UploadImage handles POST /api/v1/upload: sellers upload an event image
// before submitting the event for review. Content type is checked against
// the file's magic bytes, not the declared header.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	if currentRole(c) != string(models.RoleSeller) {
		c.JSON(http.StatusForbidden, utils.ErrorResponse("Only sellers can upload event images"))
		return
	}

	const MaxUploadSize = 10 << 20 // 10MB
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadSize)

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("No file provided or file too large (Max 10MB)"))
		return
	}
	defer file.Close()

	buffer := make([]byte, 512)
	if _, err := file.Read(buffer); err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to read file for validation"))
		return
	}
	file.Seek(0, 0)

	contentType := http.DetectContentType(buffer)
	allowedTypes := map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
	}
	if !allowedTypes[contentType] {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Unsupported file type. Please upload JPG, PNG or WEBP"))
		return
	}

	// UUID filename prevents path traversal and collisions.
	ext := filepath.Ext(header.Filename)
	if ext == "" {
		switch contentType {
		case "image/jpeg":
			ext = ".jpg"
		case "image/png":
			ext = ".png"
		case "image/webp":
			ext = ".webp"
		}
	}
	safeFilename := fmt.Sprintf("%s%s", uuid.New().String(), ext)

	imageURL, err := utils.UploadToCloudinary(file, safeFilename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Cloudinary upload failed: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Image uploaded successfully",
		"url":     imageURL,
		"size":    header.Size,
		"type":    contentType,
	})
}
