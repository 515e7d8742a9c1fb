package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"property-manager/internal/config"
)

// UploadHandler stores listing images on local disk and hands back the
// public URL. The listing core only ever sees the returned URL strings.
type UploadHandler struct {
	cfg config.UploadConfig
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(cfg config.UploadConfig) *UploadHandler {
	return &UploadHandler{cfg: cfg}
}

// UploadImage handles POST /api/upload
func (h *UploadHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	// Validate file type (simple extension check)
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only .jpg, .jpeg, and .png files are allowed"})
		return
	}

	if file.Size > h.cfg.MaxSizeBytes() {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("file exceeds %dMB limit", h.cfg.MaxSizeMB)})
		return
	}

	if err := os.MkdirAll(h.cfg.Dir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not prepare upload directory"})
		return
	}

	// Unique filename to avoid collisions between uploads
	filename := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	destination := filepath.Join(h.cfg.Dir, filename)

	if err := c.SaveUploadedFile(file, destination); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url": h.cfg.PublicPath + "/" + filename,
	})
}
