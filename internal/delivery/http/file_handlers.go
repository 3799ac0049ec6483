package http

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ========== FILE HANDLERS ==========

// StreamFile serves GridFS uploads (course thumbnails, avatars). Public, the
// catalogue shows thumbnails to anonymous visitors.
func (h *Handler) StreamFile(c *gin.Context) {
	fileID := c.Param("id")
	if fileID == "" {
		respondFail(c, http.StatusBadRequest, "File ID is required")
		return
	}

	stream, info, err := h.Files.Download(c.Request.Context(), fileID)
	if err != nil {
		respondError(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", info.ContentType)
	c.Header("Content-Length", fmt.Sprintf("%d", info.Size))
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", info.Filename))
	c.Header("Cache-Control", "public, max-age=86400")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		// headers are already sent
		log.Printf("Error streaming file %s: %v", fileID, err)
	}
}
