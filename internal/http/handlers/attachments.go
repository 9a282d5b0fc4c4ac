package handlers

import (
	"net/http"
	"strconv"

	"taskboard/internal/domain"
	"taskboard/internal/logger"

	"github.com/gin-gonic/gin"
)

// UploadAttachments stores the uploaded files and appends their metadata to
// the task. Multipart field name: "attachments".
func (h *Handler) UploadAttachments(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	id, err := taskID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form required"})
		return
	}
	files := form.File["attachments"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files uploaded"})
		return
	}

	var attachments []domain.Attachment
	var saved []string
	for _, f := range files {
		if err := h.Files.Accept(f.Filename, f.Size); err != nil {
			cleanupFiles(h, saved)
			fail(c, err)
			return
		}
		name, path := h.Files.NewPath(f.Filename)
		if err := c.SaveUploadedFile(f, path); err != nil {
			cleanupFiles(h, saved)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
			return
		}
		saved = append(saved, path)
		attachments = append(attachments, domain.Attachment{
			Filename:     name,
			OriginalName: f.Filename,
			StoragePath:  path,
			Size:         f.Size,
			MimeType:     f.Header.Get("Content-Type"),
		})
	}

	task, err := h.Tasks.AddAttachments(c.Request.Context(), userID, id, attachments)
	if err != nil {
		cleanupFiles(h, saved)
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// DeleteAttachment removes the metadata entry and the stored file. NotFound
// is decided by the metadata alone.
func (h *Handler) DeleteAttachment(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	id, err := taskID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	attID, err := strconv.ParseInt(c.Param("attachmentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	task, err := h.Tasks.DeleteAttachment(c.Request.Context(), userID, id, attID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// cleanupFiles removes files written before a rejected upload request.
func cleanupFiles(h *Handler, paths []string) {
	for _, p := range paths {
		if err := h.Files.Remove(p); err != nil {
			logger.Warn("orphan upload cleanup failed", "path", p, "error", err)
		}
	}
}
