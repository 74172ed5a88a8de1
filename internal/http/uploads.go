package http

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vidtube/internal/apperr"
)

// uploadDir holds the multipart files of a single request.
type uploadDir struct {
	path string
}

// newUploadDir creates a request-scoped temp dir. Callers must defer cleanup.
func (h *Handler) newUploadDir() (*uploadDir, error) {
	root := h.uploadDir
	if root == "" {
		root = os.TempDir()
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, apperr.Internal("failed to prepare upload", err)
	}
	dir, err := os.MkdirTemp(root, "upload-")
	if err != nil {
		return nil, apperr.Internal("failed to prepare upload", err)
	}
	return &uploadDir{path: dir}, nil
}

func (u *uploadDir) cleanup() {
	_ = os.RemoveAll(u.path)
}

// save stores the named form file and returns its local path, or "" when absent.
func (u *uploadDir) save(c *gin.Context, field string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", apperr.Validation("upload exceeds the size limit")
		}
		return "", apperr.Validation("invalid multipart form")
	}

	ext := strings.ToLower(filepath.Ext(filepath.Base(fh.Filename)))
	dst := filepath.Join(u.path, uuid.NewString()+ext)
	if err := c.SaveUploadedFile(fh, dst); err != nil {
		return "", apperr.Internal("failed to store upload", err)
	}
	return dst, nil
}
