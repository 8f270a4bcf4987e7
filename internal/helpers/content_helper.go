package helpers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

var ErrContentUnavailable = errors.New("content unavailable")

// ResolveUploadPath maps a stored file path onto the upload directory, refusing
// anything that escapes it. Stored paths may be relative to the upload directory
// or carry it as a prefix.
func ResolveUploadPath(uploadBasePath, storedPath string) (string, error) {
	base, err := filepath.Abs(uploadBasePath)
	if err != nil {
		return "", err
	}

	stored := filepath.Clean(storedPath)
	prefix := filepath.Clean(uploadBasePath) + string(filepath.Separator)
	stored = strings.TrimPrefix(stored, prefix)

	fullPath := stored
	if !filepath.IsAbs(fullPath) {
		fullPath = filepath.Join(base, stored)
	}

	rel, err := filepath.Rel(base, fullPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrContentUnavailable
	}
	return fullPath, nil
}

// ServeContent sends an uploaded file as an attachment, or redirects to the
// external link when there is no file.
func ServeContent(c *gin.Context, uploadBasePath, filePath, externalURL, downloadName string) error {
	if filePath != "" {
		fullPath, err := ResolveUploadPath(uploadBasePath, filePath)
		if err != nil {
			return err
		}
		if _, err := os.Stat(fullPath); err != nil {
			return ErrContentUnavailable
		}
		c.FileAttachment(fullPath, downloadName+filepath.Ext(fullPath))
		return nil
	}

	if externalURL != "" {
		c.Redirect(http.StatusFound, externalURL)
		return nil
	}

	return ErrContentUnavailable
}
