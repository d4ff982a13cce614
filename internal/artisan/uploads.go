package artisan

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	productImageDir = "product_images"
	shopImageDir    = "shop_images"
	tempUploadDir   = "tmp"
)

// saveUploads streams each file to a temporary path, then renames it into
// its permanent per-category directory. The returned paths are relative to
// the upload root; those relative strings are what gets persisted.
func saveUploads(c *gin.Context, uploadRoot, category string, files []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}

	tmpDir := filepath.Join(uploadRoot, tempUploadDir)
	finalDir := filepath.Join(uploadRoot, category)
	for _, dir := range []string{tmpDir, finalDir} {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, err
		}
	}

	paths := make([]string, 0, len(files))
	for i, file := range files {
		name := fmt.Sprintf("%d_%d_%s", time.Now().UnixNano(), i, filepath.Base(file.Filename))
		tmpPath := filepath.Join(tmpDir, name)
		if err := c.SaveUploadedFile(file, tmpPath); err != nil {
			return nil, err
		}
		if err := os.Rename(tmpPath, filepath.Join(finalDir, name)); err != nil {
			return nil, err
		}
		paths = append(paths, filepath.ToSlash(filepath.Join(category, name)))
	}
	return paths, nil
}
