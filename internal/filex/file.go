// Package filex loads local files for upload. The content type is sniffed
// from the bytes rather than trusted from the file extension.
package filex

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/tripkeeper/internal/client/models"
	"github.com/gabriel-vasile/mimetype"
)

// LoadPhotoFile reads path and returns it as a PhotoFile with a detected
// content type. Directories are rejected.
func LoadPhotoFile(path string) (models.PhotoFile, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return models.PhotoFile{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.IsDir() {
		return models.PhotoFile{}, fmt.Errorf("%s is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.PhotoFile{}, fmt.Errorf("read %s: %w", path, err)
	}

	return models.PhotoFile{
		Name:        filepath.Base(path),
		ContentType: DetectContentType(data),
		Size:        fi.Size(),
		Data:        data,
	}, nil
}

// DetectContentType returns the MIME type of data, e.g. "image/png".
func DetectContentType(data []byte) string {
	return mimetype.Detect(data).String()
}
