package models

import "strings"

// PhotoFile is a local image staged for upload.
type PhotoFile struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// IsImage reports whether the file has an image/* content type. Only image
// files may be uploaded.
func (f PhotoFile) IsImage() bool {
	return strings.HasPrefix(f.ContentType, "image/")
}
