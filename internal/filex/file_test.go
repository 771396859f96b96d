package filex

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLoadPhotoFile_DetectsImage(t *testing.T) {
	// the extension is deliberately wrong; detection uses the content
	path := filepath.Join(t.TempDir(), "holiday.txt")
	data := pngBytes(t)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	f, err := LoadPhotoFile(path)
	require.NoError(t, err)

	assert.Equal(t, "holiday.txt", f.Name)
	assert.Equal(t, "image/png", f.ContentType)
	assert.Equal(t, int64(len(data)), f.Size)
	assert.Equal(t, data, f.Data)
	assert.True(t, f.IsImage())
}

func TestLoadPhotoFile_TextIsNotImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.jpg")
	require.NoError(t, os.WriteFile(path, []byte("just some notes\n"), 0o600))

	f, err := LoadPhotoFile(path)
	require.NoError(t, err)
	assert.False(t, f.IsImage())
}

func TestLoadPhotoFile_Errors(t *testing.T) {
	_, err := LoadPhotoFile(filepath.Join(t.TempDir(), "missing.png"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadPhotoFile(t.TempDir())
	require.Error(t, err)
}
