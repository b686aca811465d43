package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKeyAndURL(t *testing.T) {
	m := &minioStorage{bucket: "assets", prefix: "pim", endpoint: "minio.local:9000", secure: false}

	key := m.objectKey("photo.png")
	assert.Equal(t, "pim/photo.png", key)
	assert.Equal(t, "http://minio.local:9000/assets/pim/photo.png", m.objectURL(key))

	m.secure = true
	assert.Equal(t, "https://minio.local:9000/assets/pim/photo.png", m.objectURL(key))

	m.prefix = ""
	assert.Equal(t, "photo.png", m.objectKey("photo.png"))
}

func TestFileNameFromURL(t *testing.T) {
	name, err := fileNameFromURL("http://minio.local:9000/assets/pim/photo.png")
	assert.NoError(t, err)
	assert.Equal(t, "photo.png", name)

	_, err = fileNameFromURL("http://minio.local:9000")
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "avatar.jpg", FileName("https://cdn.example.com/assets/pim/avatar.jpg"))
	assert.Equal(t, "", FileName("http://minio.local:9000"))
}
