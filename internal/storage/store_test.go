package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedExt(t *testing.T) {
	allowed := []string{"a.jpg", "b.JPEG", "c.png", "d.gif", "photo.WEBP"}
	for _, name := range allowed {
		assert.True(t, AllowedExt(name), name)
	}

	rejected := []string{"a.pdf", "b.txt", "noext", "c.jpg.exe", ""}
	for _, name := range rejected {
		assert.False(t, AllowedExt(name), name)
	}
}

func TestPhotoObjectPath(t *testing.T) {
	path := PhotoObjectPath("buyer_photos", "abc123")

	assert.True(t, strings.HasPrefix(path, "buyer_photos/abc123_"))
	assert.True(t, strings.HasSuffix(path, ".jpg"))
	// Repeated uploads for the same record must not collide.
	assert.NotEqual(t, path, PhotoObjectPath("buyer_photos", "abc123"))
}

func TestEditorObjectPath(t *testing.T) {
	path := EditorObjectPath()

	assert.True(t, strings.HasPrefix(path, "blog_images/"))
	assert.True(t, strings.HasSuffix(path, ".jpg"))
}

func TestReconcilePhotosDropAndAppend(t *testing.T) {
	existing := []string{"u0", "u1", "u2"}

	got := ReconcilePhotos(existing, []int{1}, []string{"u3"})

	assert.Equal(t, []string{"u0", "u2", "u3"}, got)
	assert.Equal(t, []string{"u0", "u1", "u2"}, existing)
}

func TestReconcilePhotosIgnoresOutOfRangeIndexes(t *testing.T) {
	got := ReconcilePhotos([]string{"u0"}, []int{-1, 5}, nil)

	assert.Equal(t, []string{"u0"}, got)
}

func TestReconcilePhotosEmptyExisting(t *testing.T) {
	got := ReconcilePhotos(nil, nil, []string{"u0"})

	assert.Equal(t, []string{"u0"}, got)
}

func TestRemovedPhotos(t *testing.T) {
	existing := []string{"u0", "u1", "u2"}

	got := RemovedPhotos(existing, []int{2, 0, 9, -1})

	assert.Equal(t, []string{"u2", "u0"}, got)
}

func TestRemovedPhotosNone(t *testing.T) {
	assert.Nil(t, RemovedPhotos([]string{"u0"}, nil))
}
