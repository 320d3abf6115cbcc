// Package storage wraps the Firebase Storage bucket used for record and
// editor photos: uploads are downsized and re-encoded before being stored
// publicly readable, deletions are best-effort by public URL.
package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// allowedExts is the upload allow-list. Anything else is rejected before
// the file is read.
var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// AllowedExt reports whether the filename carries an accepted image
// extension.
func AllowedExt(filename string) bool {
	return allowedExts[strings.ToLower(filepath.Ext(filename))]
}

// PhotoObjectPath builds the object path for a record photo. The random
// suffix avoids collisions when the same record gets repeated uploads.
func PhotoObjectPath(prefix, parentID string) string {
	return fmt.Sprintf("%s/%s_%s.jpg", prefix, parentID, uuid.NewString()[:8])
}

// EditorObjectPath builds the object path for an inline blog editor image.
func EditorObjectPath() string {
	return fmt.Sprintf("blog_images/%s.jpg", uuid.NewString())
}

// PhotoStore is the blob-store surface the handlers depend on.
type PhotoStore interface {
	// Upload processes the image and stores it under objectPath, returning
	// the public URL.
	Upload(ctx context.Context, objectPath string, file io.Reader) (string, error)
	// DeleteByURL removes a previously stored object. Best effort: failures
	// are logged, never returned.
	DeleteByURL(ctx context.Context, rawURL string)
}

// GCSPhotoStore implements PhotoStore on a Firebase Storage bucket.
type GCSPhotoStore struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

// NewGCSPhotoStore creates a store bound to the given bucket.
func NewGCSPhotoStore(bucket *gcs.BucketHandle, bucketName string) *GCSPhotoStore {
	return &GCSPhotoStore{bucket: bucket, bucketName: bucketName}
}

// Upload decodes the image, downsizes it to the maximum width and
// re-encodes it as JPEG, then writes the object and marks it publicly
// readable.
func (s *GCSPhotoStore) Upload(ctx context.Context, objectPath string, file io.Reader) (string, error) {
	data, err := ProcessImage(file)
	if err != nil {
		return "", fmt.Errorf("process image: %w", err)
	}

	obj := s.bucket.Object(objectPath)
	w := obj.NewWriter(ctx)
	w.ContentType = "image/jpeg"
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", fmt.Errorf("write object %s: %w", objectPath, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close object %s: %w", objectPath, err)
	}

	if err := obj.ACL().Set(ctx, gcs.AllUsers, gcs.RoleReader); err != nil {
		return "", fmt.Errorf("make object %s public: %w", objectPath, err)
	}

	return PublicURL(s.bucketName, objectPath), nil
}

// DeleteByURL parses the URL back into an object path and deletes the
// object if it still exists. A dangling database write must never block on
// a storage failure, so errors only get logged here.
func (s *GCSPhotoStore) DeleteByURL(ctx context.Context, rawURL string) {
	objectPath, ok := ObjectPathFromURL(rawURL, s.bucketName)
	if !ok {
		log.Printf("storage: cannot map URL to an object path, skipping delete: %s", rawURL)
		return
	}

	obj := s.bucket.Object(objectPath)
	if _, err := obj.Attrs(ctx); err != nil {
		if err == gcs.ErrObjectNotExist {
			return
		}
		log.Printf("storage: stat %s failed: %v", objectPath, err)
		return
	}
	if err := obj.Delete(ctx); err != nil {
		log.Printf("storage: delete %s failed: %v", objectPath, err)
	}
}
