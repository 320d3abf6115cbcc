package storage

import (
	"fmt"
	"net/url"
	"strings"
)

// PublicURL builds the public-bucket URL an uploaded object is served
// from.
func PublicURL(bucketName, objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucketName, objectPath)
}

// ObjectPathFromURL recovers the object path from a stored photo URL.
// Three shapes are recognized:
//
//	gs://<bucket>/<path>
//	https://firebasestorage.googleapis.com/v0/b/<bucket>/o/<escaped path>?alt=media
//	https://storage.googleapis.com/<bucket>/<path>
//
// URLs referencing a different bucket are rejected.
func ObjectPathFromURL(rawURL, bucketName string) (string, bool) {
	if path, ok := strings.CutPrefix(rawURL, "gs://"+bucketName+"/"); ok && path != "" {
		return path, true
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}

	switch u.Host {
	case "firebasestorage.googleapis.com":
		// /v0/b/<bucket>/o/<escaped path>
		rest, ok := strings.CutPrefix(u.Path, "/v0/b/"+bucketName+"/o/")
		if !ok || rest == "" {
			return "", false
		}
		path, err := url.PathUnescape(rest)
		if err != nil || path == "" {
			return "", false
		}
		return path, true
	case "storage.googleapis.com":
		path, ok := strings.CutPrefix(u.Path, "/"+bucketName+"/")
		if !ok || path == "" {
			return "", false
		}
		return path, true
	}
	return "", false
}
