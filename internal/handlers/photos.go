package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/yaoyun631/team-me-crm-firebase/internal/storage"
)

// uploadPhotos stores every accepted file from the multipart "photos"
// field and returns the public URLs. Disallowed extensions and storage
// failures are logged and skipped; the record still saves without the
// photo.
func uploadPhotos(c echo.Context, store storage.PhotoStore, prefix, parentID string) []string {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}

	files := form.File["photos"]
	if len(files) == 0 {
		files = form.File["photo"]
	}

	var urls []string
	for _, fh := range files {
		if fh.Filename == "" || fh.Size == 0 {
			continue
		}
		if !storage.AllowedExt(fh.Filename) {
			c.Logger().Warnf("skipping photo with disallowed extension: %s", fh.Filename)
			continue
		}
		f, err := fh.Open()
		if err != nil {
			c.Logger().Errorf("open uploaded photo %s: %v", fh.Filename, err)
			continue
		}
		url, err := store.Upload(c.Request().Context(), storage.PhotoObjectPath(prefix, parentID), f)
		f.Close()
		if err != nil {
			c.Logger().Errorf("upload photo %s: %v", fh.Filename, err)
			continue
		}
		urls = append(urls, url)
	}
	return urls
}

// deleteIndexes parses the "delete_photos" checkbox values into list
// indexes; non-numeric values are ignored.
func deleteIndexes(c echo.Context) []int {
	params, err := c.FormParams()
	if err != nil {
		return nil
	}
	var idx []int
	for _, v := range params["delete_photos"] {
		if i, err := strconv.Atoi(v); err == nil {
			idx = append(idx, i)
		}
	}
	return idx
}

// firstOrEmpty keeps the legacy single-URL field in sync with the list.
func firstOrEmpty(urls []string) string {
	if len(urls) > 0 {
		return urls[0]
	}
	return ""
}
