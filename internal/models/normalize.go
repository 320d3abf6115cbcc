package models

import "time"

// normalizePhotos resolves the dual photo-field shape: the list field wins
// when present, otherwise a non-empty legacy scalar is promoted to a
// one-element list. Neither input is mutated.
func normalizePhotos(urls []string, legacy string) []string {
	if urls != nil {
		return urls
	}
	if legacy != "" {
		return []string{legacy}
	}
	return nil
}

// NowISO stamps audit fields. The format is fixed-width and zero-padded so
// lexicographic comparison of timestamps orders them chronologically.
func NowISO() string {
	return time.Now().Format("2006-01-02T15:04:05")
}
