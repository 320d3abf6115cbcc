package storage

// ReconcilePhotos merges the stored photo list with an edit submission:
// entries whose index appears in deleteIdx are dropped, newly uploaded
// URLs are appended. Indexes outside the list are ignored. The returned
// slice is always freshly allocated.
func ReconcilePhotos(existing []string, deleteIdx []int, added []string) []string {
	drop := make(map[int]bool, len(deleteIdx))
	for _, i := range deleteIdx {
		drop[i] = true
	}

	merged := make([]string, 0, len(existing)+len(added))
	for i, u := range existing {
		if drop[i] {
			continue
		}
		merged = append(merged, u)
	}
	return append(merged, added...)
}

// RemovedPhotos returns the entries ReconcilePhotos would drop, so the
// caller can issue best-effort blob deletions for them.
func RemovedPhotos(existing []string, deleteIdx []int) []string {
	var removed []string
	for _, i := range deleteIdx {
		if i >= 0 && i < len(existing) {
			removed = append(removed, existing[i])
		}
	}
	return removed
}
