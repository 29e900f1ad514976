package model

// MatchResult is the partition produced by the matcher.
//
// Matched holds one bucket per album name in encounter order; Unmatched
// holds every photo no spec claimed. Each input photo is in exactly one
// bucket.
type MatchResult struct {
	// Matched maps album name to the photos assigned to it.
	// Every spec name has an entry, even when its bucket is empty.
	Matched map[string][]*Photo

	// Unmatched lists photos that matched no spec, in input order.
	Unmatched []*Photo
}

// Stats returns the per-album photo counts, computed from the buckets.
func (r *MatchResult) Stats() map[string]int {
	stats := make(map[string]int, len(r.Matched))
	for name, photos := range r.Matched {
		stats[name] = len(photos)
	}
	return stats
}

// MatchedCount returns the number of photos assigned to any album.
func (r *MatchResult) MatchedCount() int {
	total := 0
	for _, photos := range r.Matched {
		total += len(photos)
	}
	return total
}

// Total returns the number of photos in the partition.
func (r *MatchResult) Total() int {
	return r.MatchedCount() + len(r.Unmatched)
}
