// Package reconcile merges the layered listing sources (locally cached
// records, remote rows, and the static seed set) into the single ordered
// collection the views render.
package reconcile

import (
	"sort"
	"strings"

	"github.com/sunshinej01/second-hand/internal/models"
)

// Merge flattens the sources into one collection sorted newest first. When
// the same identifier appears in more than one source, the earliest source
// wins, so callers pass sources in precedence order (local cache first).
// The sort is stable: records with equal timestamps keep their relative
// order.
func Merge(sources ...[]models.Listing) []models.Listing {
	var merged []models.Listing
	seen := make(map[int64]bool)

	for _, source := range sources {
		for _, l := range source {
			if seen[l.ID] {
				continue
			}
			seen[l.ID] = true
			merged = append(merged, l)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})

	return merged
}

// Filter returns the listings whose title or description contains the query,
// case-insensitively. Order is preserved.
func Filter(listings []models.Listing, query string) []models.Listing {
	q := strings.ToLower(query)

	var matched []models.Listing
	for _, l := range listings {
		if strings.Contains(strings.ToLower(l.Title), q) ||
			strings.Contains(strings.ToLower(l.Description), q) {
			matched = append(matched, l)
		}
	}
	return matched
}

// FilterPosts returns the community posts whose title or content contains
// the query, case-insensitively.
func FilterPosts(posts []models.CommunityPost, query string) []models.CommunityPost {
	q := strings.ToLower(query)

	var matched []models.CommunityPost
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Content), q) {
			matched = append(matched, p)
		}
	}
	return matched
}
