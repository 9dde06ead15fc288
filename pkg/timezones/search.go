package timezones

import (
	"sort"
	"strings"
)

// Match ranks, best first.
const (
	rankExact = iota
	rankPrefix
	rankSegment
	rankContains
	rankNone
)

// Search returns up to limit zones matching query, best matches first. A
// limit of 0 uses opts.DefaultLimit.
func Search(zones []string, query string, limit int, opts Options) []string {
	page, _ := SearchPage(zones, query, 0, limit, opts)
	return page
}

// SearchPage returns page number page (zero based) of the ranked matches for
// query, size results per page, together with the total number of matches.
//
// Matching is case-insensitive and spaces in query match underscores, so
// "new york" finds America/New_York. Exact names rank first, then names
// starting with query, then names with a path or word segment starting with
// query, then any other containing match; ties are alphabetical. An empty
// query returns nothing unless opts.EmptySearchMode is EmptySearchTop, in
// which case zones are paged in their given order.
func SearchPage(zones []string, query string, page, size int, opts Options) ([]string, int) {
	size = clampLimit(size, opts)
	if size == 0 || page < 0 {
		return nil, 0
	}

	q := normalizeQuery(query)
	if q == "" {
		if opts.EmptySearchMode != EmptySearchTop {
			return nil, 0
		}
		return paginate(zones, page, size), len(zones)
	}

	type ranked struct {
		name string
		rank int
	}
	matches := make([]ranked, 0, 32)
	for _, zone := range zones {
		if rank := matchRank(strings.ToLower(zone), q); rank != rankNone {
			matches = append(matches, ranked{name: zone, rank: rank})
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].rank != matches[j].rank {
			return matches[i].rank < matches[j].rank
		}
		return matches[i].name < matches[j].name
	})

	names := make([]string, len(matches))
	for i, match := range matches {
		names[i] = match.name
	}
	return paginate(names, page, size), len(names)
}

func normalizeQuery(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	return strings.Join(strings.Fields(q), "_")
}

func matchRank(zone, q string) int {
	switch {
	case zone == q:
		return rankExact
	case strings.HasPrefix(zone, q):
		return rankPrefix
	case strings.Contains(zone, "/"+q), strings.Contains(zone, "_"+q):
		return rankSegment
	case strings.Contains(zone, q):
		return rankContains
	}
	return rankNone
}

func paginate(names []string, page, size int) []string {
	start := page * size
	if start >= len(names) {
		return nil
	}
	end := start + size
	if end > len(names) {
		end = len(names)
	}
	return append([]string(nil), names[start:end]...)
}
