package index

import "sort"

// Hit is a scored row position.
type Hit struct {
	Position int
	Score    float64
}

// Rank orders positions by score descending, ties broken by position,
// keeps only scores strictly above minScore and returns at most k hits.
// k <= 0 means no cap. skip, when non-nil, excludes positions.
func Rank(scores []float64, minScore float64, k int, skip func(pos int) bool) []Hit {
	hits := make([]Hit, 0, len(scores))
	for pos, s := range scores {
		if s <= minScore {
			continue
		}
		if skip != nil && skip(pos) {
			continue
		}
		hits = append(hits, Hit{Position: pos, Score: s})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if k > 0 && len(hits) > k {
		hits = hits[:k]
	}
	return hits
}
