package index

import "testing"

func positions(hits []Hit) []int {
	out := make([]int, len(hits))
	for i, h := range hits {
		out[i] = h.Position
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRank(t *testing.T) {
	scores := []float64{0.5, 0.05, 0.9, 0.5, 0.1, 0.3, 0.7}

	tests := []struct {
		name     string
		minScore float64
		k        int
		skip     func(int) bool
		want     []int
	}{
		{"threshold is strict", 0.1, 0, nil, []int{2, 6, 0, 3, 5}},
		{"capped", 0.1, 3, nil, []int{2, 6, 0}},
		{"ties keep position order", 0.4, 0, nil, []int{2, 6, 0, 3}},
		{"skip", 0.1, 2, func(p int) bool { return p == 2 }, []int{6, 0}},
		{"nothing passes", 0.95, 5, nil, []int{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := positions(Rank(scores, tc.minScore, tc.k, tc.skip))
			if !equalInts(got, tc.want) {
				t.Errorf("Rank() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRank_Descending(t *testing.T) {
	hits := Rank([]float64{0.2, 0.8, 0.4, 0.6}, 0, 0, nil)
	for i := 1; i < len(hits); i++ {
		if hits[i].Score > hits[i-1].Score {
			t.Fatalf("not descending at %d: %v", i, hits)
		}
	}
}
