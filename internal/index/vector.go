package index

import "math"

// Vector is a sparse term-weight vector keyed by vocabulary column.
type Vector map[int]float64

// Norm returns the Euclidean length of v.
func (v Vector) Norm() float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Dot returns the inner product of v and o.
func (v Vector) Dot(o Vector) float64 {
	if len(o) < len(v) {
		v, o = o, v
	}
	var sum float64
	for col, w := range v {
		sum += w * o[col]
	}
	return sum
}

// IsZero reports whether v has no non-zero weight.
func (v Vector) IsZero() bool {
	for _, w := range v {
		if w != 0 {
			return false
		}
	}
	return true
}

// normalize scales v to unit length in place. Zero vectors are left untouched.
func (v Vector) normalize() Vector {
	n := v.Norm()
	if n == 0 {
		return v
	}
	for col, w := range v {
		v[col] = w / n
	}
	return v
}

// Cosine returns the cosine similarity of a and b clamped to [0,1].
// A zero-magnitude operand yields 0.
func Cosine(a, b Vector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	s := a.Dot(b) / (na * nb)
	switch {
	case s < 0:
		return 0
	case s > 1:
		return 1
	default:
		return s
	}
}
