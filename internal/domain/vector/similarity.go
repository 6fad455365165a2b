package vector

import (
	"fmt"
	"math"
	"sort"

	"github.com/kailas-cloud/homechef/internal/domain"
)

// Cosine returns the cosine similarity of a and b.
// A zero-norm vector scores 0 against everything.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", domain.ErrVectorDimMismatch, len(a), len(b))
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}

// TopK ranks every row of m by cosine similarity to the single query row and
// returns up to k row indices, most similar first. Equal scores keep row order.
func TopK(query, m Matrix, k int) ([]int, error) {
	if query.Rows() != 1 {
		return nil, fmt.Errorf("%w: query must have exactly 1 row, got %d",
			domain.ErrVectorDimMismatch, query.Rows())
	}
	if query.Dim() != m.Dim() {
		return nil, fmt.Errorf("%w: query has %d values, matrix rows have %d",
			domain.ErrVectorDimMismatch, query.Dim(), m.Dim())
	}
	if k <= 0 {
		return []int{}, nil
	}

	q := query.Row(0)
	scores := make([]float64, m.Rows())
	idx := make([]int, m.Rows())
	for i := range idx {
		s, err := Cosine(q, m.Row(i))
		if err != nil {
			return nil, err
		}
		scores[i] = s
		idx[i] = i
	}

	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})

	if k > len(idx) {
		k = len(idx)
	}
	return idx[:k], nil
}
