package vector

import (
	"fmt"

	"github.com/kailas-cloud/homechef/internal/domain"
)

// Matrix is an ordered set of equal-length embedding rows.
// Rows are index-aligned with the segments they were computed from.
type Matrix struct {
	rows [][]float32
	dim  int
}

// NewMatrix validates that all rows share one non-zero dimension.
// The rows are copied so later mutation of the input has no effect.
func NewMatrix(rows [][]float32) (Matrix, error) {
	if len(rows) == 0 {
		return Matrix{}, fmt.Errorf("%w: matrix must have at least one row", domain.ErrInvalidInput)
	}
	dim := len(rows[0])
	if dim == 0 {
		return Matrix{}, fmt.Errorf("%w: row 0 is empty", domain.ErrVectorDimMismatch)
	}

	out := make([][]float32, len(rows))
	for i, r := range rows {
		if len(r) != dim {
			return Matrix{}, fmt.Errorf("%w: row %d has %d values, expected %d",
				domain.ErrVectorDimMismatch, i, len(r), dim)
		}
		out[i] = append([]float32(nil), r...)
	}
	return Matrix{rows: out, dim: dim}, nil
}

// Rows returns the number of rows.
func (m Matrix) Rows() int { return len(m.rows) }

// Dim returns the row length.
func (m Matrix) Dim() int { return m.dim }

// Row returns row i. The slice must not be modified.
func (m Matrix) Row(i int) []float32 { return m.rows[i] }

// IsZero reports whether the matrix was never constructed.
func (m Matrix) IsZero() bool { return len(m.rows) == 0 }
