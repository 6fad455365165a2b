package document

import (
	"github.com/kailas-cloud/homechef/internal/domain/vector"
)

// Document is an uploaded cookbook file.
type Document struct {
	Name string
	Data []byte
}

// Ingested is the retrieval-ready form of a document: ordered segments and
// their embedding matrix, row i belonging to segment i.
type Ingested struct {
	name     string
	segments []string
	matrix   vector.Matrix
}

// NewIngested pairs segments with their matrix. Callers guarantee the row count
// matches the segment count; the RAG pipeline checks this before construction.
func NewIngested(name string, segments []string, m vector.Matrix) Ingested {
	return Ingested{
		name:     name,
		segments: append([]string(nil), segments...),
		matrix:   m,
	}
}

// Name returns the source document name.
func (r Ingested) Name() string { return r.name }

// Segments returns a copy of the ordered segments.
func (r Ingested) Segments() []string { return append([]string(nil), r.segments...) }

// Segment returns segment i.
func (r Ingested) Segment(i int) string { return r.segments[i] }

// Len returns the number of segments.
func (r Ingested) Len() int { return len(r.segments) }

// Matrix returns the embedding matrix.
func (r Ingested) Matrix() vector.Matrix { return r.matrix }

// IsEmpty reports whether the result holds no segments.
func (r Ingested) IsEmpty() bool { return len(r.segments) == 0 }
