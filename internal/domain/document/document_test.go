package document

import (
	"testing"

	"github.com/kailas-cloud/homechef/internal/domain/vector"
)

func TestNewIngested(t *testing.T) {
	m, err := vector.NewMatrix([][]float32{{1, 0}, {0, 1}})
	if err != nil {
		t.Fatal(err)
	}
	segs := []string{"soto", "rawon"}
	r := NewIngested("resep.pdf", segs, m)

	segs[0] = "changed"

	if r.Name() != "resep.pdf" {
		t.Errorf("Name() = %q", r.Name())
	}
	if r.Len() != 2 || r.Segment(0) != "soto" {
		t.Errorf("segments not copied: %v", r.Segments())
	}
	if r.Matrix().Rows() != 2 {
		t.Errorf("Matrix().Rows() = %d", r.Matrix().Rows())
	}
	if r.IsEmpty() {
		t.Error("expected non-empty result")
	}
}

func TestIngested_ZeroValue(t *testing.T) {
	var r Ingested
	if !r.IsEmpty() {
		t.Error("zero value should be empty")
	}
	if !r.Matrix().IsZero() {
		t.Error("zero value should have zero matrix")
	}
}
