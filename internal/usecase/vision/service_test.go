package vision

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/homechef/internal/domain"
)

var (
	pngHeader  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
)

type mockVision struct {
	prompt string
	image  domain.Image
	text   string
	err    error
}

func (m *mockVision) GenerateWithImage(_ context.Context, prompt string, img domain.Image) (domain.GenerationResult, error) {
	m.prompt = prompt
	m.image = img
	return domain.GenerationResult{Text: m.text}, m.err
}

func TestDetectImage(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
		err  error
	}{
		{"png", pngHeader, MIMEPNG, nil},
		{"jpeg", jpegHeader, MIMEJPEG, nil},
		{"gif", []byte("GIF89a"), "", domain.ErrUnsupportedMedia},
		{"text", []byte("hello"), "", domain.ErrUnsupportedMedia},
		{"empty", nil, "", domain.ErrUnsupportedMedia},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := DetectImage(tt.data)
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
			if img.MIMEType != tt.want {
				t.Errorf("expected %q, got %q", tt.want, img.MIMEType)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	gen := &mockVision{text: "Tumis kangkung"}
	s := New(gen)
	img := domain.Image{MIMEType: MIMEPNG, Data: pngHeader}

	out, err := s.Describe(context.Background(), "buat yang pedas", img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Tumis kangkung" {
		t.Errorf("unexpected reply %q", out)
	}
	if !strings.HasPrefix(gen.prompt, "Berdasarkan gambar ini") ||
		!strings.HasSuffix(gen.prompt, "Instruksi pengguna: buat yang pedas") {
		t.Errorf("unexpected prompt %q", gen.prompt)
	}
	if gen.image.MIMEType != MIMEPNG {
		t.Errorf("image not forwarded: %+v", gen.image)
	}
}

func TestDescribe_UnsupportedMedia(t *testing.T) {
	gen := &mockVision{}
	s := New(gen)

	_, err := s.Describe(context.Background(), "p", domain.Image{MIMEType: "image/gif"})
	if !errors.Is(err, domain.ErrUnsupportedMedia) {
		t.Fatalf("expected ErrUnsupportedMedia, got %v", err)
	}
	if gen.prompt != "" {
		t.Error("model must not be called")
	}
}

func TestDescribe_GenerationFailure(t *testing.T) {
	s := New(&mockVision{err: errors.New("image too large")})

	_, err := s.Describe(context.Background(), "p", domain.Image{MIMEType: MIMEJPEG, Data: jpegHeader})
	if !errors.Is(err, domain.ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
}
