// Package vision answers recipe questions about a photo of ingredients.
package vision

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/kailas-cloud/homechef/internal/domain"
)

const promptPrefix = "Berdasarkan gambar ini dan bahan-bahan yang terlihat, " +
	"berikan saya resep masakan lengkap dalam Bahasa Indonesia. Instruksi pengguna: "

// Supported image types.
const (
	MIMEJPEG = "image/jpeg"
	MIMEPNG  = "image/png"
)

// Service sends one prompt plus one image to the vision model. It keeps no state.
type Service struct {
	gen domain.VisionGenerator
}

// New creates a vision service.
func New(gen domain.VisionGenerator) *Service {
	return &Service{gen: gen}
}

// DetectImage sniffs the content type of data and accepts only JPEG and PNG.
func DetectImage(data []byte) (domain.Image, error) {
	if len(data) == 0 {
		return domain.Image{}, fmt.Errorf("%w: empty image", domain.ErrUnsupportedMedia)
	}
	switch ct := http.DetectContentType(data); ct {
	case MIMEJPEG, MIMEPNG:
		return domain.Image{MIMEType: ct, Data: data}, nil
	default:
		return domain.Image{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedMedia, ct)
	}
}

// Describe asks for a complete recipe based on what is visible in image.
func (s *Service) Describe(ctx context.Context, prompt string, image domain.Image) (string, error) {
	if image.MIMEType != MIMEJPEG && image.MIMEType != MIMEPNG {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedMedia, image.MIMEType)
	}

	res, err := s.gen.GenerateWithImage(ctx, promptPrefix+prompt, image)
	if err != nil {
		if errors.Is(err, domain.ErrGeneration) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", domain.ErrGeneration, err)
	}
	return res.Text, nil
}
