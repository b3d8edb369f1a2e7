package ocr

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/openwallet/openwallet-cli/internal/config"
)

// ErrUnavailable is returned when the backing vision service was never
// initialized (missing key or provider "none"). Callers surface it as a
// service error without retrying.
var ErrUnavailable = eris.New("ocr: vision service not initialized")

// Gateway extracts the recognized text from a receipt image.
type Gateway interface {
	RecognizeText(ctx context.Context, image []byte) (string, error)
}

// NewGateway creates a Gateway based on config.
func NewGateway(cfg config.OCRConfig) (Gateway, error) {
	switch cfg.Provider {
	case "vision", "":
		if cfg.Key == "" {
			return &unavailableGateway{}, nil
		}
		return NewVisionOCR(cfg.Key, cfg.Endpoint), nil
	case "none":
		return &unavailableGateway{}, nil
	default:
		return nil, eris.Errorf("ocr: unknown provider %q", cfg.Provider)
	}
}

// unavailableGateway stands in when no vision backend is configured. Every
// call fails with ErrUnavailable.
type unavailableGateway struct{}

func (*unavailableGateway) RecognizeText(context.Context, []byte) (string, error) {
	return "", ErrUnavailable
}
