package render

import (
	"context"
	"fmt"
	"image"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/disintegration/imaging"

	"oferta-studio/models"
)

// ImageLoader fetches and decodes a composition asset by URL.
type ImageLoader interface {
	Load(ctx context.Context, url string) (image.Image, error)
}

// HTTPImageLoader loads assets over HTTP with a bounded timeout.
type HTTPImageLoader struct {
	client *http.Client
}

// NewHTTPImageLoader creates a loader with a 10-second request timeout.
func NewHTTPImageLoader() *HTTPImageLoader {
	return &HTTPImageLoader{client: &http.Client{Timeout: 10 * time.Second}}
}

var _ ImageLoader = (*HTTPImageLoader)(nil)

// Load implements ImageLoader.
func (l *HTTPImageLoader) Load(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image endpoint returned status %d", resp.StatusCode)
	}

	img, err := imaging.Decode(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// CollectImages prefetches every asset the composition may reference:
// product images, the header image, the logo, and the footer QR badge.
// Fetch failures are logged and the asset is simply absent from the map;
// the composer substitutes placeholders, so a dead URL never breaks an
// export.
func CollectImages(ctx context.Context, loader ImageLoader, theme *models.Theme, products []models.Product) map[string]image.Image {
	images := make(map[string]image.Image)

	fetch := func(url string) {
		if url == "" || images[url] != nil {
			return
		}
		if loader == nil {
			return
		}
		img, err := loader.Load(ctx, url)
		if err != nil {
			log.Printf("⚠️  Warning: failed to fetch asset %s: %v", url, err)
			return
		}
		images[url] = img
	}

	fetch(theme.HeaderImageURL)
	fetch(theme.LogoURL)
	for i := range products {
		fetch(products[i].ImageURL)
	}

	if theme.FooterQRText != "" {
		if qr, err := BuildQRImage(theme.FooterQRText, 256); err != nil {
			log.Printf("⚠️  Warning: failed to build footer QR: %v", err)
		} else {
			images[qrKey(theme.FooterQRText)] = qr
		}
	}

	return images
}
