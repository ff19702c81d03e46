package service

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"log"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	assetDir = "cache/assets"
	// Quality settings
	qualityThumb = 60
	qualityFull  = 82
	// Size settings (max dimension)
	maxSizeThumb = 300
	maxSizeFull  = 1600
)

// AssetService stores uploaded artwork (product photos, header images,
// logos) on local disk after optimizing it, and serves it back through
// the /assets endpoint.
type AssetService struct {
	dir string
}

// NewAssetService creates an asset store rooted at the default cache dir.
func NewAssetService() *AssetService {
	return &AssetService{dir: assetDir}
}

// EnsureDir ensures the asset directory exists, creates it if it doesn't.
func (as *AssetService) EnsureDir() error {
	if err := os.MkdirAll(as.dir, 0755); err != nil {
		return fmt.Errorf("failed to create asset directory: %w", err)
	}
	return nil
}

// Save optimizes the uploaded image and writes it to disk, returning the
// URL path it will be served from.
func (as *AssetService) Save(data []byte) (string, error) {
	if err := as.EnsureDir(); err != nil {
		return "", err
	}

	optimized, err := OptimizeImage(data, "full")
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("asset_%s.jpg", uuid.NewString())
	path := filepath.Join(as.dir, name)
	if err := os.WriteFile(path, optimized, 0644); err != nil {
		return "", fmt.Errorf("failed to write asset: %w", err)
	}

	log.Printf("✓ Asset stored: %s (%d bytes)", path, len(optimized))
	return "/assets/" + name, nil
}

// Read returns the bytes of a stored asset by its file name.
func (as *AssetService) Read(name string) ([]byte, error) {
	// Reject path traversal in the requested name.
	if filepath.Base(name) != name {
		return nil, fmt.Errorf("invalid asset name: %s", name)
	}
	data, err := os.ReadFile(filepath.Join(as.dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read asset: %w", err)
	}
	return data, nil
}

// Delete removes a stored asset by its file name.
func (as *AssetService) Delete(name string) error {
	if filepath.Base(name) != name {
		return fmt.Errorf("invalid asset name: %s", name)
	}
	if err := os.Remove(filepath.Join(as.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	return nil
}

// OptimizeImage optimizes an image by converting to JPEG and resizing.
// imageData: raw image bytes (PNG, JPEG, etc.)
// size: "thumb" or "full"
// Returns optimized JPEG image bytes.
// Note: Using JPEG instead of WebP to avoid CGO dependency.
func OptimizeImage(imageData []byte, size string) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	log.Printf("📸 Image decoded: format=%s, bounds=%v", format, img.Bounds())

	var maxDim int
	var quality int

	switch size {
	case "thumb":
		maxDim = maxSizeThumb
		quality = qualityThumb
	case "full":
		maxDim = maxSizeFull
		quality = qualityFull
	default:
		maxDim = maxSizeFull
		quality = qualityFull
		log.Printf("⚠️  Unknown size '%s', defaulting to full", size)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	var resized image.Image = img
	if width > maxDim || height > maxDim {
		var newWidth, newHeight int
		if width > height {
			newWidth = maxDim
			newHeight = int(float64(height) * float64(maxDim) / float64(width))
		} else {
			newHeight = maxDim
			newWidth = int(float64(width) * float64(maxDim) / float64(height))
		}

		log.Printf("🔄 Resizing image: %dx%d -> %dx%d", width, height, newWidth, newHeight)
		resized = imaging.Resize(img, newWidth, newHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}

	log.Printf("✓ Image optimized: size=%s, quality=%d, output_size=%d bytes", size, quality, buf.Len())
	return buf.Bytes(), nil
}
