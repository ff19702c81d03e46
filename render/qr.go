package render

import (
	"fmt"
	"image"

	qrcode "github.com/skip2/go-qrcode"
)

// qrKey is the synthetic Options.Images key the footer QR badge is stored
// under; it can never collide with an asset URL.
func qrKey(text string) string {
	if text == "" {
		return ""
	}
	return "qr:" + text
}

// BuildQRImage renders the footer QR badge at the given pixel size.
func BuildQRImage(text string, size int) (image.Image, error) {
	qr, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to build qr code: %w", err)
	}
	return qr.Image(size), nil
}
