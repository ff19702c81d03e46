package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/disintegration/imaging"

	"oferta-studio/models"
	"oferta-studio/utils"
)

// PreviewService renders the live composition as an HTML page and can
// screenshot that page through headless Chrome. It is the browser-backed
// sibling of the in-process export pipeline, useful when the artwork
// must match what the editor shows pixel for pixel.
type PreviewService struct {
	baseURL string // Base URL for the render endpoint (e.g., "http://localhost:8080")
}

// detectChromePath detects the path to Chrome/Chromium executable.
// Checks CHROME_PATH env var first, then common installation paths.
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// NewPreviewService creates a new PreviewService.
func NewPreviewService(baseURL string) *PreviewService {
	return &PreviewService{baseURL: baseURL}
}

// fetchImageAsBase64 fetches an image and converts it to a base64 string.
func (s *PreviewService) fetchImageAsBase64(imageURL string) (string, error) {
	var fullURL string
	if imageURL != "" && imageURL[0] == '/' {
		fullURL = s.baseURL + imageURL
	} else {
		fullURL = imageURL
	}

	resp, err := http.Get(fullURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image endpoint returned status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image data: %w", err)
	}

	return base64.StdEncoding.EncodeToString(imageData), nil
}

// previewProduct is the template-facing shape of one product card.
type previewProduct struct {
	Name            string
	Description     string
	Price           string
	OldPrice        string
	DiscountPercent int
	Unit            string
	ImageURL        string
	ImageBase64     string
}

// buildPreviewProducts formats the session products for the template and
// optionally inlines images as base64 for direct browser viewing.
func (s *PreviewService) buildPreviewProducts(products []models.Product, useBase64 bool) []previewProduct {
	out := make([]previewProduct, 0, len(products))
	for i := range products {
		p := products[i]
		pp := previewProduct{
			Name:        p.Name,
			Description: p.Description,
			Unit:        p.Unit,
			ImageURL:    p.ImageURL,
		}
		if cents, err := utils.ParseDecimal(p.Price); err == nil {
			pp.Price = utils.FormatPrice(cents)
			if oldCents, err := utils.ParseDecimal(p.OldPrice); err == nil && oldCents > cents {
				pp.OldPrice = utils.FormatPrice(oldCents)
				pp.DiscountPercent = utils.DiscountPercent(oldCents, cents)
			}
		}
		if useBase64 && p.ImageURL != "" {
			b64, err := s.fetchImageAsBase64(p.ImageURL)
			if err != nil {
				log.Printf("⚠️  Warning: failed to fetch image for %s: %v", p.Name, err)
			} else {
				pp.ImageBase64 = b64
			}
		}
		out = append(out, pp)
	}
	return out
}

// RenderPreviewHTML renders the composition template for a format.
func (s *PreviewService) RenderPreviewHTML(theme *models.Theme, products []models.Product, formatID string, useBase64 bool) (string, error) {
	f, ok := models.FormatByID(formatID)
	if !ok {
		return "", fmt.Errorf("unknown format id %q", formatID)
	}

	cols := models.DefaultLayoutCols(f.ID)
	if c, ok := theme.LayoutCols[f.ID]; ok && c > 0 {
		cols = c
	}

	templateData := struct {
		Format   models.Format
		Theme    *models.Theme
		Header   models.HeaderFooterLayout
		Products []previewProduct
		Cols     int
	}{
		Format:   f,
		Theme:    theme,
		Header:   theme.HeaderElements[f.ID],
		Products: s.buildPreviewProducts(products, useBase64),
		Cols:     cols,
	}

	templatePath := filepath.Join("templates", "preview.html")
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, templateData); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// CapturePNG screenshots the render endpoint for a format through
// headless Chrome and rescales the result to the format's exact pixel
// dimensions.
func (s *PreviewService) CapturePNG(ctx context.Context, formatID string) ([]byte, error) {
	f, ok := models.FormatByID(formatID)
	if !ok {
		return nil, fmt.Errorf("unknown format id %q", formatID)
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, 45*time.Second)
	defer cancel()

	chromePath := detectChromePath()
	var allocCtx context.Context
	var allocCancel context.CancelFunc

	if chromePath != "" {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.ExecPath(chromePath),
			chromedp.NoSandbox, // Required for running in Docker/containers
		)
		allocCtx, allocCancel = chromedp.NewExecAllocator(ctxTimeout, opts...)
		defer allocCancel()
	} else {
		allocCtx, allocCancel = chromedp.NewExecAllocator(ctxTimeout, chromedp.NoSandbox)
		defer allocCancel()
	}

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	// Screenshot at a browser-friendly viewport sharing the format's
	// aspect ratio, then rescale to the exact export resolution.
	viewW := 1080
	viewH := int(int64(viewW) * int64(f.PixelHeight) / int64(f.PixelWidth))
	renderURL := fmt.Sprintf("%s/admin/oferta/render?format=%s", s.baseURL, formatID)

	log.Printf("📸 CapturePNG: format=%s viewport=%dx%d", formatID, viewW, viewH)

	var buf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(int64(viewW), int64(viewH)),
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(2000), // Wait for initial page load
		// Wait for fonts and images to load
		chromedp.Evaluate(`
			(function() {
				return Promise.all([
					document.fonts.ready,
					Promise.all(Array.from(document.querySelectorAll('img')).map(img => {
						return new Promise((resolve) => {
							if (img.complete && img.naturalWidth > 0 && img.naturalHeight > 0) {
								resolve();
								return;
							}
							const timeout = setTimeout(() => resolve(), 5000);
							img.onload = () => { clearTimeout(timeout); resolve(); };
							img.onerror = () => { clearTimeout(timeout); resolve(); };
						});
					}))
				]);
			})();
		`, nil),
		chromedp.Sleep(1000), // Final wait for layout
		chromedp.CaptureScreenshot(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to capture screenshot: %w", err)
	}
	if len(buf) == 0 {
		return nil, fmt.Errorf("capture produced no data")
	}

	img, err := imaging.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("failed to decode screenshot: %w", err)
	}

	final := imaging.Resize(img, f.PixelWidth, f.PixelHeight, imaging.Lanczos)

	var out bytes.Buffer
	if err := imaging.Encode(&out, final, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return out.Bytes(), nil
}

// printDPI is the resolution the print formats' pixel dimensions are
// defined at.
const printDPI = 300.0

// CapturePDF prints the render endpoint for a format to a PDF sized to
// the format's physical dimensions. Meant for the print formats (a4,
// poster); screen formats still get a page the shape of their canvas.
func (s *PreviewService) CapturePDF(ctx context.Context, formatID string) ([]byte, error) {
	f, ok := models.FormatByID(formatID)
	if !ok {
		return nil, fmt.Errorf("unknown format id %q", formatID)
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, 45*time.Second)
	defer cancel()

	chromePath := detectChromePath()
	var allocCtx context.Context
	var allocCancel context.CancelFunc

	if chromePath != "" {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.ExecPath(chromePath),
			chromedp.NoSandbox,
			chromedp.Flag("enable-print-preview", true),
		)
		allocCtx, allocCancel = chromedp.NewExecAllocator(ctxTimeout, opts...)
		defer allocCancel()
	} else {
		allocCtx, allocCancel = chromedp.NewExecAllocator(ctxTimeout, chromedp.NoSandbox)
		defer allocCancel()
	}

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	// Enable Page domain for printing
	if err := chromedp.Run(chromedpCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		return page.Enable().Do(ctx)
	})); err != nil {
		log.Printf("⚠️  Warning: failed to enable page domain: %v", err)
	}

	renderURL := fmt.Sprintf("%s/admin/oferta/render?format=%s", s.baseURL, formatID)
	paperW := float64(f.PixelWidth) / printDPI
	paperH := float64(f.PixelHeight) / printDPI

	log.Printf("📸 CapturePDF: format=%s paper=%.2fx%.2fin", formatID, paperW, paperH)

	viewW := 1080
	viewH := int(int64(viewW) * int64(f.PixelHeight) / int64(f.PixelWidth))

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(int64(viewW), int64(viewH)),
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(2000), // Wait for initial page load
		chromedp.Sleep(1000), // Final wait for layout
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperW).
				WithPaperHeight(paperH).
				WithMarginTop(0). // No margins, padding is in CSS
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to print to pdf: %w", err)
	}
	if len(pdfBuf) == 0 {
		return nil, fmt.Errorf("print produced no data")
	}
	return pdfBuf, nil
}
