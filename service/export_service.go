package service

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/disintegration/imaging"

	"oferta-studio/models"
	"oferta-studio/render"
	"oferta-studio/utils"
)

var (
	// ErrCaptureFailure marks a rendering-to-bitmap step that threw or
	// produced empty bytes. Retryable; in batch mode it aborts the
	// remaining batch.
	ErrCaptureFailure = errors.New("capture failure")
	// ErrUploadFailure marks a storage collaborator rejection.
	ErrUploadFailure = errors.New("upload failure")
	// ErrExportInProgress guards the shared composition root: no two
	// exports may run concurrently against the same session.
	ErrExportInProgress = errors.New("export already in progress")
)

// batchSettleDelay is the pause between mutating the composition and
// capturing it, carried over from the interactive pipeline this engine
// mirrors. Matches previously-approved behavior; do not re-derive.
const batchSettleDelay = 250 * time.Millisecond

// SaveAllFailure records one failed artifact of a multi-format save.
type SaveAllFailure struct {
	FormatID string `json:"formatId"`
	Error    string `json:"error"`
}

// SaveAllResult reports a multi-format save: each format's artifact is
// independent, so partial success is surfaced rather than collapsed into
// a single error.
type SaveAllResult struct {
	Saved  []models.SavedComposition `json:"saved"`
	Failed []SaveAllFailure          `json:"failed"`
}

// ExportService is the capture → rescale → encode pipeline. All batch
// operations are serialized: one capture at a time against the shared
// session, with an in-flight flag refusing concurrent exports.
type ExportService struct {
	rasterizer   *render.Rasterizer
	loader       render.ImageLoader
	storage      StorageServiceInterface
	compositions CompositionServiceInterface

	// previewWidth is the tree-space capture width. Output resolution
	// never depends on it; it exists so tests can prove that.
	previewWidth int
	settleDelay  time.Duration

	mu       sync.Mutex
	inFlight bool
}

// NewExportService creates the export pipeline. storage and compositions
// may be nil when only raw export (no save-all) is needed.
func NewExportService(fonts *render.FontLibrary, loader render.ImageLoader, storage StorageServiceInterface, compositions CompositionServiceInterface) *ExportService {
	return &ExportService{
		rasterizer:   render.NewRasterizer(fonts),
		loader:       loader,
		storage:      storage,
		compositions: compositions,
		previewWidth: render.DefaultPreviewWidth,
		settleDelay:  batchSettleDelay,
	}
}

// SetPreviewWidth overrides the tree-space capture width.
func (s *ExportService) SetPreviewWidth(w int) {
	if w > 0 {
		s.previewWidth = w
	}
}

// SetSettleDelay overrides the inter-slide settle pause.
func (s *ExportService) SetSettleDelay(d time.Duration) {
	if d >= 0 {
		s.settleDelay = d
	}
}

// begin acquires the exclusive export slot.
func (s *ExportService) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return ErrExportInProgress
	}
	s.inFlight = true
	return nil
}

func (s *ExportService) end() {
	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
}

// capture composes, auto-fits and rasterizes one frame at preview scale,
// then rescales to the format's exact pixel dimensions and PNG-encodes.
// Composition reads run against a snapshot of the session so the live
// theme cannot change mid-capture.
func (s *ExportService) capture(ctx context.Context, theme *models.Theme, products []models.Product, formatID string) ([]byte, error) {
	f, ok := models.FormatByID(formatID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown format %q", ErrCaptureFailure, formatID)
	}

	snapshot := theme.Clone()
	prods := models.CloneProducts(products)

	images := render.CollectImages(ctx, s.loader, snapshot, prods)

	tree, err := render.Compose(snapshot, prods, formatID, render.Options{
		Width:  s.previewWidth,
		Images: images,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCaptureFailure, err)
	}

	if overflowed := render.AutoFit(tree, s.rasterizer); len(overflowed) > 0 {
		log.Printf("⚠️  Auto-fit hit its floor on %v, accepting residual overflow", overflowed)
	}

	previewH := int(float64(s.previewWidth)*float64(f.PixelHeight)/float64(f.PixelWidth) + 0.5)
	img := s.rasterizer.Draw(tree, s.previewWidth, previewH)
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: rasterizer produced an empty frame", ErrCaptureFailure)
	}

	// The output bitmap must exactly equal the format's pixel dimensions;
	// the preview size never leaks through to the export resolution.
	final := imaging.Resize(img, f.PixelWidth, f.PixelHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, final, imaging.PNG); err != nil {
		return nil, fmt.Errorf("%w: png encode: %v", ErrCaptureFailure, err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("%w: empty png output", ErrCaptureFailure)
	}
	return buf.Bytes(), nil
}

// ExportOne captures the session's composition for the given format and
// returns the PNG bytes plus the download filename.
func (s *ExportService) ExportOne(ctx context.Context, session *Session, formatID string) ([]byte, string, error) {
	if err := s.begin(); err != nil {
		return nil, "", err
	}
	defer s.end()

	f, ok := models.FormatByID(formatID)
	if !ok {
		return nil, "", fmt.Errorf("unknown format id %q", formatID)
	}

	log.Printf("📸 Exporting format %s at %dx%d", f.ID, f.PixelWidth, f.PixelHeight)
	data, err := s.capture(ctx, session.Theme, session.Products, formatID)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("oferta-%s-%d.png", utils.Slugify(f.Name), time.Now().UnixMilli())
	return data, filename, nil
}

// ExportBatch captures every product as its own slide in the given format
// and returns a ZIP archive. Products are iterated sequentially — each
// iteration swaps the next product into the shared composition before
// capturing, so concurrent capture would corrupt frames. Any capture
// failure aborts the whole batch (a partial or mislabeled archive is
// worse than no archive) and the session is restored to its pre-batch
// format either way. Cancellation is honored at slide boundaries: the
// current slide always completes.
func (s *ExportService) ExportBatch(ctx context.Context, session *Session, formatID string) ([]byte, string, error) {
	if err := s.begin(); err != nil {
		return nil, "", err
	}
	defer s.end()

	if _, ok := models.FormatByID(formatID); !ok {
		return nil, "", fmt.Errorf("unknown format id %q", formatID)
	}
	if len(session.Products) == 0 {
		return nil, "", fmt.Errorf("no products to export")
	}

	prevFormat := session.Theme.ActiveFormatID
	session.Theme.ActiveFormatID = formatID
	defer func() {
		session.Theme.ActiveFormatID = prevFormat
	}()

	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)

	log.Printf("📦 Batch export: %d slides in format %s", len(session.Products), formatID)

	for i := range session.Products {
		if err := ctx.Err(); err != nil {
			return nil, "", fmt.Errorf("batch export canceled after %d slides: %w", i, err)
		}

		// Swap the next product into the composition, let it settle,
		// then capture.
		slide := []models.Product{session.Products[i]}
		if s.settleDelay > 0 {
			time.Sleep(s.settleDelay)
		}

		data, err := s.capture(ctx, session.Theme, slide, formatID)
		if err != nil {
			return nil, "", fmt.Errorf("slide %d (%s): %w", i+1, session.Products[i].Name, err)
		}

		name := fmt.Sprintf("slide-%02d-%s.png", i+1, utils.Slugify(session.Products[i].Name))
		entry, err := archive.Create(name)
		if err != nil {
			return nil, "", fmt.Errorf("%w: archive entry %s: %v", ErrCaptureFailure, name, err)
		}
		if _, err := entry.Write(data); err != nil {
			return nil, "", fmt.Errorf("%w: archive write %s: %v", ErrCaptureFailure, name, err)
		}
		log.Printf("✓ Captured %s", name)
	}

	if err := archive.Close(); err != nil {
		return nil, "", fmt.Errorf("%w: close archive: %v", ErrCaptureFailure, err)
	}

	filename := fmt.Sprintf("oferta-slides-%d.zip", time.Now().UnixMilli())
	return buf.Bytes(), filename, nil
}

// SaveAll snapshots the current design into several formats in one
// action: for each format the active format is swapped in, captured,
// uploaded and recorded, then restored before the next iteration — the
// live session never observes a transient format after SaveAll returns.
// Each format's artifact is independent, so failures are reported
// per-artifact instead of aborting the rest.
func (s *ExportService) SaveAll(ctx context.Context, session *Session, formatIDs []string) (*SaveAllResult, error) {
	if s.storage == nil || s.compositions == nil {
		return nil, fmt.Errorf("save-all requires storage and composition collaborators")
	}
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	prevFormat := session.Theme.ActiveFormatID
	defer func() {
		session.Theme.ActiveFormatID = prevFormat
	}()

	result := &SaveAllResult{}

	for _, fid := range formatIDs {
		f, ok := models.FormatByID(fid)
		if !ok {
			result.Failed = append(result.Failed, SaveAllFailure{FormatID: fid, Error: "unknown format"})
			continue
		}

		session.Theme.ActiveFormatID = fid
		data, err := s.capture(ctx, session.Theme, session.Products, fid)
		session.Theme.ActiveFormatID = prevFormat
		if err != nil {
			log.Printf("❌ Save-all capture failed for %s: %v", fid, err)
			result.Failed = append(result.Failed, SaveAllFailure{FormatID: fid, Error: err.Error()})
			continue
		}

		filename := fmt.Sprintf("oferta-%s-%d.png", utils.Slugify(f.Name), time.Now().UnixMilli())
		publicURL, storagePath, err := s.storage.Upload(ctx, filename, data)
		if err != nil {
			log.Printf("❌ Save-all upload failed for %s: %v", fid, err)
			result.Failed = append(result.Failed, SaveAllFailure{FormatID: fid, Error: fmt.Errorf("%w: %v", ErrUploadFailure, err).Error()})
			continue
		}

		saved, err := s.compositions.Create(ctx, publicURL, storagePath, f.Name, session.Theme)
		if err != nil {
			log.Printf("❌ Save-all record failed for %s: %v", fid, err)
			result.Failed = append(result.Failed, SaveAllFailure{FormatID: fid, Error: err.Error()})
			continue
		}

		log.Printf("✅ Saved %s as %s", fid, saved.ID)
		result.Saved = append(result.Saved, *saved)
	}

	log.Printf("🎉 Save-all completed: %d saved, %d failed", len(result.Saved), len(result.Failed))
	return result, nil
}
