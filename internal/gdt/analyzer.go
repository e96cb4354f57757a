package gdt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/docuproc/inspection-reports/internal/extract"
	"github.com/docuproc/inspection-reports/internal/llm"
)

// Config for the point analyzer.
type Config struct {
	Pdftoppm string // binary name or absolute path; if empty -> "pdftoppm"
	DPI      int    // rasterization DPI, default 300

	// Crop size in pixels at the configured DPI, sized to contain one
	// feature control frame with some context around it.
	CropWidth  int // default 600
	CropHeight int // default 280
}

func (c *Config) defaults() {
	if c.Pdftoppm == "" {
		c.Pdftoppm = "pdftoppm"
	}
	if c.DPI <= 0 {
		c.DPI = 300
	}
	if c.CropWidth <= 0 {
		c.CropWidth = 600
	}
	if c.CropHeight <= 0 {
		c.CropHeight = 280
	}
}

// Analyzer rasterizes a crop around a point on a drawing page and asks the
// vision model for the feature control frame it contains.
type Analyzer struct {
	cfg    Config
	runner Runner
	inv    VisionInvoker
	schema *jsonschema.Schema
	logger *slog.Logger
}

// NewAnalyzer wires the analyzer; a nil runner means real exec.
func NewAnalyzer(cfg Config, runner Runner, inv VisionInvoker, logger *slog.Logger) (*Analyzer, error) {
	cfg.defaults()
	if runner == nil {
		runner = execRunner{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	schema, err := llm.CompileSchema(BuildFeatureSchema())
	if err != nil {
		return nil, fmt.Errorf("compile feature schema: %w", err)
	}
	return &Analyzer{cfg: cfg, runner: runner, inv: inv, schema: schema, logger: logger}, nil
}

// AnalyzePoint crops around (x, y), given in page points with a top-left
// origin, on the 1-based page and returns the parsed feature. Out-of-range
// pages are
// rejected before any rasterization or model call.
func (a *Analyzer) AnalyzePoint(ctx context.Context, pdf []byte, page int, x, y float64) (Feature, error) {
	start := time.Now()

	count, err := extract.PageCount(pdf)
	if err != nil {
		return Feature{}, err
	}
	if page < 1 || page > count {
		return Feature{}, fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, page, count)
	}

	crop, err := a.renderCrop(ctx, pdf, page, x, y)
	if err != nil {
		return Feature{}, err
	}

	raw, err := a.inv.InvokeVisionJSON(ctx, BuildFeaturePrompt(), crop, a.schema)
	if err != nil {
		a.logger.Error("gdt.analyze.failed", "page", page, "error", err)
		return Feature{}, fmt.Errorf("analyze point: %w", err)
	}

	var feat Feature
	if err := json.Unmarshal(raw, &feat); err != nil {
		return Feature{}, fmt.Errorf("decode feature: %w", err)
	}

	a.logger.Info("gdt.analyze.ok",
		"page", page,
		"symbol", feat.Symbol,
		"datums", len(feat.Datums),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return feat, nil
}

// renderCrop rasterizes only the target page and cuts a fixed-size window
// centered on the point, clamped to the page image.
func (a *Analyzer) renderCrop(ctx context.Context, pdf []byte, page int, x, y float64) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "gdt-crop-*")
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			a.logger.Warn("gdt.tmpdir.remove_failed", "dir", tmpDir, "error", err)
		}
	}()

	pdfPath := filepath.Join(tmpDir, "input.pdf")
	if err := os.WriteFile(pdfPath, pdf, 0o600); err != nil {
		return nil, fmt.Errorf("write temp pdf: %w", err)
	}

	prefix := filepath.Join(tmpDir, "page")
	pageArg := strconv.Itoa(page)
	// pdftoppm -f N -l N -r DPI -png input.pdf tmp/page
	_, errb, err := a.runner.Run(ctx, a.cfg.Pdftoppm,
		"-f", pageArg, "-l", pageArg,
		"-r", strconv.Itoa(a.cfg.DPI), "-png", pdfPath, prefix)
	if err != nil {
		return nil, fmt.Errorf("pdftoppm: %w (%s)", err, truncate(string(errb), 512))
	}

	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no image for page %d", page)
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		return nil, fmt.Errorf("read rendered page: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode rendered page: %w", err)
	}

	return a.cropAround(img, x, y)
}

func (a *Analyzer) cropAround(img image.Image, x, y float64) ([]byte, error) {
	// Page coordinates are in PDF points (1/72 inch); the raster is DPI
	// pixels per inch.
	scale := float64(a.cfg.DPI) / 72.0
	px := int(x * scale)
	py := int(y * scale)

	rect := image.Rect(
		px-a.cfg.CropWidth/2, py-a.cfg.CropHeight/2,
		px+a.cfg.CropWidth/2, py+a.cfg.CropHeight/2,
	).Intersect(img.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("point (%.1f, %.1f) is outside the page", x, y)
	}

	crop := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(crop, crop.Bounds(), img, rect.Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, crop); err != nil {
		return nil, fmt.Errorf("encode crop: %w", err)
	}
	return buf.Bytes(), nil
}
