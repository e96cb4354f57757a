package gdt

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuproc/inspection-reports/internal/testutil"
)

// fakeRunner simulates pdftoppm by writing a PNG next to the output prefix.
type fakeRunner struct {
	calls int
	img   image.Image
	err   error
}

func (r *fakeRunner) Run(_ context.Context, _ string, args ...string) ([]byte, []byte, error) {
	r.calls++
	if r.err != nil {
		return nil, []byte("render failed"), r.err
	}
	prefix := args[len(args)-1]
	var buf bytes.Buffer
	if err := png.Encode(&buf, r.img); err != nil {
		return nil, nil, err
	}
	if err := os.WriteFile(prefix+"-1.png", buf.Bytes(), 0o600); err != nil {
		return nil, nil, err
	}
	return nil, nil, nil
}

type fakeVision struct {
	calls    int
	lastPNG  []byte
	response string
}

func (v *fakeVision) InvokeVisionJSON(_ context.Context, _ string, imagePNG []byte, _ *jsonschema.Schema) (json.RawMessage, error) {
	v.calls++
	v.lastPNG = imagePNG
	return json.RawMessage(v.response), nil
}

func testPageImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}

func newTestAnalyzer(t *testing.T, runner Runner, inv VisionInvoker) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer(Config{DPI: 72}, runner, inv, nil)
	require.NoError(t, err)
	return a
}

func TestAnalyzePoint_RejectsOutOfRangePages(t *testing.T) {
	pdf := testutil.BuildTextPDF("page one", "page two", "page three")
	runner := &fakeRunner{img: testPageImage(800, 600)}
	vision := &fakeVision{}
	a := newTestAnalyzer(t, runner, vision)

	for _, page := range []int{0, -1, 4} {
		_, err := a.AnalyzePoint(context.Background(), pdf, page, 100, 100)
		assert.ErrorIs(t, err, ErrPageOutOfRange, "page %d", page)
	}
	assert.Equal(t, 0, runner.calls, "no rasterization for rejected pages")
	assert.Equal(t, 0, vision.calls, "no model call for rejected pages")
}

func TestAnalyzePoint_Success(t *testing.T) {
	pdf := testutil.BuildTextPDF("drawing page")
	runner := &fakeRunner{img: testPageImage(800, 600)}
	vision := &fakeVision{response: `{
		"symbol": "position",
		"tolerance": "0.25",
		"diameter": true,
		"material_condition": "MMC",
		"datums": [{"letter": "A"}, {"letter": "B", "modifier": "MMC"}]
	}`}
	a := newTestAnalyzer(t, runner, vision)

	feat, err := a.AnalyzePoint(context.Background(), pdf, 1, 300, 200)
	require.NoError(t, err)
	assert.Equal(t, 1, runner.calls)
	assert.Equal(t, 1, vision.calls)
	assert.Equal(t, "position", feat.Symbol)
	assert.Equal(t, "0.25", feat.Tolerance)
	assert.True(t, feat.Diameter)
	require.Len(t, feat.Datums, 2)
	assert.Equal(t, "B", feat.Datums[1].Letter)
	assert.Equal(t, "MMC", feat.Datums[1].Modifier)

	// The model receives a decodable PNG crop.
	img, err := png.Decode(bytes.NewReader(vision.lastPNG))
	require.NoError(t, err)
	assert.False(t, img.Bounds().Empty())
}

func TestAnalyzePoint_RasterFailureSurfaces(t *testing.T) {
	pdf := testutil.BuildTextPDF("drawing page")
	runner := &fakeRunner{err: context.DeadlineExceeded}
	vision := &fakeVision{}
	a := newTestAnalyzer(t, runner, vision)

	_, err := a.AnalyzePoint(context.Background(), pdf, 1, 100, 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdftoppm")
	assert.Equal(t, 0, vision.calls)
}

func TestCropAround_CenteredWindow(t *testing.T) {
	a := newTestAnalyzer(t, &fakeRunner{}, &fakeVision{})

	// DPI 72 means point coordinates map 1:1 to pixels.
	data, err := a.cropAround(testPageImage(2000, 2000), 1000, 1000)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, a.cfg.CropWidth, img.Bounds().Dx())
	assert.Equal(t, a.cfg.CropHeight, img.Bounds().Dy())
}

func TestCropAround_ClampsAtPageEdge(t *testing.T) {
	a := newTestAnalyzer(t, &fakeRunner{}, &fakeVision{})

	data, err := a.cropAround(testPageImage(2000, 2000), 0, 0)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, a.cfg.CropWidth/2, img.Bounds().Dx())
	assert.Equal(t, a.cfg.CropHeight/2, img.Bounds().Dy())
}

func TestCropAround_PointOffPage(t *testing.T) {
	a := newTestAnalyzer(t, &fakeRunner{}, &fakeVision{})

	_, err := a.cropAround(testPageImage(400, 400), 5000, 5000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside the page")
}
