package export

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/nri-constellation/blend"
	"github.com/lixenwraith/nri-constellation/host"
	"github.com/lixenwraith/nri-constellation/render"
)

func testCanvas() *render.Canvas {
	c := render.NewCanvas(8, 16)
	c.Resize(32, 32, 1)
	c.Clear(render.RGB{R: 5, G: 7, B: 10})
	return c
}

func wellFormed(t *testing.T, doc []byte) {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader(doc))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			t.Fatalf("svg is not well formed: %v\n%s", err, doc)
		}
	}
}

func TestSVGMergesRunsAndEscapesText(t *testing.T) {
	c := testCanvas()
	c.Text(0, 4, "a<b", render.TextStyle{Color: render.RGBWhite, Alpha: 1, Bold: true})

	var buf bytes.Buffer
	if err := SVG(c, &buf); err != nil {
		t.Fatalf("SVG: %v", err)
	}
	doc := buf.Bytes()
	wellFormed(t, doc)

	s := string(doc)
	if got := strings.Count(s, "<rect"); got != 4 {
		t.Errorf("rects = %d, want 4 (one run per half row)", got)
	}
	if !strings.Contains(s, `width="32" height="32"`) {
		t.Errorf("missing document size in %q", s[:120])
	}
	if !strings.Contains(s, "a&lt;b</text>") {
		t.Errorf("text not escaped: %s", s)
	}
	if !strings.Contains(s, `font-weight="bold"`) {
		t.Error("bold attribute missing")
	}
	if strings.Count(s, "<text") != 1 {
		t.Errorf("want one text run, got %d", strings.Count(s, "<text"))
	}
}

func TestSVGSplitsTextOnStyle(t *testing.T) {
	c := testCanvas()
	c.Text(0, 4, "ab", render.TextStyle{Color: render.RGBWhite, Alpha: 1})
	c.Text(16, 4, "cd", render.TextStyle{Color: render.RGBWhite, Alpha: 0.5})

	var buf bytes.Buffer
	if err := SVG(c, &buf); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), "<text"); got != 2 {
		t.Errorf("text runs = %d, want 2", got)
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 40, G: 120, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestEncodeFormats(t *testing.T) {
	shot := pngBytes(t, 6, 4)

	tests := []struct {
		format  string
		wantErr error
		decode  func(io.Reader) (image.Image, error)
	}{
		{"png", nil, png.Decode},
		{"jpg", nil, jpeg.Decode},
		{"JPEG", nil, jpeg.Decode},
		{"gif", ErrFormat, nil},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var out bytes.Buffer
			err := Encode(shot, tt.format, &out)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Encode err = %v, want %v", err, tt.wantErr)
			}
			if tt.decode == nil {
				return
			}
			img, err := tt.decode(&out)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 4 {
				t.Errorf("bounds = %v", b)
			}
		})
	}
}

func TestExporterUsesRasterizer(t *testing.T) {
	shot := pngBytes(t, 2, 2)
	var seen []byte
	e := &Exporter{Raster: func(_ context.Context, svg []byte) ([]byte, error) {
		seen = svg
		return shot, nil
	}}
	c := testCanvas()

	var out bytes.Buffer
	if err := e.Write(context.Background(), c, "png", &out); err != nil {
		t.Fatalf("Write png: %v", err)
	}
	if !bytes.Equal(out.Bytes(), shot) {
		t.Error("png output should pass the screenshot through")
	}
	if !bytes.HasPrefix(seen, []byte("<svg")) {
		t.Errorf("rasterizer got %q", seen)
	}

	seen = nil
	out.Reset()
	if err := e.Write(context.Background(), c, "svg", &out); err != nil {
		t.Fatalf("Write svg: %v", err)
	}
	if seen != nil {
		t.Error("svg output must not launch the rasterizer")
	}

	if err := e.Write(context.Background(), c, "bmp", &out); !errors.Is(err, ErrFormat) {
		t.Errorf("bmp err = %v", err)
	}
}

func TestExporterRasterFailure(t *testing.T) {
	boom := errors.New("no browser")
	e := &Exporter{Raster: func(context.Context, []byte) ([]byte, error) { return nil, boom }}
	err := e.Write(context.Background(), testCanvas(), "jpg", io.Discard)
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}

func TestWriteFileCreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "frame.svg")
	if err := New().WriteFile(context.Background(), testCanvas(), "svg", path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	wellFormed(t, data)
}

func TestFileName(t *testing.T) {
	session := uuid.MustParse("1b4e28ba-2fa1-11d2-883f-0016d3cca427")
	tests := []struct {
		format, ext string
	}{
		{"svg", ".svg"},
		{"PNG", ".png"},
		{"jpeg", ".jpg"},
	}
	for _, tt := range tests {
		got := FileName("out", "map", session, tt.format)
		if filepath.Dir(got) != "out" {
			t.Errorf("dir of %q", got)
		}
		base := filepath.Base(got)
		if !strings.HasPrefix(base, "nri-map-1b4e28ba-") || !strings.HasSuffix(base, tt.ext) {
			t.Errorf("FileName(%q) = %q", tt.format, base)
		}
	}
	if FileName("out", "map", session, "svg") == FileName("out", "map", session, "svg") {
		t.Error("file names should not repeat within a session")
	}
}

func TestAdvanceTicksFrames(t *testing.T) {
	s := host.NewSurface(host.Options{Width: 80, Height: 48, Accelerated: true})
	clock := blend.NewMockClock(time.Unix(1000, 0))

	ticks := 0
	var loop host.FrameFunc
	loop = func(time.Time) {
		ticks++
		s.RequestFrame(loop)
	}
	s.RequestFrame(loop)

	if n := Advance(s, clock, 100*time.Millisecond, 10*time.Millisecond); n != 10 {
		t.Errorf("Advance frames = %d, want 10", n)
	}
	if ticks != 10 {
		t.Errorf("frame callbacks = %d, want 10", ticks)
	}
	if got := clock.Now(); !got.Equal(time.Unix(1000, 0).Add(100 * time.Millisecond)) {
		t.Errorf("clock = %v", got)
	}
}
