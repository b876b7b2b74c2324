package window

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ushitora-anqou/viewport/util"
)

var (
	red   = color.RGBA{0xff, 0, 0, 0xff}
	green = color.RGBA{0, 0xff, 0, 0xff}
	white = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

func writePNG(t *testing.T, dir, name string, w, h int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func newSoftwareRenderer(t *testing.T, w, h int32) (*SoftwarePlatform, *SoftwareRenderer) {
	t.Helper()
	p := NewSoftwarePlatform()
	if err := p.InitVideo(); err != nil {
		t.Fatal(err)
	}
	wind, err := p.CreateWindow("test", WINDOWPOS_UNDEFINED, WINDOWPOS_UNDEFINED, w, h, WINDOW_SHOWN)
	if err != nil {
		t.Fatal(err)
	}
	r, err := p.CreateRenderer(wind, -1, RENDERER_ACCELERATED)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.InitImage(IMG_INIT_PNG); err != nil {
		t.Fatal(err)
	}
	return p, r.(*SoftwareRenderer)
}

func loadTexture(t *testing.T, p *SoftwarePlatform, r *SoftwareRenderer, path string) Texture {
	t.Helper()
	surface, err := p.LoadImage(path)
	if err != nil {
		t.Fatal(err)
	}
	defer surface.Free()
	tex, err := r.CreateTextureFromSurface(surface)
	if err != nil {
		t.Fatal(err)
	}
	return tex
}

func TestSoftwareCopyIntoViewport(t *testing.T) {
	dir := t.TempDir()
	p, r := newSoftwareRenderer(t, 8, 6)
	tex := loadTexture(t, p, r, writePNG(t, dir, "red.png", 2, 2, red))

	r.SetDrawColor(Color{0xff, 0xff, 0xff, 0xff})
	r.Clear()
	if err := r.SetViewport(&Rect{4, 0, 4, 3}); err != nil {
		t.Fatal(err)
	}
	if err := r.Copy(tex, nil, nil); err != nil {
		t.Fatal(err)
	}
	r.Present()

	frame := r.Frame()
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			expected := white
			if x >= 4 && y < 3 {
				expected = red
			}
			if got := frame.RGBAAt(x, y); got != expected {
				t.Fatalf("pixel (%d, %d): got %v, expected %v", x, y, got, expected)
			}
		}
	}
}

func TestSoftwareCopyDstIsViewportRelative(t *testing.T) {
	dir := t.TempDir()
	p, r := newSoftwareRenderer(t, 8, 8)
	tex := loadTexture(t, p, r, writePNG(t, dir, "green.png", 1, 1, green))

	r.SetDrawColor(Color{0xff, 0xff, 0xff, 0xff})
	r.Clear()
	r.SetViewport(&Rect{4, 4, 4, 4})
	// Partly outside the viewport: only the part inside is drawn.
	r.Copy(tex, nil, &Rect{2, 2, 4, 4})
	r.Present()

	frame := r.Frame()
	table := []struct {
		x, y     int
		expected color.RGBA
	}{
		{6, 6, green},
		{7, 7, green},
		{5, 5, white},
		{3, 7, white},
		{0, 0, white},
	}
	for _, entry := range table {
		if got := frame.RGBAAt(entry.x, entry.y); got != entry.expected {
			t.Fatalf("pixel (%d, %d): got %v, expected %v", entry.x, entry.y, got, entry.expected)
		}
	}
}

func TestSoftwareClearIgnoresViewport(t *testing.T) {
	_, r := newSoftwareRenderer(t, 4, 4)
	r.SetViewport(&Rect{0, 0, 1, 1})
	r.SetDrawColor(Color{0xff, 0xff, 0xff, 0xff})
	r.Clear()
	r.Present()
	if got := r.Frame().RGBAAt(3, 3); got != white {
		t.Fatalf("pixel (3, 3): got %v, expected %v", got, white)
	}
}

func TestSoftwarePresentSnapshots(t *testing.T) {
	_, r := newSoftwareRenderer(t, 2, 2)
	if r.Frame() != nil {
		t.Fatalf("frame before the first Present")
	}
	if err := r.WriteFrame(&bytes.Buffer{}); err == nil {
		t.Fatalf("WriteFrame succeeded before the first Present")
	}

	r.SetDrawColor(Color{0xff, 0xff, 0xff, 0xff})
	r.Clear()
	r.Present()
	r.SetDrawColor(Color{0, 0, 0, 0xff})
	r.Clear()

	if got := r.Frame().RGBAAt(0, 0); got != white {
		t.Fatalf("presented frame changed after Present: %v", got)
	}
	if r.Frames() != 1 {
		t.Fatalf("frames: got %d, expected 1", r.Frames())
	}

	buf := &bytes.Buffer{}
	if err := r.WriteFrame(buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(buf)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Fatalf("written frame size: %v", img.Bounds())
	}
}

func TestSoftwareLoadImageErrors(t *testing.T) {
	dir := t.TempDir()
	p, _ := newSoftwareRenderer(t, 2, 2)

	if _, err := p.LoadImage(filepath.Join(dir, "missing.png")); err == nil {
		t.Fatalf("LoadImage succeeded for a missing file")
	}

	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not a png"), 0644); err != nil {
		t.Fatal(err)
	}
	if surface, err := p.LoadImage(garbage); err == nil || surface != nil {
		t.Fatalf("LoadImage succeeded for garbage: %v", surface)
	}
}

func TestSoftwareInvalidHandles(t *testing.T) {
	dir := t.TempDir()
	p, r := newSoftwareRenderer(t, 2, 2)
	tex := loadTexture(t, p, r, writePNG(t, dir, "red.png", 1, 1, red))

	if err := tex.Destroy(); err != nil {
		t.Fatal(err)
	}
	if err := tex.Destroy(); err == nil {
		t.Fatalf("second texture Destroy succeeded")
	}
	if err := r.Copy(tex, nil, nil); err == nil {
		t.Fatalf("Copy of a destroyed texture succeeded")
	}
	if err := r.Copy(nil, nil, nil); err == nil {
		t.Fatalf("Copy of a nil texture succeeded")
	}

	if err := r.Destroy(); err != nil {
		t.Fatal(err)
	}
	if err := r.Clear(); err == nil {
		t.Fatalf("Clear on a destroyed renderer succeeded")
	}
	if err := r.Destroy(); err == nil {
		t.Fatalf("second renderer Destroy succeeded")
	}
}

func TestSoftwareCreateWindowNeedsVideo(t *testing.T) {
	p := NewSoftwarePlatform()
	if _, err := p.CreateWindow("test", 0, 0, 640, 480, WINDOW_SHOWN); err == nil {
		t.Fatalf("CreateWindow succeeded before InitVideo")
	}
	p.InitVideo()
	if _, err := p.CreateWindow("test", 0, 0, 0, 480, WINDOW_SHOWN); err == nil {
		t.Fatalf("CreateWindow succeeded with zero width")
	}
}

func TestSoftwareEvents(t *testing.T) {
	p := NewSoftwarePlatform()
	if e := p.PollEvent(); e != nil {
		t.Fatalf("event from an empty queue: %v", e)
	}
	p.PushEvent(Event{Kind: EventKeyDown, Key: KeyEscape})
	p.PushEvent(Event{Kind: EventQuit})
	if e := p.PollEvent(); e == nil || e.Kind != EventKeyDown || e.Key != KeyEscape {
		t.Fatalf("first event: %v", e)
	}
	if e := p.PollEvent(); e == nil || e.Kind != EventQuit {
		t.Fatalf("second event: %v", e)
	}
	if e := p.PollEvent(); e != nil {
		t.Fatalf("event after drain: %v", e)
	}
}

func TestCheckImageFlags(t *testing.T) {
	table := []struct {
		flags ImageFlags
		ok    bool
	}{
		{IMG_INIT_PNG, true},
		{IMG_INIT_PNG | IMG_INIT_JPG | IMG_INIT_TIF | IMG_INIT_WEBP, true},
		{0, false},
		{IMG_INIT_WEBP << 1, false},
	}
	for _, entry := range table {
		err := checkImageFlags(entry.flags)
		if (err == nil) != entry.ok {
			t.Fatalf("checkImageFlags(%#x): got %v", int(entry.flags), err)
		}
	}
}

func TestColorFromU32(t *testing.T) {
	if got := ColorFromU32(0xffafaf80); got != (Color{0xff, 0xaf, 0xaf, 0x80}) {
		t.Fatalf("ColorFromU32: got %v", got)
	}
}

func TestViewportBounds(t *testing.T) {
	bounds := image.Rect(0, 0, 640, 480)
	table := []struct {
		rect     *Rect
		expected image.Rectangle
		ok       bool
	}{
		{nil, bounds, true},
		{&Rect{320, 0, 320, 240}, image.Rect(320, 0, 640, 240), true},
		{&Rect{600, 400, 100, 100}, image.Rect(600, 400, 640, 480), true},
		{&Rect{100, 100, -50, 10}, image.Rectangle{}, false},
		{&Rect{100, 100, 10, -50}, image.Rectangle{}, false},
	}
	for _, entry := range table {
		got, err := viewportBounds(entry.rect, bounds)
		if (err == nil) != entry.ok || got != entry.expected {
			t.Fatalf("viewportBounds(%v): got %v, %v, expected %v", entry.rect, got, err, entry.expected)
		}
	}
}

func TestSoftwareNegativeViewportKeepsPrevious(t *testing.T) {
	_, r := newSoftwareRenderer(t, 8, 8)
	r.SetViewport(&Rect{0, 0, 4, 4})
	if err := r.SetViewport(&Rect{6, 6, -4, -4}); err == nil {
		t.Fatalf("SetViewport accepted a negative size")
	}
	if r.viewport != image.Rect(0, 0, 4, 4) {
		t.Fatalf("viewport changed by a rejected request: %v", r.viewport)
	}
}

func TestLoadImageTracesFormat(t *testing.T) {
	defer util.SetLogger(nil)
	var trace bytes.Buffer
	util.SetLogger(slog.New(slog.NewTextHandler(&trace, &slog.HandlerOptions{Level: slog.LevelDebug})))

	path := writePNG(t, t.TempDir(), "red.png", 3, 2, red)
	surface, err := NewSoftwarePlatform().LoadImage(path)
	if err != nil {
		t.Fatal(err)
	}
	surface.Free()
	if !strings.Contains(trace.String(), "format=png") {
		t.Fatalf("decoded format not traced: %q", trace.String())
	}
}
