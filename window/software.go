package window

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"time"

	xdraw "golang.org/x/image/draw"
)

// SoftwarePlatform renders into in-memory RGBA images. It needs no display and
// has no real input: events are whatever PushEvent queued.
type SoftwarePlatform struct {
	videoInit, imageInit bool
	events               []Event
	start                time.Time
}

func NewSoftwarePlatform() *SoftwarePlatform {
	return &SoftwarePlatform{start: time.Now()}
}

func (p *SoftwarePlatform) InitVideo() error {
	p.videoInit = true
	return nil
}

func (p *SoftwarePlatform) CreateWindow(title string, x, y, w, h int32, flags WindowFlags) (Window, error) {
	if !p.videoInit {
		return nil, errors.New("Video subsystem has not been initialized")
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("Invalid window size %dx%d", w, h)
	}
	return &SoftwareWindow{Title: title, width: w, height: h}, nil
}

func (p *SoftwarePlatform) CreateRenderer(wind Window, index int, flags RendererFlags) (Renderer, error) {
	sw, ok := wind.(*SoftwareWindow)
	if !ok || sw == nil || sw.destroyed {
		return nil, errors.New("Invalid window")
	}
	if sw.renderer != nil {
		return nil, errors.New("Renderer already associated with window")
	}
	target := image.NewRGBA(image.Rect(0, 0, int(sw.width), int(sw.height)))
	r := &SoftwareRenderer{
		wind:     sw,
		target:   target,
		viewport: target.Bounds(),
		color:    Color{0, 0, 0, 0xff},
	}
	sw.renderer = r
	return r, nil
}

func (p *SoftwarePlatform) InitImage(flags ImageFlags) error {
	if err := checkImageFlags(flags); err != nil {
		return err
	}
	p.imageInit = true
	return nil
}

func (p *SoftwarePlatform) LoadImage(path string) (Surface, error) {
	surface, err := loadImageSurface(path)
	if err != nil {
		return nil, err
	}
	return surface, nil
}

// PushEvent queues e for a later PollEvent.
func (p *SoftwarePlatform) PushEvent(e Event) {
	p.events = append(p.events, e)
}

func (p *SoftwarePlatform) PollEvent() *Event {
	if len(p.events) == 0 {
		return nil
	}
	e := p.events[0]
	p.events = p.events[1:]
	return &e
}

func (p *SoftwarePlatform) QuitImage() {
	p.imageInit = false
}

func (p *SoftwarePlatform) QuitVideo() {
	p.videoInit = false
	p.events = nil
}

func (p *SoftwarePlatform) Ticks() int64 {
	return time.Since(p.start).Microseconds()
}

func (p *SoftwarePlatform) Delay(us int64) {
	if us > 0 {
		time.Sleep(time.Duration(us) * time.Microsecond)
	}
}

type SoftwareWindow struct {
	Title         string
	width, height int32
	renderer      *SoftwareRenderer
	destroyed     bool
}

func (w *SoftwareWindow) Destroy() error {
	if w.destroyed {
		return errors.New("Invalid window")
	}
	w.destroyed = true
	return nil
}

type SoftwareRenderer struct {
	wind      *SoftwareWindow
	target    *image.RGBA
	front     *image.RGBA
	viewport  image.Rectangle
	color     Color
	frames    int
	destroyed bool
}

func (r *SoftwareRenderer) SetDrawColor(c Color) error {
	if r.destroyed {
		return errors.New("Invalid renderer")
	}
	r.color = c
	return nil
}

// Clear fills the whole target, ignoring the viewport, like SDL_RenderClear.
func (r *SoftwareRenderer) Clear() error {
	if r.destroyed {
		return errors.New("Invalid renderer")
	}
	c := color.NRGBA{r.color.R, r.color.G, r.color.B, r.color.A}
	draw.Draw(r.target, r.target.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return nil
}

func (r *SoftwareRenderer) SetViewport(rect *Rect) error {
	if r.destroyed {
		return errors.New("Invalid renderer")
	}
	viewport, err := viewportBounds(rect, r.target.Bounds())
	if err != nil {
		return err
	}
	r.viewport = viewport
	return nil
}

func (r *SoftwareRenderer) CreateTextureFromSurface(s Surface) (Texture, error) {
	if r.destroyed {
		return nil, errors.New("Invalid renderer")
	}
	surface, ok := s.(*imageSurface)
	if !ok || surface == nil || surface.img == nil {
		return nil, errors.New("Invalid surface")
	}
	b := surface.img.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(img, img.Bounds(), surface.img, b.Min, draw.Src)
	return &SoftwareTexture{img: img, owner: r}, nil
}

func (r *SoftwareRenderer) Copy(t Texture, src, dst *Rect) error {
	if r.destroyed {
		return errors.New("Invalid renderer")
	}
	tex, ok := t.(*SoftwareTexture)
	if !ok || tex == nil || tex.img == nil {
		return errors.New("Invalid texture")
	}
	if tex.owner != r {
		return errors.New("Texture was not created with this renderer")
	}
	if r.viewport.Empty() {
		return nil
	}

	srcRect := tex.img.Bounds()
	if src != nil {
		srcRect = toRectangle(src).Intersect(srcRect)
	}
	dstRect := image.Rect(0, 0, r.viewport.Dx(), r.viewport.Dy())
	if dst != nil {
		dstRect = toRectangle(dst)
	}
	dstRect = dstRect.Add(r.viewport.Min)
	if srcRect.Empty() || dstRect.Empty() {
		return nil
	}

	// Scale clips to the sub-image, so nothing lands outside the viewport.
	clip := r.target.SubImage(r.viewport).(*image.RGBA)
	xdraw.NearestNeighbor.Scale(clip, dstRect, tex.img, srcRect, xdraw.Over, nil)
	return nil
}

func (r *SoftwareRenderer) Present() {
	if r.destroyed {
		return
	}
	front := image.NewRGBA(r.target.Bounds())
	copy(front.Pix, r.target.Pix)
	r.front = front
	r.frames++
}

func (r *SoftwareRenderer) Destroy() error {
	if r.destroyed {
		return errors.New("Invalid renderer")
	}
	r.destroyed = true
	if r.wind != nil {
		r.wind.renderer = nil
	}
	return nil
}

// Frame returns the most recently presented frame, or nil before the first
// Present.
func (r *SoftwareRenderer) Frame() *image.RGBA {
	return r.front
}

func (r *SoftwareRenderer) Frames() int {
	return r.frames
}

// WriteFrame encodes the most recently presented frame as PNG.
func (r *SoftwareRenderer) WriteFrame(w io.Writer) error {
	if r.front == nil {
		return errors.New("No frame has been presented")
	}
	return png.Encode(w, r.front)
}

type SoftwareTexture struct {
	img   *image.RGBA
	owner *SoftwareRenderer
}

func (t *SoftwareTexture) Destroy() error {
	if t.img == nil {
		return errors.New("Invalid texture")
	}
	t.img = nil
	return nil
}

// viewportBounds clips a viewport request to bounds. A nil rect selects all
// of bounds; a negative size is an error.
func viewportBounds(rect *Rect, bounds image.Rectangle) (image.Rectangle, error) {
	if rect == nil {
		return bounds, nil
	}
	if rect.W < 0 || rect.H < 0 {
		return image.Rectangle{}, fmt.Errorf("Invalid viewport %v", *rect)
	}
	return toRectangle(rect).Intersect(bounds), nil
}

func toRectangle(r *Rect) image.Rectangle {
	return image.Rect(int(r.X), int(r.Y), int(r.X+r.W), int(r.Y+r.H))
}
