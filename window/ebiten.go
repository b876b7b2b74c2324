//go:build ebiten

package window

import (
	"errors"
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EbitenPlatform adapts ebiten's callback-driven loop to the Platform calls.
// Draw calls land on an offscreen canvas during Update; Present copies the
// canvas to the image that Draw shows.
type EbitenPlatform struct {
	start    time.Time
	events   []Event
	polled   bool
	renderer *EbitenRenderer
}

func NewEbitenPlatform() *EbitenPlatform {
	return &EbitenPlatform{start: time.Now()}
}

func (p *EbitenPlatform) InitVideo() error {
	ebiten.SetWindowClosingHandled(true)
	return nil
}

func (p *EbitenPlatform) CreateWindow(title string, x, y, w, h int32, flags WindowFlags) (Window, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.New("Invalid window size")
	}
	ebiten.SetWindowSize(int(w), int(h))
	ebiten.SetWindowTitle(title)
	if flags&WINDOW_RESIZABLE != 0 {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if x != WINDOWPOS_UNDEFINED && y != WINDOWPOS_UNDEFINED {
		ebiten.SetWindowPosition(int(x), int(y))
	}
	return &EbitenWindow{width: int(w), height: int(h)}, nil
}

func (p *EbitenPlatform) CreateRenderer(wind Window, index int, flags RendererFlags) (Renderer, error) {
	ew, ok := wind.(*EbitenWindow)
	if !ok || ew == nil || ew.destroyed {
		return nil, errors.New("Invalid window")
	}
	if p.renderer != nil {
		return nil, errors.New("Renderer already associated with window")
	}
	canvas := ebiten.NewImage(ew.width, ew.height)
	r := &EbitenRenderer{
		platform: p,
		canvas:   canvas,
		front:    ebiten.NewImage(ew.width, ew.height),
		viewport: canvas.Bounds(),
		color:    color.NRGBA{0, 0, 0, 0xff},
	}
	ebiten.SetVsyncEnabled(flags&RENDERER_PRESENTVSYNC != 0)
	p.renderer = r
	return r, nil
}

func (p *EbitenPlatform) InitImage(flags ImageFlags) error {
	return checkImageFlags(flags)
}

func (p *EbitenPlatform) LoadImage(path string) (Surface, error) {
	surface, err := loadImageSurface(path)
	if err != nil {
		return nil, err
	}
	return surface, nil
}

func (p *EbitenPlatform) PollEvent() *Event {
	if !p.polled {
		p.polled = true
		if ebiten.IsWindowBeingClosed() {
			p.events = append(p.events, Event{Kind: EventQuit})
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.events = append(p.events, Event{Kind: EventKeyDown, Key: KeyEscape})
		}
		if inpututil.IsKeyJustReleased(ebiten.KeyEscape) {
			p.events = append(p.events, Event{Kind: EventKeyUp, Key: KeyEscape})
		}
	}
	if len(p.events) == 0 {
		// Input is sampled once per tick; the next drain sees the next tick.
		p.polled = false
		return nil
	}
	e := p.events[0]
	p.events = p.events[1:]
	return &e
}

func (p *EbitenPlatform) QuitImage() {}

func (p *EbitenPlatform) QuitVideo() {
	p.events = nil
	p.renderer = nil
}

func (p *EbitenPlatform) Ticks() int64 {
	return time.Since(p.start).Microseconds()
}

// Delay is a no-op: ebiten paces ticks itself.
func (p *EbitenPlatform) Delay(us int64) {}

// Draw shows the last presented frame on screen.
func (p *EbitenPlatform) Draw(screen *ebiten.Image) {
	if p.renderer == nil || p.renderer.front == nil {
		return
	}
	screen.DrawImage(p.renderer.front, nil)
}

type EbitenWindow struct {
	width, height int
	destroyed     bool
}

func (w *EbitenWindow) Destroy() error {
	w.destroyed = true
	return nil
}

type EbitenRenderer struct {
	platform      *EbitenPlatform
	canvas, front *ebiten.Image
	viewport      image.Rectangle
	color         color.NRGBA
}

func (r *EbitenRenderer) SetDrawColor(c Color) error {
	r.color = color.NRGBA{c.R, c.G, c.B, c.A}
	return nil
}

func (r *EbitenRenderer) Clear() error {
	if r.canvas == nil {
		return errors.New("Invalid renderer")
	}
	r.canvas.Fill(r.color)
	return nil
}

func (r *EbitenRenderer) SetViewport(rect *Rect) error {
	if r.canvas == nil {
		return errors.New("Invalid renderer")
	}
	viewport, err := viewportBounds(rect, r.canvas.Bounds())
	if err != nil {
		return err
	}
	r.viewport = viewport
	return nil
}

func (r *EbitenRenderer) CreateTextureFromSurface(s Surface) (Texture, error) {
	surface, ok := s.(*imageSurface)
	if !ok || surface == nil || surface.img == nil {
		return nil, errors.New("Invalid surface")
	}
	return &EbitenTexture{ebiten.NewImageFromImage(surface.img)}, nil
}

func (r *EbitenRenderer) Copy(t Texture, src, dst *Rect) error {
	if r.canvas == nil {
		return errors.New("Invalid renderer")
	}
	tex, ok := t.(*EbitenTexture)
	if !ok || tex == nil || tex.img == nil {
		return errors.New("Invalid texture")
	}
	if r.viewport.Empty() {
		return nil
	}

	srcImg := tex.img
	if src != nil {
		srcImg = tex.img.SubImage(toRectangle(src).Intersect(tex.img.Bounds())).(*ebiten.Image)
	}
	sb := srcImg.Bounds()
	dstRect := image.Rect(0, 0, r.viewport.Dx(), r.viewport.Dy())
	if dst != nil {
		dstRect = toRectangle(dst)
	}
	dstRect = dstRect.Add(r.viewport.Min)
	if sb.Empty() || dstRect.Empty() {
		return nil
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(dstRect.Dx())/float64(sb.Dx()), float64(dstRect.Dy())/float64(sb.Dy()))
	op.GeoM.Translate(float64(dstRect.Min.X), float64(dstRect.Min.Y))
	r.canvas.SubImage(r.viewport).(*ebiten.Image).DrawImage(srcImg, op)
	return nil
}

func (r *EbitenRenderer) Present() {
	if r.canvas == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.Blend = ebiten.BlendCopy
	r.front.DrawImage(r.canvas, op)
}

func (r *EbitenRenderer) Destroy() error {
	if r.canvas == nil {
		return errors.New("Invalid renderer")
	}
	r.canvas.Dispose()
	r.front.Dispose()
	r.canvas, r.front = nil, nil
	if r.platform != nil && r.platform.renderer == r {
		r.platform.renderer = nil
	}
	return nil
}

type EbitenTexture struct {
	img *ebiten.Image
}

func (t *EbitenTexture) Destroy() error {
	if t.img == nil {
		return errors.New("Invalid texture")
	}
	t.img.Dispose()
	t.img = nil
	return nil
}
