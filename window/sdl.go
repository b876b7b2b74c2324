//go:build sdl2

package window

import (
	"errors"

	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"
)

// SDLPlatform drives SDL2 and SDL2_image.
type SDLPlatform struct{}

func NewSDLPlatform() *SDLPlatform {
	return &SDLPlatform{}
}

func (p *SDLPlatform) InitVideo() error {
	return sdl.Init(sdl.INIT_VIDEO)
}

func (p *SDLPlatform) CreateWindow(title string, x, y, w, h int32, flags WindowFlags) (Window, error) {
	if x == WINDOWPOS_UNDEFINED {
		x = sdl.WINDOWPOS_UNDEFINED
	}
	if y == WINDOWPOS_UNDEFINED {
		y = sdl.WINDOWPOS_UNDEFINED
	}
	var sdlFlags uint32
	if flags&WINDOW_SHOWN != 0 {
		sdlFlags |= sdl.WINDOW_SHOWN
	}
	if flags&WINDOW_RESIZABLE != 0 {
		sdlFlags |= sdl.WINDOW_RESIZABLE
	}
	window, err := sdl.CreateWindow(title, x, y, w, h, sdlFlags)
	if err != nil {
		return nil, err
	}
	return &SDLWindow{window}, nil
}

func (p *SDLPlatform) CreateRenderer(wind Window, index int, flags RendererFlags) (Renderer, error) {
	sw, ok := wind.(*SDLWindow)
	if !ok || sw == nil || sw.window == nil {
		return nil, errors.New("Invalid window")
	}
	var sdlFlags uint32
	if flags&RENDERER_SOFTWARE != 0 {
		sdlFlags |= sdl.RENDERER_SOFTWARE
	}
	if flags&RENDERER_ACCELERATED != 0 {
		sdlFlags |= sdl.RENDERER_ACCELERATED
	}
	if flags&RENDERER_PRESENTVSYNC != 0 {
		sdlFlags |= sdl.RENDERER_PRESENTVSYNC
	}
	renderer, err := sdl.CreateRenderer(sw.window, index, sdlFlags)
	if err != nil {
		return nil, err
	}
	return &SDLRenderer{renderer}, nil
}

func (p *SDLPlatform) InitImage(flags ImageFlags) error {
	var imgFlags int
	if flags&IMG_INIT_JPG != 0 {
		imgFlags |= img.INIT_JPG
	}
	if flags&IMG_INIT_PNG != 0 {
		imgFlags |= img.INIT_PNG
	}
	if flags&IMG_INIT_TIF != 0 {
		imgFlags |= img.INIT_TIF
	}
	if flags&IMG_INIT_WEBP != 0 {
		imgFlags |= img.INIT_WEBP
	}
	return img.Init(imgFlags)
}

func (p *SDLPlatform) LoadImage(path string) (Surface, error) {
	surface, err := img.Load(path)
	if err != nil {
		return nil, err
	}
	return &SDLSurface{surface}, nil
}

func (p *SDLPlatform) PollEvent() *Event {
	event := sdl.PollEvent()
	if event == nil {
		return nil
	}
	switch event := event.(type) {
	case *sdl.QuitEvent:
		return &Event{Kind: EventQuit}

	case *sdl.KeyboardEvent:
		we := &Event{Kind: EventKeyDown}
		if event.Type == sdl.KEYUP {
			we.Kind = EventKeyUp
		}
		switch event.Keysym.Sym {
		case sdl.K_ESCAPE:
			we.Key = KeyEscape
		}
		return we
	}
	return &Event{Kind: EventOther}
}

func (p *SDLPlatform) QuitImage() {
	img.Quit()
}

func (p *SDLPlatform) QuitVideo() {
	sdl.Quit()
}

func (p *SDLPlatform) Ticks() int64 {
	return int64(sdl.GetTicks()) * 1000
}

func (p *SDLPlatform) Delay(us int64) {
	if us >= 1000 {
		sdl.Delay(uint32(us / 1000))
	}
}

type SDLWindow struct {
	window *sdl.Window
}

func (w *SDLWindow) Destroy() error {
	if w.window == nil {
		return nil
	}
	err := w.window.Destroy()
	w.window = nil
	return err
}

type SDLRenderer struct {
	renderer *sdl.Renderer
}

func (r *SDLRenderer) SetDrawColor(c Color) error {
	return r.renderer.SetDrawColor(c.R, c.G, c.B, c.A)
}

func (r *SDLRenderer) Clear() error {
	return r.renderer.Clear()
}

func (r *SDLRenderer) SetViewport(rect *Rect) error {
	return r.renderer.SetViewport(toSDLRect(rect))
}

func (r *SDLRenderer) CreateTextureFromSurface(s Surface) (Texture, error) {
	surface, ok := s.(*SDLSurface)
	if !ok || surface == nil || surface.surface == nil {
		return nil, errors.New("Invalid surface")
	}
	texture, err := r.renderer.CreateTextureFromSurface(surface.surface)
	if err != nil {
		return nil, err
	}
	return &SDLTexture{texture}, nil
}

func (r *SDLRenderer) Copy(t Texture, src, dst *Rect) error {
	tex, ok := t.(*SDLTexture)
	if !ok || tex == nil || tex.texture == nil {
		return errors.New("Invalid texture")
	}
	return r.renderer.Copy(tex.texture, toSDLRect(src), toSDLRect(dst))
}

func (r *SDLRenderer) Present() {
	r.renderer.Present()
}

func (r *SDLRenderer) Destroy() error {
	if r.renderer == nil {
		return nil
	}
	err := r.renderer.Destroy()
	r.renderer = nil
	return err
}

type SDLTexture struct {
	texture *sdl.Texture
}

func (t *SDLTexture) Destroy() error {
	if t.texture == nil {
		return nil
	}
	err := t.texture.Destroy()
	t.texture = nil
	return err
}

type SDLSurface struct {
	surface *sdl.Surface
}

func (s *SDLSurface) Free() {
	if s.surface != nil {
		s.surface.Free()
		s.surface = nil
	}
}

func toSDLRect(r *Rect) *sdl.Rect {
	if r == nil {
		return nil
	}
	return &sdl.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}
