package app

import (
	"io"
	"os"

	"github.com/ushitora-anqou/viewport/config"
	"github.com/ushitora-anqou/viewport/constant"
	"github.com/ushitora-anqou/viewport/util"
	"github.com/ushitora-anqou/viewport/window"
)

// App owns the window, the renderer and the one texture slot for the whole
// run. The zero value is not usable; call New.
type App struct {
	platform window.Platform
	cfg      *config.Config
	out      io.Writer

	window   window.Window
	renderer window.Renderer
	texture  window.Texture

	quit   bool
	closed bool
}

func New(platform window.Platform, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	return &App{
		platform: platform,
		cfg:      cfg,
		out:      os.Stdout,
	}
}

// SetOutput redirects console diagnostics. A nil w discards them.
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}

func (a *App) Window() window.Window     { return a.window }
func (a *App) Renderer() window.Renderer { return a.renderer }
func (a *App) Texture() window.Texture   { return a.texture }

// Done reports whether a quit request has been seen.
func (a *App) Done() bool { return a.quit }

// Init starts the video subsystem, creates the window and its renderer and
// enables PNG decoding. It stops at the first failure.
func (a *App) Init() bool {
	a.closed = false
	a.quit = false

	if err := a.platform.InitVideo(); err != nil {
		util.Diag(a.out, "SDL could not initialize! SDL_Error: %s", err)
		return false
	}

	wind, err := a.platform.CreateWindow(
		a.cfg.Title,
		window.WINDOWPOS_UNDEFINED,
		window.WINDOWPOS_UNDEFINED,
		a.cfg.Width,
		a.cfg.Height,
		window.WINDOW_SHOWN,
	)
	if err != nil {
		util.Diag(a.out, "Window could not be created! SDL_Error: %s", err)
		return false
	}
	a.window = wind

	renderer, err := a.platform.CreateRenderer(wind, -1, window.RENDERER_ACCELERATED)
	if err != nil {
		util.Diag(a.out, "Renderer could not be created! SDL_Error: %s", err)
		return false
	}
	a.renderer = renderer
	if err := renderer.SetDrawColor(window.ColorFromU32(constant.INIT_DRAW_COLOR)); err != nil {
		util.Trace("set draw color", "err", err)
	}

	if err := a.platform.InitImage(window.IMG_INIT_PNG); err != nil {
		util.Diag(a.out, "SDL_image could not initialize! IMG_Error: %s", err)
		return false
	}

	util.Trace("initialized", "title", a.cfg.Title, "width", a.cfg.Width, "height", a.cfg.Height)
	return true
}

// LoadMedia decodes path into the texture slot, destroying whatever the slot
// held before. On failure the slot is left empty.
func (a *App) LoadMedia(path string) bool {
	texture := a.loadTexture(path)
	a.setTexture(texture)
	if texture == nil {
		util.Diag(a.out, "Failed to load texture image!")
		return false
	}
	return true
}

func (a *App) loadTexture(path string) window.Texture {
	if a.renderer == nil {
		util.Diag(a.out, "Unable to create texture from %s! SDL_Error: %s", path, "no renderer")
		return nil
	}

	surface, err := a.platform.LoadImage(path)
	if err != nil {
		util.Diag(a.out, "Unable to load image %s! SDL_Error: %s", path, err)
		return nil
	}
	defer surface.Free()

	texture, err := a.renderer.CreateTextureFromSurface(surface)
	if err != nil {
		util.Diag(a.out, "Unable to create texture from %s! SDL_Error: %s", path, err)
		return nil
	}
	util.Trace("loaded texture", "path", path)
	return texture
}

func (a *App) setTexture(texture window.Texture) {
	if a.texture != nil {
		if err := a.texture.Destroy(); err != nil {
			util.Trace("destroy texture", "err", err)
		}
	}
	a.texture = texture
}

// HandleEvents drains the event queue. A quit request only takes effect
// between frames.
func (a *App) HandleEvents() {
	for event := a.platform.PollEvent(); event != nil; event = a.platform.PollEvent() {
		switch event.Kind {
		case window.EventQuit:
			a.quit = true
		case window.EventKeyDown:
			if event.Key == window.KeyEscape {
				a.quit = true
			}
		}
	}
}

// Frame renders one frame: each viewport gets its image loaded into the
// shared texture slot and drawn, in order. A viewport whose image fails to
// load is skipped; the frame is presented regardless.
func (a *App) Frame() {
	a.HandleEvents()
	if a.renderer == nil {
		return
	}

	// Clear screen
	if err := a.renderer.SetDrawColor(window.ColorFromU32(constant.CLEAR_DRAW_COLOR)); err != nil {
		util.Trace("set draw color", "err", err)
	}
	if err := a.renderer.Clear(); err != nil {
		util.Trace("clear", "err", err)
	}

	images := [3]string{a.cfg.Images.TopLeft, a.cfg.Images.TopRight, a.cfg.Images.Bottom}
	for i, viewport := range Layout(a.cfg.Width, a.cfg.Height) {
		if !a.LoadMedia(images[i]) {
			util.Diag(a.out, "Unable to load media!")
			continue
		}
		if err := a.renderer.SetViewport(&viewport); err != nil {
			util.Trace("set viewport", "viewport", viewport, "err", err)
			continue
		}
		if err := a.renderer.Copy(a.texture, nil, nil); err != nil {
			util.Trace("copy texture", "path", images[i], "err", err)
		}
	}

	a.renderer.Present()
}

// Run renders frames until a quit request has been seen.
func (a *App) Run() {
	synchronizer := window.NewTimeSynchronizer(a.platform, a.cfg.FPS)
	for !a.quit {
		a.Frame()
		synchronizer.MaySleep()
	}
}

// Close releases the texture, the renderer and the window, then shuts the
// platform down. Only the first call after Init does anything; missing
// handles are skipped.
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true

	a.setTexture(nil)
	if a.renderer != nil {
		if err := a.renderer.Destroy(); err != nil {
			util.Trace("destroy renderer", "err", err)
		}
		a.renderer = nil
	}
	if a.window != nil {
		if err := a.window.Destroy(); err != nil {
			util.Trace("destroy window", "err", err)
		}
		a.window = nil
	}

	a.platform.QuitImage()
	a.platform.QuitVideo()
}
