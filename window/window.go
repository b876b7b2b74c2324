package window

// Rect is a region of the render target in pixels.
type Rect struct {
	X, Y, W, H int32
}

// Color is a straight-alpha RGBA draw color.
type Color struct {
	R, G, B, A uint8
}

// ColorFromU32 unpacks 0xRRGGBBAA.
func ColorFromU32(c uint32) Color {
	return Color{uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)}
}

type EventKind int

const (
	EventOther EventKind = iota
	EventQuit
	EventKeyDown
	EventKeyUp
)

type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
)

type Event struct {
	Kind EventKind
	Key  Key
}

const WINDOWPOS_UNDEFINED int32 = -1 << 31

type WindowFlags uint32

const (
	WINDOW_SHOWN WindowFlags = 1 << iota
	WINDOW_RESIZABLE
)

type RendererFlags uint32

const (
	RENDERER_SOFTWARE RendererFlags = 1 << iota
	RENDERER_ACCELERATED
	RENDERER_PRESENTVSYNC
)

type ImageFlags int

const (
	IMG_INIT_JPG ImageFlags = 1 << iota
	IMG_INIT_PNG
	IMG_INIT_TIF
	IMG_INIT_WEBP
)

// Platform is the windowing and image-decoding library the program drives.
// Every method that can fail reports the library's error text through the
// returned error.
type Platform interface {
	InitVideo() error
	CreateWindow(title string, x, y, w, h int32, flags WindowFlags) (Window, error)
	CreateRenderer(wind Window, index int, flags RendererFlags) (Renderer, error)
	InitImage(flags ImageFlags) error
	LoadImage(path string) (Surface, error)
	// PollEvent returns the next pending event, or nil once the queue is empty.
	// It never blocks.
	PollEvent() *Event
	QuitImage()
	QuitVideo()

	// Ticks returns a monotonic clock in microseconds.
	Ticks() int64
	// Delay sleeps for about us microseconds; non-positive values return at once.
	Delay(us int64)
}

type Window interface {
	Destroy() error
}

// Renderer is the drawing context bound to a Window.
type Renderer interface {
	SetDrawColor(c Color) error
	Clear() error
	// SetViewport scopes subsequent draws to r. A nil r selects the whole target.
	SetViewport(r *Rect) error
	CreateTextureFromSurface(s Surface) (Texture, error)
	// Copy draws src of t stretched over dst. Both rectangles are optional:
	// nil src is the whole texture, nil dst is the whole viewport.
	Copy(t Texture, src, dst *Rect) error
	Present()
	Destroy() error
}

type Texture interface {
	Destroy() error
}

// Surface is a decoded image that has not been uploaded to a renderer yet.
type Surface interface {
	Free()
}
