package constant

const (
	SCREEN_WIDTH  = 640
	SCREEN_HEIGHT = 480
	WINDOW_TITLE  = "SDL Tutorial"
)

// Default media shown in the three viewports.
const (
	TOP_LEFT_IMAGE  = "09_the_viewport/viewport.png"
	TOP_RIGHT_IMAGE = "09_the_viewport/otb.png"
	BOTTOM_IMAGE    = "09_the_viewport/logo-abe1.png"
)

// Colors are 0xRRGGBBAA.
const (
	INIT_DRAW_COLOR  = 0xffafafaf
	CLEAR_DRAW_COLOR = 0xffffffff
)

const DEFAULT_CONFIG_PATH = "viewport.yaml"
