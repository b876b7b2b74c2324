package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ushitora-anqou/viewport/constant"
)

// Images names the file drawn into each viewport.
type Images struct {
	TopLeft  string `yaml:"top_left"`
	TopRight string `yaml:"top_right"`
	Bottom   string `yaml:"bottom"`
}

type Config struct {
	Title  string `yaml:"title"`
	Width  int32  `yaml:"width"`
	Height int32  `yaml:"height"`
	// FPS caps the frame rate; 0 renders as fast as possible.
	FPS    float64 `yaml:"fps"`
	Images Images  `yaml:"images"`
}

func Default() *Config {
	return &Config{
		Title:  constant.WINDOW_TITLE,
		Width:  constant.SCREEN_WIDTH,
		Height: constant.SCREEN_HEIGHT,
		FPS:    0,
		Images: Images{
			TopLeft:  constant.TOP_LEFT_IMAGE,
			TopRight: constant.TOP_RIGHT_IMAGE,
			Bottom:   constant.BOTTOM_IMAGE,
		},
	}
}

// Load reads a YAML file over the defaults. Keys absent from the file keep
// their default values; unknown keys are an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

func Decode(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Width, c.Height)
	}
	if c.FPS < 0 {
		return fmt.Errorf("invalid fps %v", c.FPS)
	}
	if c.Images.TopLeft == "" || c.Images.TopRight == "" || c.Images.Bottom == "" {
		return fmt.Errorf("every viewport needs an image path")
	}
	return nil
}

// Options is everything the command line and environment control.
type Options struct {
	Config     *Config
	Trace      bool
	CPUProfile string
	// Frames and Out are used by the headless build only.
	Frames int
	Out    string
}

// Parse builds Options from args (without the program name) and the
// environment. Precedence: flags, then the config file, then defaults.
func Parse(name string, args []string, getenv func(string) string) (*Options, error) {
	fset := flag.NewFlagSet(name, flag.ContinueOnError)
	configPath := fset.String("config", "", "YAML config file (default $VIEWPORT_CONFIG or "+constant.DEFAULT_CONFIG_PATH+")")
	title := fset.String("title", "", "window title")
	fps := fset.Float64("fps", -1, "frame rate cap, 0 for none")
	topLeft := fset.String("top-left", "", "image for the top-left viewport")
	topRight := fset.String("top-right", "", "image for the top-right viewport")
	bottom := fset.String("bottom", "", "image for the bottom viewport")
	trace := fset.Bool("trace", getenv("VIEWPORT_TRACE") == "1", "log every platform call")
	frames := fset.Int("frames", 1, "frames to render before quitting (headless)")
	out := fset.String("out", "", "write the last frame to this PNG file (headless)")
	if err := fset.Parse(args); err != nil {
		return nil, err
	}
	if fset.NArg() > 0 {
		return nil, fmt.Errorf("Usage: %s [flags]", name)
	}

	cfg, err := loadConfig(*configPath, getenv)
	if err != nil {
		return nil, err
	}
	if *title != "" {
		cfg.Title = *title
	}
	if *fps >= 0 {
		cfg.FPS = *fps
	}
	if *topLeft != "" {
		cfg.Images.TopLeft = *topLeft
	}
	if *topRight != "" {
		cfg.Images.TopRight = *topRight
	}
	if *bottom != "" {
		cfg.Images.Bottom = *bottom
	}
	if *frames < 1 {
		return nil, fmt.Errorf("invalid frame count %d", *frames)
	}

	return &Options{
		Config:     cfg,
		Trace:      *trace,
		CPUProfile: getenv("VIEWPORT_CPUPROFILE"),
		Frames:     *frames,
		Out:        *out,
	}, nil
}

func loadConfig(path string, getenv func(string) string) (*Config, error) {
	if path == "" {
		path = getenv("VIEWPORT_CONFIG")
	}
	if path != "" {
		return Load(path)
	}
	cfg, err := Load(constant.DEFAULT_CONFIG_PATH)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}
