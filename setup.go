package main

import (
	"log/slog"
	"os"
	"runtime/pprof"

	"github.com/ushitora-anqou/viewport/config"
	"github.com/ushitora-anqou/viewport/util"
)

// setup parses options and starts tracing and profiling. The returned
// function stops profiling and must be called before exit.
func setup() (*config.Options, func(), error) {
	opts, err := config.Parse(os.Args[0], os.Args[1:], os.Getenv)
	if err != nil {
		return nil, nil, err
	}

	if opts.Trace {
		util.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
	util.Logger().Debug("options",
		"title", opts.Config.Title,
		"fps", opts.Config.FPS,
		"top_left", opts.Config.Images.TopLeft,
		"top_right", opts.Config.Images.TopRight,
		"bottom", opts.Config.Images.Bottom,
	)

	if opts.CPUProfile == "" {
		return opts, func() {}, nil
	}
	file, err := os.Create(opts.CPUProfile)
	if err != nil {
		return nil, nil, err
	}
	if err := pprof.StartCPUProfile(file); err != nil {
		file.Close()
		return nil, nil, err
	}
	return opts, func() {
		pprof.StopCPUProfile()
		file.Close()
	}, nil
}
