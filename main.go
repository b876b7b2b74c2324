//go:build !sdl2 && !ebiten

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ushitora-anqou/viewport/app"
	"github.com/ushitora-anqou/viewport/window"
)

// runHeadless renders opts.Frames frames with the software renderer and
// optionally saves the last one.
func runHeadless() error {
	opts, stop, err := setup()
	if err != nil {
		return err
	}
	defer stop()

	platform := window.NewSoftwarePlatform()
	a := app.New(platform, opts.Config)
	defer a.Close()

	if !a.Init() {
		fmt.Println("Failed to initialize!")
		return nil
	}

	for i := 0; i < opts.Frames && !a.Done(); i++ {
		if i == opts.Frames-1 {
			platform.PushEvent(window.Event{Kind: window.EventQuit})
		}
		a.Frame()
	}

	if opts.Out == "" {
		return nil
	}
	renderer, ok := a.Renderer().(*window.SoftwareRenderer)
	if !ok {
		return fmt.Errorf("unexpected renderer %T", a.Renderer())
	}
	file, err := os.Create(opts.Out)
	if err != nil {
		return err
	}
	defer file.Close()
	return renderer.WriteFrame(file)
}

func main() {
	err := runHeadless()
	if err != nil {
		log.Fatal(err)
	}
}
