//go:build sdl2

package main

import (
	"fmt"
	"log"
	"runtime"

	"github.com/ushitora-anqou/viewport/app"
	"github.com/ushitora-anqou/viewport/window"
)

func init() {
	// SDL must be driven from the main thread.
	runtime.LockOSThread()
}

func runSDL2() error {
	opts, stop, err := setup()
	if err != nil {
		return err
	}
	defer stop()

	a := app.New(window.NewSDLPlatform(), opts.Config)
	defer a.Close()

	if !a.Init() {
		fmt.Println("Failed to initialize!")
		return nil
	}
	a.Run()
	return nil
}

func main() {
	err := runSDL2()
	if err != nil {
		log.Fatal(err)
	}
}
