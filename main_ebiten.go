//go:build ebiten && !sdl2

package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ushitora-anqou/viewport/app"
	"github.com/ushitora-anqou/viewport/window"
)

type Game struct {
	app      *app.App
	platform *window.EbitenPlatform
	width    int
	height   int
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func (g *Game) Update() error {
	if g.app.Done() {
		return ebiten.Termination
	}
	g.app.Frame()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.platform.Draw(screen)
}

func runEbiten() error {
	opts, stop, err := setup()
	if err != nil {
		return err
	}
	defer stop()

	platform := window.NewEbitenPlatform()
	a := app.New(platform, opts.Config)
	defer a.Close()

	if !a.Init() {
		fmt.Println("Failed to initialize!")
		return nil
	}
	if tps := window.TicksPerSecond(opts.Config.FPS); tps > 0 {
		ebiten.SetTPS(tps)
	}

	game := &Game{
		app:      a,
		platform: platform,
		width:    int(opts.Config.Width),
		height:   int(opts.Config.Height),
	}
	return ebiten.RunGame(game)
}

func main() {
	err := runEbiten()
	if err != nil {
		log.Fatal(err)
	}
}
