package app

import "github.com/ushitora-anqou/viewport/window"

// Layout splits a w×h target into the top-left quadrant, the top-right
// quadrant and the bottom half, in draw order.
func Layout(w, h int32) [3]window.Rect {
	return [3]window.Rect{
		{X: 0, Y: 0, W: w / 2, H: h / 2},
		{X: w / 2, Y: 0, W: w / 2, H: h / 2},
		{X: 0, Y: h / 2, W: w, H: h / 2},
	}
}
