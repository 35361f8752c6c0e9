package scene

import (
	"image/color"

	"github.com/silbinarywolf/toy-jazz/internal/world"
	"github.com/silbinarywolf/toy-jazz/picture"
)

const (
	checkerSize = 8
	checkerCell = 48
)

var (
	checkerBackground = color.RGBA{0x30, 0x2e, 0x2b, 0xff}
	checkerLight      = color.RGBA{0xee, 0xee, 0xd2, 0xff}
	checkerDark       = color.RGBA{0x76, 0x96, 0x56, 0xff}
)

func init() {
	Register(Scene{
		ID:    "checker",
		Title: "Checkerboard",
		Kind:  Static,
		Build: func(env Env) world.World {
			return world.Static(Checker(env))
		},
	})
}

// Checker draws a centered board, scroll to zoom and drag with the right
// mouse button to pan.
func Checker(env Env) picture.Picture {
	light, dark := env.Solid(checkerLight), env.Solid(checkerDark)
	board := make(picture.Group, 0, checkerSize*checkerSize)
	for y := 0; y < checkerSize; y++ {
		for x := 0; x < checkerSize; x++ {
			img := light
			if (x+y)%2 == 1 {
				img = dark
			}
			board = append(board, picture.Sprite{
				Image:  img,
				X:      float32(x * checkerCell),
				Y:      float32(y * checkerCell),
				ScaleX: checkerCell,
				ScaleY: checkerCell,
			})
		}
	}
	offsetX := float32(env.Width-checkerSize*checkerCell) / 2
	offsetY := float32(env.Height-checkerSize*checkerCell) / 2
	return picture.Group{
		picture.Fill{Color: checkerBackground},
		picture.Translate(board, offsetX, offsetY),
	}
}
