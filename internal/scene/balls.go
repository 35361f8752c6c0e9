package scene

import (
	"image/color"

	"github.com/silbinarywolf/toy-jazz/input"
	"github.com/silbinarywolf/toy-jazz/internal/renderer"
	"github.com/silbinarywolf/toy-jazz/internal/rng"
	"github.com/silbinarywolf/toy-jazz/internal/world"
	"github.com/silbinarywolf/toy-jazz/picture"
)

func init() {
	Register(Scene{
		ID:    "balls",
		Title: "Bouncing balls (click to add, R to shuffle colors, Space to clear)",
		Kind:  Interactive,
		Build: func(env Env) world.World {
			return world.Delegate(NewBalls(env, initialBalls), renderBalls, updateBalls, handleBalls)
		},
	})
}

const (
	initialBalls = 5
	ballSize     = 16
	maxSpeed     = 240
)

var palette = []color.Color{
	color.RGBA{0xe6, 0x39, 0x46, 0xff},
	color.RGBA{0xf4, 0xa2, 0x61, 0xff},
	color.RGBA{0x2a, 0x9d, 0x8f, 0xff},
	color.RGBA{0x45, 0x7b, 0x9d, 0xff},
	color.RGBA{0xa8, 0xda, 0xdc, 0xff},
}

// Ball is a square bouncing inside the world bounds
type Ball struct {
	X, Y   float64
	VX, VY float64
	// Color indexes the palette
	Color int
}

// Balls is the state of the balls scene
type Balls struct {
	Width, Height float64
	Balls         []Ball

	images []renderer.Image
}

// NewBalls returns n balls at random positions, drawn from the shared
// random generator.
func NewBalls(env Env, n int) *Balls {
	s := &Balls{
		Width:  float64(env.Width),
		Height: float64(env.Height),
		images: make([]renderer.Image, len(palette)),
	}
	for i, clr := range palette {
		s.images[i] = env.Solid(clr)
	}
	for i := 0; i < n; i++ {
		s.spawn(float64(rng.IntRange(0, env.Width-ballSize)), float64(rng.IntRange(0, env.Height-ballSize)))
	}
	return s
}

func (s *Balls) spawn(x, y float64) {
	s.Balls = append(s.Balls, Ball{
		X:     x,
		Y:     y,
		VX:    float64(rng.IntRange(-maxSpeed, maxSpeed+1)),
		VY:    float64(rng.IntRange(-maxSpeed, maxSpeed+1)),
		Color: rng.Intn(len(palette)),
	})
}

// ShuffleColors deals the balls' colors out again in a random order
func (s *Balls) ShuffleColors() {
	colors := make([]int, len(s.Balls))
	for i, ball := range s.Balls {
		colors[i] = ball.Color
	}
	rng.Slice(colors)
	for i := range s.Balls {
		s.Balls[i].Color = colors[i]
	}
}

func renderBalls(s *Balls) picture.Picture {
	group := make(picture.Group, 0, len(s.Balls)+1)
	group = append(group, picture.Fill{Color: color.RGBA{0x1d, 0x35, 0x57, 0xff}})
	for _, ball := range s.Balls {
		group = append(group, picture.Sprite{
			Image:  s.images[ball.Color],
			X:      float32(ball.X),
			Y:      float32(ball.Y),
			ScaleX: ballSize,
			ScaleY: ballSize,
		})
	}
	return group
}

func updateBalls(s *Balls, time, delta float64) *Balls {
	maxX, maxY := s.Width-ballSize, s.Height-ballSize
	for i := range s.Balls {
		ball := &s.Balls[i]
		ball.X, ball.VX = bounce(ball.X+ball.VX*delta, ball.VX, maxX)
		ball.Y, ball.VY = bounce(ball.Y+ball.VY*delta, ball.VY, maxY)
	}
	return s
}

// bounce reflects pos back into [0, limit] and flips the velocity if it hit
// an edge
func bounce(pos, velocity, limit float64) (float64, float64) {
	if limit <= 0 {
		return 0, velocity
	}
	switch {
	case pos < 0:
		pos, velocity = -pos, abs(velocity)
	case pos > limit:
		pos, velocity = 2*limit-pos, -abs(velocity)
	}
	if pos < 0 || pos > limit {
		// moved further than the whole width in one tick
		pos = limit / 2
	}
	return pos, velocity
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func handleBalls(s *Balls, event input.Event) *Balls {
	switch event := event.(type) {
	case input.MouseButtonEvent:
		if event.Button == input.MouseButtonLeft && event.Pressed {
			s.spawn(float64(event.X)-ballSize/2, float64(event.Y)-ballSize/2)
		}
	case input.TouchEvent:
		if event.Pressed {
			s.spawn(float64(event.X)-ballSize/2, float64(event.Y)-ballSize/2)
		}
	case input.KeyEvent:
		if !event.Pressed {
			break
		}
		switch event.Key {
		case input.KeyR:
			s.ShuffleColors()
		case input.KeySpace:
			s.Balls = s.Balls[:0]
		}
	}
	return s
}
