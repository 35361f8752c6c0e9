package scene

import (
	"image/color"
	"math"

	"github.com/silbinarywolf/toy-jazz/internal/renderer"
	"github.com/silbinarywolf/toy-jazz/internal/world"
	"github.com/silbinarywolf/toy-jazz/picture"
)

func init() {
	Register(Scene{
		ID:    "orbit",
		Title: "Orbiting planet and moon",
		Kind:  Animated,
		Build: func(env Env) world.World {
			return NewOrbit(env).World()
		},
	})
}

// Orbit is a planet circling a sun with a moon circling the planet. Its
// position only depends on the elapsed time.
type Orbit struct {
	sun, planet, moon renderer.Image
	centerX, centerY  float64
	radius            float64

	// angle is in radians, updated from the elapsed time
	angle float64
}

const (
	orbitSpeed     = 0.8
	orbitMoonSpeed = 5
	sunSize        = 60
	planetSize     = 24
	moonSize       = 8
)

func NewOrbit(env Env) *Orbit {
	return &Orbit{
		sun:     env.Solid(color.RGBA{0xff, 0xc8, 0x3c, 0xff}),
		planet:  env.Solid(color.RGBA{0x3c, 0x8c, 0xff, 0xff}),
		moon:    env.Solid(color.RGBA{0xc8, 0xc8, 0xc8, 0xff}),
		centerX: float64(env.Width) / 2,
		centerY: float64(env.Height) / 2,
		radius:  math.Min(float64(env.Width), float64(env.Height)) / 3,
	}
}

// World returns the animation adapter around o
func (o *Orbit) World() *world.Animation {
	return world.Animate(o.Picture, o.Update)
}

func (o *Orbit) Update(time, delta float64) {
	o.angle = math.Mod(time*orbitSpeed, 2*math.Pi)
}

// PlanetPosition is the planet's center
func (o *Orbit) PlanetPosition() (x, y float64) {
	return o.centerX + o.radius*math.Cos(o.angle), o.centerY + o.radius*math.Sin(o.angle)
}

func (o *Orbit) Picture() picture.Picture {
	planetX, planetY := o.PlanetPosition()
	moonAngle := o.angle * orbitMoonSpeed
	moonX := planetX + planetSize*math.Cos(moonAngle)
	moonY := planetY + planetSize*math.Sin(moonAngle)
	return picture.Group{
		picture.Fill{Color: color.Black},
		square(o.sun, o.centerX, o.centerY, sunSize),
		square(o.planet, planetX, planetY, planetSize),
		square(o.moon, moonX, moonY, moonSize),
	}
}

// square draws img as a size x size square centered on x, y
func square(img renderer.Image, x, y, size float64) picture.Sprite {
	return picture.Sprite{
		Image:  img,
		X:      float32(x - size/2),
		Y:      float32(y - size/2),
		ScaleX: float32(size),
		ScaleY: float32(size),
	}
}
