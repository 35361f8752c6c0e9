// picture holds the drawable values a world hands to the frame driver.
//
// A Picture must not change after it has been returned to the frame driver,
// build a new one for the next frame instead.
package picture

import (
	"image/color"

	"github.com/silbinarywolf/toy-jazz/internal/renderer"
)

// Screen is what a picture draws on. Implementations outside jazz only see
// this interface.
type Screen = renderer.Screen

// Image is an image created by the toolkit, see jazz.NewImage
type Image = renderer.Image

// ImageOptions position and scale an image drawn with Screen.DrawImage
type ImageOptions = renderer.ImageOptions

// Picture is an immutable drawable value
type Picture interface {
	Draw(screen Screen)
}

// Empty draws nothing
type Empty struct{}

func (Empty) Draw(screen Screen) {}

// Fill covers the whole surface with a color
type Fill struct {
	Color color.Color
}

func (p Fill) Draw(screen Screen) {
	screen.Fill(p.Color)
}

// Sprite draws an image with its top-left corner at X, Y. A zero scale draws
// the image at its natural size.
type Sprite struct {
	Image          Image
	X, Y           float32
	ScaleX, ScaleY float32
}

func (p Sprite) Draw(screen Screen) {
	screen.DrawImage(p.Image, ImageOptions{
		X:      p.X,
		Y:      p.Y,
		ScaleX: p.ScaleX,
		ScaleY: p.ScaleY,
	})
}

// Group draws its pictures in order, later ones on top
type Group []Picture

func (p Group) Draw(screen Screen) {
	for _, child := range p {
		if child != nil {
			child.Draw(screen)
		}
	}
}

// Transformed draws Picture scaled by Scale around the origin then moved by
// DX, DY.
type Transformed struct {
	Picture Picture
	Scale   float32
	DX, DY  float32
}

// Translate returns p moved by dx, dy
func Translate(p Picture, dx, dy float32) Transformed {
	return Transformed{Picture: p, Scale: 1, DX: dx, DY: dy}
}

// Scale returns p scaled by factor around the origin
func Scale(p Picture, factor float32) Transformed {
	return Transformed{Picture: p, Scale: factor}
}

func (p Transformed) Draw(screen Screen) {
	if p.Picture == nil {
		return
	}
	p.Picture.Draw(NewTransformScreen(screen, p.Scale, p.DX, p.DY))
}

// TransformScreen applies a scale then translation to every image drawn on
// it. Fill is passed through untouched.
type TransformScreen struct {
	Screen
	scale  float32
	dx, dy float32
}

var _ Screen = new(TransformScreen)

// NewTransformScreen wraps screen, a zero scale is treated as 1.
func NewTransformScreen(screen Screen, scale, dx, dy float32) *TransformScreen {
	if scale == 0 {
		scale = 1
	}
	return &TransformScreen{Screen: screen, scale: scale, dx: dx, dy: dy}
}

func (screen *TransformScreen) DrawImage(img Image, options ImageOptions) {
	scaleX, scaleY := options.ScaleX, options.ScaleY
	if scaleX == 0 || scaleY == 0 {
		scaleX, scaleY = 1, 1
	}
	screen.Screen.DrawImage(img, ImageOptions{
		X:      options.X*screen.scale + screen.dx,
		Y:      options.Y*screen.scale + screen.dy,
		ScaleX: scaleX * screen.scale,
		ScaleY: scaleY * screen.scale,
	})
}
