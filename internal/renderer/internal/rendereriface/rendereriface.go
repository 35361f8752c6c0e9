package rendereriface

import (
	"context"
	"image"
	"image/color"

	"github.com/pkg/errors"
	"github.com/silbinarywolf/toy-jazz/input"
)

var (
	// ErrTerminated is returned from Game.Update to end the frame loop
	// normally. Toolkits never report it as a failure.
	ErrTerminated = errors.New("frame loop terminated")

	// ErrSurfaceBusy is returned by CreateSurface when the toolkit cannot
	// host another surface.
	ErrSurfaceBusy = errors.New("toolkit already hosts a surface")
)

type ImageOptions struct {
	X, Y           float32
	ScaleX, ScaleY float32
}

type Image interface {
}

// Game interface was copy-pasted out of Ebiten
type Game interface {
	Update() error
	Draw(screen Screen)
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// SurfaceCloser is implemented by games that want to know when their surface
// stopped. err is nil when the loop ended with ErrTerminated or the user
// closed the surface.
type SurfaceCloser interface {
	SurfaceClosed(err error)
}

type Screen interface {
	DrawImage(img Image, options ImageOptions)
	Fill(clr color.Color)
	Size() (width, height int)
}

// SurfaceOptions describe the surface to create. Width or Height <= 0 means
// the caller prefers fullscreen, in which case FallbackWidth/FallbackHeight
// size the surface if it ends up windowed.
type SurfaceOptions struct {
	Title                         string
	Width, Height                 int
	FallbackWidth, FallbackHeight int
	TPS                           int
	RunnableOnUnfocused           bool
	Resizable                     bool
}

// Device is a display device
type Device interface {
	SupportsExclusiveFullscreen() bool
}

// Surface is a created but not necessarily visible display surface. Every
// method must be called from the toolkit's UI context.
type Surface interface {
	// SetFullscreen shows the surface exclusively fullscreen on device
	SetFullscreen(device Device)
	// Show shows the surface as a normal window
	Show()
	// Close stops the surface, its game will not be updated again
	Close()
	IsFullscreen() bool
	// Events is the input source for this surface, polled on the UI context
	Events() input.Source
}

// Toolkit is the UI toolkit binding.
type Toolkit interface {
	// Do runs task on the UI context and waits for it to return.
	Do(ctx context.Context, task func()) error
	CreateSurface(options SurfaceOptions, game Game) (Surface, error)
	DefaultDevice() Device
	NewImageFromImage(img image.Image) Image
	// Main services the UI context on the calling goroutine while run
	// executes, and returns once run has returned and every surface is
	// closed.
	Main(run func()) error
}
