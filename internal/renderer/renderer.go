package renderer

import (
	"github.com/silbinarywolf/toy-jazz/internal/renderer/internal/rendereriface"
)

// ImageOptions are draw options for an image
type ImageOptions = rendereriface.ImageOptions

// Image is a sprite loaded by the renderer
type Image = rendereriface.Image

type Screen = rendereriface.Screen

type Game = rendereriface.Game

type SurfaceCloser = rendereriface.SurfaceCloser

type SurfaceOptions = rendereriface.SurfaceOptions

type Surface = rendereriface.Surface

type Device = rendereriface.Device

// Toolkit is the implementation of the renderer
type Toolkit = rendereriface.Toolkit

var (
	ErrTerminated  = rendereriface.ErrTerminated
	ErrSurfaceBusy = rendereriface.ErrSurfaceBusy
)
