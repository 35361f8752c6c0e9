package window

import (
	"context"

	"github.com/pkg/errors"
	"github.com/silbinarywolf/toy-jazz/internal/renderer"
	"github.com/silbinarywolf/toy-jazz/internal/world"
)

// Create constructs the surface for w on the toolkit's UI context and waits
// until it exists.
//
// The surface goes fullscreen only when the size is the fullscreen sentinel
// and the default device supports exclusive fullscreen, otherwise it is shown
// as a normal window.
//
// The returned window is never nil. If construction failed it is closed,
// Constructed reports false and the error is also available from Err.
func Create(ctx context.Context, tk renderer.Toolkit, w world.World, options Options) (*Window, error) {
	win := newWindow(w, options)
	options = win.options
	if w == nil {
		err := errors.Errorf("create window %q: nil world", options.Title)
		win.fail(err)
		return win, err
	}

	ctx, cancel := context.WithTimeout(ctx, options.Config.CreateTimeout)
	defer cancel()

	var createErr error
	err := tk.Do(ctx, func() {
		surface, err := tk.CreateSurface(renderer.SurfaceOptions{
			Title:               options.Title,
			Width:               options.Width,
			Height:              options.Height,
			FallbackWidth:       options.Config.FallbackWidth,
			FallbackHeight:      options.Config.FallbackHeight,
			TPS:                 options.Config.TPS,
			RunnableOnUnfocused: options.Config.RunnableOnUnfocused,
			Resizable:           options.Config.Resizable,
		}, win)
		if err != nil {
			createErr = err
			return
		}
		device := tk.DefaultDevice()
		fullscreen := options.WantsFullscreen() && device.SupportsExclusiveFullscreen()
		win.attach(surface, fullscreen, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), options.Config.CreateTimeout)
			defer cancel()
			if err := tk.Do(closeCtx, surface.Close); err != nil {
				// the toolkit already stopped, so did the surface
				win.logger.Debug("surface not closed", "err", err)
			}
		})
		if fullscreen {
			surface.SetFullscreen(device)
		} else {
			surface.Show()
		}
	})
	if err == nil {
		err = createErr
	}
	if err != nil {
		err = errors.Wrapf(err, "create window %q", options.Title)
		win.logger.Warn("window not constructed", "err", err)
		win.fail(err)
		return win, err
	}

	win.logger.Info("window created",
		"width", options.Width,
		"height", options.Height,
		"fullscreen", win.Fullscreen(),
	)
	return win, nil
}
