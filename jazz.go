package jazz

import (
	"context"
	"image"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/silbinarywolf/toy-jazz/input"
	"github.com/silbinarywolf/toy-jazz/internal/config"
	"github.com/silbinarywolf/toy-jazz/internal/logging"
	"github.com/silbinarywolf/toy-jazz/internal/renderer"
	"github.com/silbinarywolf/toy-jazz/internal/rng"
	"github.com/silbinarywolf/toy-jazz/internal/window"
	"github.com/silbinarywolf/toy-jazz/internal/world"
	"github.com/silbinarywolf/toy-jazz/picture"
)

type (
	// World is the model a window runs.
	World = world.World
	// EventHandler is implemented by worlds that react to input.
	EventHandler = world.EventHandler
	// Picture is an immutable drawable value.
	Picture = picture.Picture
	// Event is an input event.
	Event = input.Event
	// Window is the handle of an open (or failed) window.
	Window = window.Window
	// Config is the jazz configuration.
	Config = config.Config
	// Toolkit is the UI toolkit windows are created with.
	Toolkit = renderer.Toolkit
	// Image is a toolkit image, used by picture.Sprite.
	Image = picture.Image
	// Screen is what pictures draw on.
	Screen = picture.Screen
	// ImageOptions position and scale an image on a Screen.
	ImageOptions = picture.ImageOptions
)

type runtimeState struct {
	setupOnce sync.Once

	mu      sync.Mutex
	config  config.Config
	logger  *log.Logger
	toolkit renderer.Toolkit
}

var global runtimeState

// setup loads the configuration named by JAZZ_CONFIG the first time jazz is
// used.
func setup() *runtimeState {
	global.setupOnce.Do(func() {
		global.mu.Lock()
		defer global.mu.Unlock()
		if global.logger == nil {
			global.logger = logging.Default()
		}
		if global.config.TPS != 0 {
			// Configure was called first
			return
		}
		cfg, err := config.Load(os.Getenv(config.EnvPath))
		if err != nil {
			global.logger.Warn("using default configuration", "err", err)
			cfg = config.Default()
		}
		global.apply(cfg)
	})
	return &global
}

// apply must be called with mu held
func (s *runtimeState) apply(cfg config.Config) {
	s.config = cfg
	if logger, err := logging.New(os.Stderr, cfg.Log); err == nil {
		s.logger = logger
	} else {
		s.logger.Warn("keeping default logger", "err", err)
	}
	switch {
	case cfg.RandomSeed:
		seed := rng.SeedNow()
		s.logger.Debug("seeded random generator from clock", "seed", seed)
	case cfg.Seed != 0:
		rng.Seed(cfg.Seed)
		s.logger.Debug("seeded random generator", "seed", cfg.Seed)
	}
}

func (s *runtimeState) snapshot() (config.Config, *log.Logger, renderer.Toolkit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.toolkit == nil {
		s.toolkit = defaultToolkit(s.config)
	}
	return s.config, s.logger, s.toolkit
}

// Configure replaces the configuration, including its seed policy. Windows
// already open keep the settings they were created with.
func Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	global.mu.Lock()
	if global.logger == nil {
		global.logger = logging.Default()
	}
	global.apply(cfg)
	global.mu.Unlock()
	setup()
	return nil
}

// LoadConfig loads a configuration file the way jazz does at startup, see
// config.Load for the search order.
func LoadConfig(path string) (Config, error) {
	return config.Load(path)
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return config.Default()
}

// SetToolkit replaces the UI toolkit, it must be called before any window
// is created.
func SetToolkit(tk Toolkit) {
	global.mu.Lock()
	global.toolkit = tk
	global.mu.Unlock()
}

// Main hands the calling goroutine, which should be the main goroutine, to
// the UI toolkit and runs run concurrently. It returns once run has returned
// and every window is closed.
func Main(run func()) error {
	_, _, tk := setup().snapshot()
	return tk.Main(run)
}

// NewImage turns img into an image the toolkit can draw.
func NewImage(img image.Image) Image {
	_, _, tk := setup().snapshot()
	return tk.NewImageFromImage(img)
}

// create runs the window creation protocol. Failures are logged and leave the
// returned handle closed, see Window.Constructed and Window.Err.
func create(title string, width, height int, w World) *Window {
	cfg, logger, tk := setup().snapshot()
	win, err := window.Create(context.Background(), tk, w, window.Options{
		Title:  title,
		Width:  width,
		Height: height,
		Config: cfg,
		Logger: logger,
	})
	if err != nil {
		logger.Warn("window creation failed, returning inert handle", "title", title, "err", err)
	}
	return win
}

// Display shows a static picture. It still supports zooming and panning.
func Display(title string, width, height int, p Picture) *Window {
	return create(title, width, height, world.Static(p))
}

// DisplayFullscreen shows a static picture fullscreen.
func DisplayFullscreen(title string, p Picture) *Window {
	return Display(title, 0, 0, p)
}

// Animate runs an animation. Events are not delivered to it, even if it
// implements EventHandler; use Play for that.
func Animate(title string, width, height int, animation World) *Window {
	return create(title, width, height, world.Animate(animation.Picture, animation.Update))
}

// AnimateFunc runs an animation built from its two behaviours.
func AnimateFunc(title string, width, height int, render func() Picture, update func(time, delta float64)) *Window {
	return create(title, width, height, world.Animate(render, update))
}

// AnimateState runs an animation over a state value. update returns the
// state for the next frame, it may be nil.
func AnimateState[M any](title string, width, height int, state M, render func(state M) Picture, update func(state M, time, delta float64) M) *Window {
	return create(title, width, height, world.Delegate[M](state, render, update, nil))
}

// AnimateFullscreen runs an animation fullscreen.
func AnimateFullscreen(title string, animation World) *Window {
	return Animate(title, 0, 0, animation)
}

// Play runs an interactive world. Worlds implementing EventHandler receive
// input events. Like every function that opens a window it must not be
// called from a world behaviour.
func Play(title string, width, height int, w World) *Window {
	return create(title, width, height, w)
}

// PlayState runs a world composed from three behaviours over a state value.
// update and event may be nil.
func PlayState[M any](title string, width, height int, state M, render func(state M) Picture, update func(state M, time, delta float64) M, event func(state M, event Event) M) *Window {
	return create(title, width, height, world.Delegate[M](state, render, update, event))
}

// PlayStateFullscreen is PlayState with a fullscreen window.
func PlayStateFullscreen[M any](title string, state M, render func(state M) Picture, update func(state M, time, delta float64) M, event func(state M, event Event) M) *Window {
	return PlayState(title, 0, 0, state, render, update, event)
}

// PlayFullscreen runs an interactive world fullscreen.
func PlayFullscreen(title string, w World) *Window {
	return Play(title, 0, 0, w)
}
