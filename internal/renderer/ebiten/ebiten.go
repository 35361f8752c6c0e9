package ebiten

import (
	"context"
	"image"
	"image/color"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
	"github.com/silbinarywolf/toy-jazz/input"
	"github.com/silbinarywolf/toy-jazz/internal/renderer/internal/rendereriface"
	"github.com/silbinarywolf/toy-jazz/internal/uictx"
)

var _ rendereriface.Toolkit = new(Toolkit)

// Toolkit drives a single ebiten game. Ebiten owns the main OS thread while
// a game runs, so the UI context is the goroutine that called Main: it runs
// queued tasks until a surface is shown, and from then on drains them at the
// start of every game update.
type Toolkit struct {
	queue *uictx.Queue

	// fields below are only touched on the UI context
	used    bool
	active  *Surface
	pending *Surface
}

func New() *Toolkit {
	return &Toolkit{
		queue: uictx.New(),
	}
}

func (tk *Toolkit) Do(ctx context.Context, task func()) error {
	return tk.queue.Call(ctx, task)
}

// Main must be called from the main goroutine, see ebiten.RunGame.
func (tk *Toolkit) Main(run func()) error {
	if !tk.queue.Attach() {
		return errors.New("ebiten toolkit is already running")
	}
	defer tk.queue.Detach()

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		run()
	}()

	for {
		select {
		case req := <-tk.queue.Next():
			tk.queue.Run(req)
		case <-finished:
			finished = nil
		}
		if s := tk.pending; s != nil {
			tk.pending = nil
			tk.runSurface(s)
		}
		if finished == nil && tk.active == nil {
			return nil
		}
	}
}

func (tk *Toolkit) CreateSurface(options rendereriface.SurfaceOptions, game rendereriface.Game) (rendereriface.Surface, error) {
	if tk.used {
		// note: ebiten can't restart its game loop once RunGame returned
		return nil, rendereriface.ErrSurfaceBusy
	}
	tk.used = true
	s := &Surface{
		toolkit: tk,
		options: options,
		game:    game,
		events:  input.NewPoller(inputState{}),
	}
	tk.active = s
	return s, nil
}

func (tk *Toolkit) DefaultDevice() rendereriface.Device {
	return device{}
}

func (tk *Toolkit) NewImageFromImage(img image.Image) rendereriface.Image {
	return ebiten.NewImageFromImage(img)
}

// runSurface blocks in ebiten.RunGame until the game ends
func (tk *Toolkit) runSurface(s *Surface) {
	options := s.options
	ebiten.SetWindowTitle(options.Title)
	if s.fullscreen {
		ebiten.SetFullscreen(true)
	} else {
		width, height := options.Width, options.Height
		if width <= 0 || height <= 0 {
			width, height = options.FallbackWidth, options.FallbackHeight
		}
		ebiten.SetWindowSize(width, height)
	}
	if options.TPS > 0 {
		ebiten.SetMaxTPS(options.TPS)
	}
	ebiten.SetRunnableOnUnfocused(options.RunnableOnUnfocused)
	ebiten.SetWindowResizable(options.Resizable)

	gameWrapper := ebitenGameAndScreen{}
	gameWrapper.Game = s.game
	gameWrapper.surface = s
	err := ebiten.RunGame(&gameWrapper)
	if err == rendereriface.ErrTerminated {
		err = nil
	}
	s.finish(err)
}

type device struct{}

func (device) SupportsExclusiveFullscreen() bool {
	switch runtime.GOOS {
	case "android", "ios":
		return false
	}
	return true
}

type Surface struct {
	toolkit *Toolkit
	options rendereriface.SurfaceOptions
	game    rendereriface.Game
	events  *input.Poller

	fullscreen     bool
	closeRequested bool
	finished       bool
}

var _ rendereriface.Surface = new(Surface)

func (s *Surface) SetFullscreen(device rendereriface.Device) {
	s.fullscreen = true
	s.Show()
}

func (s *Surface) Show() {
	if s.finished || s.toolkit.pending == s {
		return
	}
	s.toolkit.pending = s
}

func (s *Surface) Close() {
	if s.toolkit.pending == s {
		// never started
		s.toolkit.pending = nil
		s.finish(nil)
		return
	}
	s.closeRequested = true
}

func (s *Surface) IsFullscreen() bool {
	return s.fullscreen
}

func (s *Surface) Events() input.Source {
	return s.events
}

func (s *Surface) finish(err error) {
	if s.finished {
		return
	}
	s.finished = true
	if s.toolkit.active == s {
		s.toolkit.active = nil
	}
	if closer, ok := s.game.(rendereriface.SurfaceCloser); ok {
		closer.SurfaceClosed(err)
	}
}

type ebitenGameAndScreen struct {
	rendereriface.Game
	surface      *Surface
	screenDriver Screen
}

func (game *ebitenGameAndScreen) Update() error {
	// Tasks posted while ebiten owns the thread run here
	game.surface.toolkit.queue.Drain()
	if game.surface.closeRequested {
		return rendereriface.ErrTerminated
	}
	return game.Game.Update()
}

func (game *ebitenGameAndScreen) Draw(screen *ebiten.Image) {
	game.screenDriver.screen = screen
	game.Game.Draw(&game.screenDriver)
}

type Screen struct {
	screen *ebiten.Image
}

var _ rendereriface.Screen = new(Screen)

func (driver *Screen) DrawImage(img rendereriface.Image, options rendereriface.ImageOptions) {
	op := &ebiten.DrawImageOptions{}
	if options.ScaleX != 0 && options.ScaleY != 0 {
		op.GeoM.Scale(float64(options.ScaleX), float64(options.ScaleY))
	}
	op.GeoM.Translate(float64(options.X), float64(options.Y))
	driver.screen.DrawImage(img.(*ebiten.Image), op)
}

func (driver *Screen) Fill(clr color.Color) {
	driver.screen.Fill(clr)
}

func (driver *Screen) Size() (int, int) {
	return driver.screen.Size()
}
