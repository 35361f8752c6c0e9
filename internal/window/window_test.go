package window

import (
	"context"
	"image/color"
	"math"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/silbinarywolf/toy-jazz/input"
	"github.com/silbinarywolf/toy-jazz/internal/monotime"
	"github.com/silbinarywolf/toy-jazz/internal/renderer/headless"
	"github.com/silbinarywolf/toy-jazz/internal/uictx"
	"github.com/silbinarywolf/toy-jazz/internal/world"
	"github.com/silbinarywolf/toy-jazz/picture"
)

// logWorld records the order its behaviours are called in
type logWorld struct {
	mu     sync.Mutex
	log    []string
	times  [][2]float64
	events []input.Event

	onUpdate func()
	onEvent  func(input.Event)
}

func (w *logWorld) Picture() picture.Picture {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.log = append(w.log, "produce")
	return picture.Empty{}
}

func (w *logWorld) Update(time, delta float64) {
	w.mu.Lock()
	w.log = append(w.log, "advance")
	w.times = append(w.times, [2]float64{time, delta})
	w.mu.Unlock()
	if w.onUpdate != nil {
		w.onUpdate()
	}
}

func (w *logWorld) HandleEvent(event input.Event) {
	w.mu.Lock()
	w.log = append(w.log, "event")
	w.events = append(w.events, event)
	w.mu.Unlock()
	if w.onEvent != nil {
		w.onEvent(event)
	}
}

func (w *logWorld) entries() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.log...)
}

func newManualToolkit(t *testing.T, fullscreen bool) *headless.Toolkit {
	tk := headless.New(headless.Options{Manual: true, Fullscreen: fullscreen})
	t.Cleanup(tk.Stop)
	return tk
}

func step(t *testing.T, tk *headless.Toolkit, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := tk.Step(context.Background()); err != nil {
			t.Fatalf("step %d failed: %v", i, err)
		}
	}
}

func surfaceOf(t *testing.T, w *Window) *headless.Surface {
	t.Helper()
	s, ok := w.surface.(*headless.Surface)
	if !ok {
		t.Fatalf("window surface is %T, expected a headless surface", w.surface)
	}
	return s
}

type fullscreenTestCase struct {
	Name          string
	Width, Height int
	Capable       bool
	Fullscreen    bool
}

var fullscreenTests = []fullscreenTestCase{
	{Name: "sentinel on capable device", Width: 0, Height: 0, Capable: true, Fullscreen: true},
	{Name: "sentinel without fullscreen support", Width: 0, Height: 0, Capable: false, Fullscreen: false},
	{Name: "negative width on capable device", Width: -1, Height: 480, Capable: true, Fullscreen: true},
	{Name: "sized window on capable device", Width: 640, Height: 480, Capable: true, Fullscreen: false},
	{Name: "sized window without fullscreen support", Width: 640, Height: 480, Capable: false, Fullscreen: false},
}

func TestCreateFullscreenNegotiation(t *testing.T) {
	for _, test := range fullscreenTests {
		t.Run(test.Name, func(t *testing.T) {
			tk := newManualToolkit(t, test.Capable)
			w, err := Create(context.Background(), tk, world.Static(picture.Empty{}), Options{
				Title:  "negotiate",
				Width:  test.Width,
				Height: test.Height,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			s := surfaceOf(t, w)
			if !s.Visible() {
				t.Errorf("surface should be visible")
			}
			if got := s.IsFullscreen(); got != test.Fullscreen {
				t.Errorf("surface fullscreen = %v, expected %v", got, test.Fullscreen)
			}
			if got := w.Fullscreen(); got != test.Fullscreen {
				t.Errorf("window fullscreen = %v, expected %v", got, test.Fullscreen)
			}
			if w.State() != Running || !w.Constructed() {
				t.Errorf("got state %v constructed %v, expected running and constructed", w.State(), w.Constructed())
			}
			if s.Title() != "negotiate" {
				t.Errorf("surface title = %q, expected %q", s.Title(), "negotiate")
			}
		})
	}
}

func TestFrameOrdering(t *testing.T) {
	tk := newManualToolkit(t, false)
	lw := &logWorld{}
	if _, err := Create(context.Background(), tk, lw, Options{Title: "order", Width: 320, Height: 240}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	const ticks = 5
	step(t, tk, ticks)

	expected := make([]string, 0, ticks*2)
	for i := 0; i < ticks; i++ {
		expected = append(expected, "advance", "produce")
	}
	if got := lw.entries(); !reflect.DeepEqual(got, expected) {
		t.Errorf("got %v, expected %v", got, expected)
	}
}

func TestTimeAndDelta(t *testing.T) {
	tk := newManualToolkit(t, false)
	clock := &monotime.Fake{}
	clock.Advance(time.Hour) // the clock's origin must not leak into world time
	lw := &logWorld{}
	if _, err := Create(context.Background(), tk, lw, Options{Title: "time", Width: 1, Height: 1, Clock: clock}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	step(t, tk, 1)
	clock.Advance(250 * time.Millisecond)
	step(t, tk, 1)
	clock.Advance(500 * time.Millisecond)
	step(t, tk, 1)

	expected := [][2]float64{{0, 0}, {0.25, 0.25}, {0.75, 0.5}}
	if !reflect.DeepEqual(lw.times, expected) {
		t.Errorf("got %v, expected %v", lw.times, expected)
	}
}

func TestEventsPrecedeTick(t *testing.T) {
	tk := newManualToolkit(t, false)
	lw := &logWorld{}
	w, err := Create(context.Background(), tk, lw, Options{Title: "events", Width: 1, Height: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	key := input.KeyEvent{Key: input.KeySpace, Pressed: true}
	surfaceOf(t, w).Inject(key)
	step(t, tk, 2)

	expected := []string{"event", "advance", "produce", "advance", "produce"}
	if got := lw.entries(); !reflect.DeepEqual(got, expected) {
		t.Errorf("got %v, expected %v", got, expected)
	}
	if !reflect.DeepEqual(lw.events, []input.Event{key}) {
		t.Errorf("got events %v, expected %v", lw.events, []input.Event{key})
	}
}

func TestDelegatingWorldThroughWindow(t *testing.T) {
	tk := newManualToolkit(t, false)
	type state struct{ Presses, Ticks int }
	render := func(s state) picture.Picture {
		return picture.Translate(picture.Empty{}, float32(s.Presses), float32(s.Ticks))
	}
	update := func(s state, time, delta float64) state {
		s.Ticks++
		return s
	}
	event := func(s state, ev input.Event) state {
		if _, ok := ev.(input.KeyEvent); ok {
			s.Presses++
		}
		return s
	}
	dw := world.Delegate(state{}, render, update, event)
	w, err := Create(context.Background(), tk, dw, Options{Title: "delegate", Width: 1, Height: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	surfaceOf(t, w).Inject(input.KeyEvent{Key: input.KeyA, Pressed: true}, input.KeyEvent{Key: input.KeyA})
	step(t, tk, 3)

	got := w.picture.(picture.Transformed)
	if got.DX != 2 || got.DY != 3 {
		t.Errorf("got presses %v ticks %v, expected 2 and 3", got.DX, got.DY)
	}
}

func TestCloseStopsTicks(t *testing.T) {
	tk := newManualToolkit(t, false)
	lw := &logWorld{}
	w, err := Create(context.Background(), tk, lw, Options{Title: "close", Width: 1, Height: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	step(t, tk, 2)
	w.Close()
	w.Close() // closing twice is fine
	step(t, tk, 3)

	if got := len(lw.entries()); got != 4 {
		t.Errorf("got %d world calls, expected 4 from the ticks before Close", got)
	}
	if w.State() != Closed {
		t.Errorf("got state %v, expected closed", w.State())
	}
	select {
	case <-w.Done():
	default:
		t.Errorf("Done should be closed")
	}
	if err := w.Wait(); err != nil {
		t.Errorf("normal close reported %v", err)
	}
	if !surfaceOf(t, w).Closed() {
		t.Errorf("surface should be finished after the window closed")
	}
	if w.Frames() != 2 {
		t.Errorf("got %d frames, expected 2", w.Frames())
	}
}

func TestCloseFinishesSurfaceWithoutTick(t *testing.T) {
	tk := newManualToolkit(t, false)
	w, err := Create(context.Background(), tk, &logWorld{}, Options{Title: "close surface", Width: 1, Height: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := surfaceOf(t, w)
	w.Close()

	// no Step: the surface has to be closed by Close itself
	deadline := time.Now().Add(5 * time.Second)
	for !s.Closed() {
		if time.Now().After(deadline) {
			t.Fatalf("surface still open after Close")
		}
		time.Sleep(time.Millisecond)
	}
	if err := s.Err(); err != nil {
		t.Errorf("surface closed with %v, expected a normal close", err)
	}
	if err := w.Err(); err != nil {
		t.Errorf("window reported %v after a normal close", err)
	}
}

func TestCloseFromInsideTick(t *testing.T) {
	tk := newManualToolkit(t, false)
	lw := &logWorld{}
	var w *Window
	lw.onEvent = func(input.Event) { w.Close() }
	w, err := Create(context.Background(), tk, lw, Options{Title: "self close", Width: 1, Height: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	surfaceOf(t, w).Inject(input.KeyEvent{Key: input.KeyEscape, Pressed: true})
	step(t, tk, 3)

	// the in-flight tick completes, nothing after it starts
	expected := []string{"event", "advance", "produce"}
	if got := lw.entries(); !reflect.DeepEqual(got, expected) {
		t.Errorf("got %v, expected %v", got, expected)
	}
}

func TestWorldPanicClosesWindow(t *testing.T) {
	tk := newManualToolkit(t, false)
	boom := errors.New("boom")
	lw := &logWorld{onUpdate: func() { panic(boom) }}
	w, err := Create(context.Background(), tk, lw, Options{Title: "panic", Width: 1, Height: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	step(t, tk, 2)

	if w.State() != Closed {
		t.Fatalf("got state %v, expected closed", w.State())
	}
	var worldErr *WorldError
	if !errors.As(w.Err(), &worldErr) {
		t.Fatalf("got error %v, expected a *WorldError", w.Err())
	}
	if worldErr.Phase != "update" {
		t.Errorf("got phase %q, expected update", worldErr.Phase)
	}
	if !errors.Is(worldErr, boom) {
		t.Errorf("got %v, expected it to wrap %v", worldErr, boom)
	}
	if got := lw.entries(); !reflect.DeepEqual(got, []string{"advance"}) {
		t.Errorf("got %v, expected the failed tick to stop before produce", got)
	}
}

func TestCreateMarshalFailure(t *testing.T) {
	tk := headless.New(headless.Options{Detached: true})
	w, err := Create(context.Background(), tk, world.Static(picture.Empty{}), Options{Title: "lost", Width: 10, Height: 10})
	if err == nil {
		t.Fatal("expected an error from a toolkit without a ui context")
	}
	if errors.Cause(err) != uictx.ErrNotRunning {
		t.Errorf("got cause %v, expected %v", errors.Cause(err), uictx.ErrNotRunning)
	}
	if w == nil {
		t.Fatal("the handle must be returned even when creation failed")
	}
	if w.Constructed() {
		t.Errorf("failed window should not report constructed")
	}
	if w.State() != Closed {
		t.Errorf("got state %v, expected closed", w.State())
	}
	if w.Err() != err {
		t.Errorf("handle error = %v, expected %v", w.Err(), err)
	}
	// mutating an inert handle is a no-op
	w.SetZoom(3)
	w.PanBy(1, 1)
	if zoom, x, y := w.View(); zoom != 1 || x != 0 || y != 0 {
		t.Errorf("closed window view changed to %v %v %v", zoom, x, y)
	}
}

func TestCreateNilWorld(t *testing.T) {
	tk := newManualToolkit(t, false)
	w, err := Create(context.Background(), tk, nil, Options{Title: "nil"})
	if err == nil || !strings.Contains(err.Error(), "nil world") {
		t.Errorf("got %v, expected a nil world error", err)
	}
	if w.State() != Closed {
		t.Errorf("got state %v, expected closed", w.State())
	}
}

func TestViewControls(t *testing.T) {
	tk := newManualToolkit(t, false)
	img := &headless.Image{}
	w, err := Create(context.Background(), tk, world.Static(picture.Sprite{Image: img, X: 10, Y: 10}), Options{
		Title:  "view",
		Width:  100,
		Height: 100,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w.SetZoom(1000)
	if got := w.Zoom(); got != 16 {
		t.Errorf("zoom clamped to %v, expected the configured maximum 16", got)
	}
	w.ResetView()
	w.ZoomBy(2)
	w.SetPan(5, -5)
	step(t, tk, 1)

	frame := surfaceOf(t, w).LastFrame()
	if len(frame) != 1 {
		t.Fatalf("got %d draw calls, expected 1", len(frame))
	}
	got := frame[0].Options
	if got.X != 25 || got.Y != 15 || got.ScaleX != 2 || got.ScaleY != 2 {
		t.Errorf("got draw options %+v, expected the sprite at (25, 15) scaled by 2", got)
	}
}

func TestInteractiveViewEvents(t *testing.T) {
	tk := newManualToolkit(t, false)
	lw := &logWorld{}
	w, err := Create(context.Background(), tk, lw, Options{Title: "interactive", Width: 100, Height: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := surfaceOf(t, w)

	// drag with the right button
	s.Inject(
		input.MouseButtonEvent{Button: input.MouseButtonRight, X: 10, Y: 10, Pressed: true},
		input.MouseMoveEvent{X: 30, Y: 15},
		input.MouseButtonEvent{Button: input.MouseButtonRight, X: 30, Y: 15},
		input.MouseMoveEvent{X: 50, Y: 50},
	)
	step(t, tk, 1)
	if x, y := w.Pan(); x != 20 || y != 5 {
		t.Errorf("got pan (%v, %v), expected (20, 5)", x, y)
	}

	// wheel zooms around the cursor, which is now at (50, 50)
	w.ResetView()
	s.Inject(input.WheelEvent{DY: 1})
	step(t, tk, 1)
	zoom, x, y := w.View()
	if zoom != 1.1 {
		t.Errorf("got zoom %v, expected 1.1", zoom)
	}
	factor := 1.1
	if want := 50 - 50*factor; math.Abs(x-want) > 1e-9 || math.Abs(y-want) > 1e-9 {
		t.Errorf("got pan (%v, %v), expected (%v, %v)", x, y, want, want)
	}

	// the world still saw every event
	if len(lw.events) != 5 {
		t.Errorf("world received %d events, expected 5", len(lw.events))
	}
}

func TestFillPassesThroughView(t *testing.T) {
	tk := newManualToolkit(t, false)
	w, err := Create(context.Background(), tk, world.Static(picture.Fill{Color: color.White}), Options{Title: "fill", Width: 1, Height: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w.SetZoom(4)
	step(t, tk, 1)
	frame := surfaceOf(t, w).LastFrame()
	if len(frame) != 1 || frame[0].Fill != color.White {
		t.Errorf("got %+v, expected a single white fill", frame)
	}
}
