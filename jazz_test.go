package jazz_test

import (
	"context"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/pkg/errors"
	jazz "github.com/silbinarywolf/toy-jazz"
	"github.com/silbinarywolf/toy-jazz/internal/renderer/headless"
	"github.com/silbinarywolf/toy-jazz/internal/uictx"
	"github.com/silbinarywolf/toy-jazz/internal/window"
	"github.com/silbinarywolf/toy-jazz/picture"
)

func manualToolkit(t *testing.T, options headless.Options) *headless.Toolkit {
	t.Helper()
	options.Manual = true
	tk := headless.New(options)
	t.Cleanup(tk.Stop)
	jazz.SetToolkit(tk)
	return tk
}

func step(t *testing.T, tk *headless.Toolkit, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := tk.Step(context.Background()); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
}

func TestPlayStateTicksWorld(t *testing.T) {
	tk := manualToolkit(t, headless.Options{})

	var rendered []int
	win := jazz.PlayState("counter", 320, 240, 0,
		func(n int) jazz.Picture {
			rendered = append(rendered, n)
			return picture.Empty{}
		},
		func(n int, time, delta float64) int {
			return n + 1
		},
		nil,
	)
	if !win.Constructed() {
		t.Fatalf("window not constructed: %v", win.Err())
	}
	if win.Fullscreen() {
		t.Fatalf("sized window should not be fullscreen")
	}
	step(t, tk, 3)
	if got := win.Frames(); got != 3 {
		t.Fatalf("expected 3 frames, got %d", got)
	}
	expected := []int{1, 2, 3}
	if len(rendered) != len(expected) {
		t.Fatalf("expected pictures of %v, got %v", expected, rendered)
	}
	for i := range expected {
		if rendered[i] != expected[i] {
			t.Fatalf("expected pictures of %v, got %v", expected, rendered)
		}
	}

	win.Close()
	step(t, tk, 2)
	if got := win.Frames(); got != 3 {
		t.Fatalf("closed window kept ticking, %d frames", got)
	}
	if err := win.Wait(); err != nil {
		t.Fatalf("unexpected error after close: %v", err)
	}
}

func TestDisplayFullscreenNegotiation(t *testing.T) {
	testCases := []struct {
		name       string
		capable    bool
		fullscreen bool
	}{
		{name: "capable device", capable: true, fullscreen: true},
		{name: "no exclusive fullscreen", capable: false, fullscreen: false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			tk := manualToolkit(t, headless.Options{Fullscreen: testCase.capable})
			win := jazz.DisplayFullscreen("fill", picture.Fill{Color: color.Black})
			defer win.Close()
			if !win.Constructed() {
				t.Fatalf("window not constructed: %v", win.Err())
			}
			if got := win.Fullscreen(); got != testCase.fullscreen {
				t.Fatalf("expected fullscreen %v, got %v", testCase.fullscreen, got)
			}
			step(t, tk, 1)
			if got := win.Frames(); got != 1 {
				t.Fatalf("expected 1 frame, got %d", got)
			}
		})
	}
}

func TestAnimateAdvances(t *testing.T) {
	tk := manualToolkit(t, headless.Options{})
	anim := &clickCounter{}
	win := jazz.Animate("anim", 100, 100, anim)
	defer win.Close()
	if !win.Constructed() {
		t.Fatalf("window not constructed: %v", win.Err())
	}
	step(t, tk, 2)
	if anim.updates != 2 {
		t.Fatalf("expected 2 updates, got %d", anim.updates)
	}
	if anim.events != 0 {
		t.Fatalf("animation received %d events", anim.events)
	}
}

func TestCreateWithoutUIContextReturnsInertHandle(t *testing.T) {
	tk := headless.New(headless.Options{Detached: true})
	defer tk.Stop()
	jazz.SetToolkit(tk)

	win := jazz.Play("detached", 100, 100, &clickCounter{})
	if win == nil {
		t.Fatalf("expected a handle")
	}
	if win.Constructed() {
		t.Fatalf("window should not be constructed")
	}
	if win.State() != window.Closed {
		t.Fatalf("expected closed state, got %v", win.State())
	}
	if !errors.Is(win.Err(), uictx.ErrNotRunning) {
		t.Fatalf("expected ErrNotRunning cause, got %v", win.Err())
	}
	// controls on an inert handle are no-ops
	win.SetZoom(2)
	win.Close()
	if got := win.Zoom(); got != 1 {
		t.Fatalf("expected zoom to stay 1, got %v", got)
	}
}

func TestNewImageUsesToolkit(t *testing.T) {
	manualToolkit(t, headless.Options{})
	img := jazz.NewImage(image.NewRGBA(image.Rect(0, 0, 4, 2)))
	headlessImage, ok := img.(*headless.Image)
	if !ok {
		t.Fatalf("expected headless image, got %T", img)
	}
	if got := headlessImage.Bounds.Dx(); got != 4 {
		t.Fatalf("expected width 4, got %d", got)
	}
}

func TestConfigureRejectsInvalid(t *testing.T) {
	cfg := jazz.DefaultConfig()
	cfg.TPS = 0
	if err := jazz.Configure(cfg); err == nil {
		t.Fatalf("expected error for tps 0")
	}
	cfg = jazz.DefaultConfig()
	cfg.Seed = 99
	if err := jazz.Configure(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := jazz.RandomInt()
	jazz.Seed(99)
	if got := jazz.RandomInt(); got != first {
		t.Fatalf("configured seed not applied, %d != %d", got, first)
	}
}

func TestRandomHelpers(t *testing.T) {
	jazz.Seed(jazz.DefaultSeed)
	first := []int{jazz.RandomIntn(10), jazz.RandomIntn(10), jazz.RandomIntn(10)}
	jazz.Seed(jazz.DefaultSeed)
	for i := range first {
		if got := jazz.RandomIntn(10); got != first[i] {
			t.Fatalf("draw %d: expected %d after reseed, got %d", i, first[i], got)
		}
	}
	if got := jazz.RandomIntn(0); got != 0 {
		t.Fatalf("expected 0 for empty range, got %d", got)
	}
	if got := jazz.RandomIntRange(5, 5); got != 5 {
		t.Fatalf("expected 5 for empty range, got %d", got)
	}
	for i := 0; i < 100; i++ {
		if got := jazz.RandomIntRange(-3, 3); got < -3 || got >= 3 {
			t.Fatalf("value %d outside [-3, 3)", got)
		}
	}
	list := []string{"a", "b", "c", "d"}
	jazz.ShuffleSlice(list)
	seen := map[string]bool{}
	for _, s := range list {
		seen[s] = true
	}
	if len(seen) != 4 {
		t.Fatalf("shuffle lost elements: %v", list)
	}
}

type clickCounter struct {
	updates int
	events  int
}

func (c *clickCounter) Picture() jazz.Picture {
	return picture.Empty{}
}

func (c *clickCounter) Update(time, delta float64) {
	c.updates++
}

func (c *clickCounter) HandleEvent(event jazz.Event) {
	c.events++
}

func TestOpenFromWorldBehaviourReturnsInertHandle(t *testing.T) {
	cfg := jazz.DefaultConfig()
	cfg.CreateTimeout = 50 * time.Millisecond
	if err := jazz.Configure(cfg); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = jazz.Configure(jazz.DefaultConfig())
	})
	tk := manualToolkit(t, headless.Options{})

	var inner *jazz.Window
	outer := jazz.PlayState("outer", 100, 100, 0,
		func(n int) jazz.Picture { return picture.Empty{} },
		func(n int, time, delta float64) int {
			if inner == nil {
				inner = jazz.Display("inner", 10, 10, picture.Empty{})
			}
			return n + 1
		},
		nil,
	)
	defer outer.Close()

	start := time.Now()
	step(t, tk, 1)
	if took := time.Since(start); took > 5*time.Second {
		t.Fatalf("tick blocked for %v", took)
	}
	if inner == nil || inner.Constructed() {
		t.Fatalf("expected an inert inner handle")
	}
	if !errors.Is(inner.Err(), context.DeadlineExceeded) {
		t.Fatalf("expected a deadline error, got %v", inner.Err())
	}
	step(t, tk, 1)
	if got := outer.Frames(); got != 2 {
		t.Fatalf("outer window stopped ticking, %d frames", got)
	}
}
