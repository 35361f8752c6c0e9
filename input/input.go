package input

import "sync"

// Key represents a keyboard key.
//
// Keys are our own enumeration and are mapped onto ebiten keys by the ebiten
// renderer, so that ebiten isn't included as a package for headless builds.
type Key int32

// Only defining keys used by the built-in view controls and the demo scenes.
const (
	KeyUnknown Key = iota
	KeyA
	KeyD
	KeyR
	KeyS
	KeyW
	KeyDown
	KeyEscape
	KeyLeft
	KeyRight
	KeySpace
	KeyUp

	keyCount
)

// Keys returns every defined key.
func Keys() []Key {
	keys := make([]Key, 0, keyCount-1)
	for k := KeyA; k < keyCount; k++ {
		keys = append(keys, k)
	}
	return keys
}

// MouseButton represents a mouse button (left, right or middle)
type MouseButton int32

// Define all mouse buttons as there are only 3.
const (
	MouseButtonLeft   = MouseButton(0)
	MouseButtonRight  = MouseButton(1)
	MouseButtonMiddle = MouseButton(2)
)

type TouchID int

// Event is a single input occurrence delivered to a world on the UI
// execution context.
type Event interface {
	isEvent()
}

// KeyEvent is sent when a key goes down (Pressed) or up.
type KeyEvent struct {
	Key     Key
	Pressed bool
}

// MouseButtonEvent is sent when a mouse button goes down (Pressed) or up.
// X and Y are the cursor position at that moment.
type MouseButtonEvent struct {
	Button  MouseButton
	X, Y    int
	Pressed bool
}

// MouseMoveEvent is sent when the cursor position changes.
type MouseMoveEvent struct {
	X, Y int
}

// WheelEvent is sent when the mouse wheel or trackpad scrolls.
type WheelEvent struct {
	DX, DY float64
}

// TouchEvent is sent when a touch starts (Pressed) or ends.
type TouchEvent struct {
	ID      TouchID
	X, Y    int
	Pressed bool
}

func (KeyEvent) isEvent()         {}
func (MouseButtonEvent) isEvent() {}
func (MouseMoveEvent) isEvent()   {}
func (WheelEvent) isEvent()       {}
func (TouchEvent) isEvent()       {}

// Source produces the events that happened since the previous call.
// Poll appends to dst and returns the extended slice.
type Source interface {
	Poll(dst []Event) []Event
}

// Queue is a Source fed by Push. It is safe for concurrent use.
type Queue struct {
	mu      sync.Mutex
	pending []Event
}

// Push adds events to be returned by the next Poll.
func (q *Queue) Push(events ...Event) {
	q.mu.Lock()
	q.pending = append(q.pending, events...)
	q.mu.Unlock()
}

func (q *Queue) Poll(dst []Event) []Event {
	q.mu.Lock()
	dst = append(dst, q.pending...)
	q.pending = q.pending[:0]
	q.mu.Unlock()
	return dst
}
