package input

// State is a snapshot view of the devices, as exposed by polling toolkits
// like ebiten.
type State interface {
	IsKeyPressed(key Key) bool
	IsMouseButtonPressed(button MouseButton) bool
	CursorPosition() (int, int)
	Wheel() (float64, float64)
	TouchIDs() []TouchID
	TouchPosition(id TouchID) (int, int)
}

var mouseButtons = [...]MouseButton{MouseButtonLeft, MouseButtonRight, MouseButtonMiddle}

// Poller turns device State into edge events by comparing against the
// previous Poll. It must only be used from the UI execution context.
type Poller struct {
	state State

	keys          map[Key]bool
	buttons       [len(mouseButtons)]bool
	cursorX       int
	cursorY       int
	touches       map[TouchID][2]int
	hasPolledOnce bool
}

var _ Source = new(Poller)

func NewPoller(state State) *Poller {
	return &Poller{
		state:   state,
		keys:    make(map[Key]bool),
		touches: make(map[TouchID][2]int),
	}
}

func (p *Poller) Poll(dst []Event) []Event {
	for _, key := range Keys() {
		isDown := p.state.IsKeyPressed(key)
		if isDown != p.keys[key] {
			p.keys[key] = isDown
			dst = append(dst, KeyEvent{Key: key, Pressed: isDown})
		}
	}

	x, y := p.state.CursorPosition()
	// The first poll only records the cursor, a window opening under a
	// stationary cursor is not movement.
	if p.hasPolledOnce && (x != p.cursorX || y != p.cursorY) {
		dst = append(dst, MouseMoveEvent{X: x, Y: y})
	}
	p.cursorX, p.cursorY = x, y
	for i, button := range mouseButtons {
		isDown := p.state.IsMouseButtonPressed(button)
		if isDown != p.buttons[i] {
			p.buttons[i] = isDown
			dst = append(dst, MouseButtonEvent{Button: button, X: x, Y: y, Pressed: isDown})
		}
	}
	if dx, dy := p.state.Wheel(); dx != 0 || dy != 0 {
		dst = append(dst, WheelEvent{DX: dx, DY: dy})
	}

	// (TouchIDs returns nil for desktops)
	seen := make(map[TouchID]bool)
	for _, id := range p.state.TouchIDs() {
		seen[id] = true
		if _, ok := p.touches[id]; ok {
			continue
		}
		tx, ty := p.state.TouchPosition(id)
		p.touches[id] = [2]int{tx, ty}
		dst = append(dst, TouchEvent{ID: id, X: tx, Y: ty, Pressed: true})
	}
	for id, pos := range p.touches {
		if seen[id] {
			continue
		}
		delete(p.touches, id)
		dst = append(dst, TouchEvent{ID: id, X: pos[0], Y: pos[1]})
	}

	p.hasPolledOnce = true
	return dst
}
