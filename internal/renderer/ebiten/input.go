package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/silbinarywolf/toy-jazz/input"
)

var ebitenKeys = map[input.Key]ebiten.Key{
	input.KeyA:      ebiten.KeyA,
	input.KeyD:      ebiten.KeyD,
	input.KeyR:      ebiten.KeyR,
	input.KeyS:      ebiten.KeyS,
	input.KeyW:      ebiten.KeyW,
	input.KeyDown:   ebiten.KeyDown,
	input.KeyEscape: ebiten.KeyEscape,
	input.KeyLeft:   ebiten.KeyLeft,
	input.KeyRight:  ebiten.KeyRight,
	input.KeySpace:  ebiten.KeySpace,
	input.KeyUp:     ebiten.KeyUp,
}

// inputState reads the device state of the running ebiten game
type inputState struct{}

var _ input.State = inputState{}

func (inputState) IsKeyPressed(key input.Key) bool {
	k, ok := ebitenKeys[key]
	if !ok {
		return false
	}
	return ebiten.IsKeyPressed(k)
}

func (inputState) IsMouseButtonPressed(mouseButton input.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(ebiten.MouseButton(mouseButton))
}

func (inputState) CursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

func (inputState) Wheel() (float64, float64) {
	return ebiten.Wheel()
}

func (inputState) TouchIDs() []input.TouchID {
	touchIDs := ebiten.TouchIDs()
	if len(touchIDs) == 0 {
		return nil
	}
	r := make([]input.TouchID, len(touchIDs))
	for i, touchID := range touchIDs {
		r[i] = input.TouchID(touchID)
	}
	return r
}

func (inputState) TouchPosition(touchID input.TouchID) (int, int) {
	return ebiten.TouchPosition(ebiten.TouchID(touchID))
}
