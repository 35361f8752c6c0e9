// world is the model a window runs.
//
// A World produces a picture for each frame and is advanced by the time that
// passed. Worlds that also implement EventHandler receive input events; for
// the rest events are ignored.
package world

import (
	"github.com/silbinarywolf/toy-jazz/input"
	"github.com/silbinarywolf/toy-jazz/picture"
)

// World is what a window ticks: Update then Picture, once per frame.
type World interface {
	// Picture returns the picture for the current state. It must not
	// change the state.
	Picture() picture.Picture
	// Update advances the state. time is the seconds since the first
	// frame, delta the seconds since the previous Update.
	Update(time, delta float64)
}

// EventHandler is implemented by worlds that react to input.
type EventHandler interface {
	HandleEvent(event input.Event)
}

// HandleEvent passes event to w if it handles events.
func HandleEvent(w World, event input.Event) {
	if handler, ok := w.(EventHandler); ok {
		handler.HandleEvent(event)
	}
}

// Static returns a world that always shows p.
func Static(p picture.Picture) World {
	return staticWorld{picture: p}
}

type staticWorld struct {
	picture picture.Picture
}

func (w staticWorld) Picture() picture.Picture {
	return w.picture
}

func (staticWorld) Update(time, delta float64) {
	// do nothing, the picture is static.
}

// Animation is a world built from two functions. A nil OnUpdate leaves the
// animation unchanged between frames.
type Animation struct {
	Render   func() picture.Picture
	OnUpdate func(time, delta float64)
}

// Animate returns an animation world from its two behaviours.
func Animate(render func() picture.Picture, update func(time, delta float64)) *Animation {
	return &Animation{Render: render, OnUpdate: update}
}

func (a *Animation) Picture() picture.Picture {
	if a.Render == nil {
		return picture.Empty{}
	}
	return a.Render()
}

func (a *Animation) Update(time, delta float64) {
	if a.OnUpdate != nil {
		a.OnUpdate(time, delta)
	}
}

// Renderer draws a state.
type Renderer[S any] func(state S) picture.Picture

// Updater returns the state after time passed. It may change state in place
// and return it, or return a new value.
type Updater[S any] func(state S, time, delta float64) S

// Reactor returns the state after an input event, like Updater.
type Reactor[S any] func(state S, event input.Event) S

// Delegating is a world that owns a state value and threads it through three
// separately supplied behaviours. The state is never handed out other than
// to those behaviours, which are never run concurrently.
type Delegating[S any] struct {
	state  S
	render Renderer[S]
	update Updater[S]
	event  Reactor[S]
}

var _ EventHandler = new(Delegating[int])

// Delegate builds a Delegating world around state. update and event may be
// nil, in which case time and events leave the state alone. A nil render
// draws nothing.
func Delegate[S any](state S, render Renderer[S], update Updater[S], event Reactor[S]) *Delegating[S] {
	return &Delegating[S]{
		state:  state,
		render: render,
		update: update,
		event:  event,
	}
}

func (w *Delegating[S]) Picture() picture.Picture {
	if w.render == nil {
		return picture.Empty{}
	}
	return w.render(w.state)
}

func (w *Delegating[S]) Update(time, delta float64) {
	if w.update == nil {
		return
	}
	w.state = w.update(w.state, time, delta)
}

func (w *Delegating[S]) HandleEvent(event input.Event) {
	if w.event == nil {
		return
	}
	w.state = w.event(w.state, event)
}
