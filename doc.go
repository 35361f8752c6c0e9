// Package jazz opens windows that show pictures, animations and interactive
// worlds.
//
// A world is anything with a Picture and an Update method. Worlds can also be
// built from plain functions over a state value with PlayState, so a program
// does not need to declare a type for every use case:
//
//	func main() {
//		jazz.Main(func() {
//			jazz.PlayState("Counter", 640, 480, 0,
//				func(n int) jazz.Picture {
//					return picture.Fill{Color: color.Gray{Y: uint8(n)}}
//				},
//				func(n int, time, delta float64) int { return n + 1 },
//				func(n int, event jazz.Event) int {
//					if key, ok := event.(input.KeyEvent); ok && key.Pressed {
//						return 0
//					}
//					return n
//				},
//			)
//		})
//	}
//
// Pictures are built from the values in package picture, events are the
// types in package input.
//
// Windows are created synchronously on the toolkit's UI context, which ebiten
// requires to be the main goroutine: hand it over with Main. A width or
// height <= 0 asks for fullscreen, which falls back to a normal window if the
// display can't do it.
//
// World behaviours run on the UI context, so they must not open windows: the
// creation would wait for the very tick that is asking for it, and it gives
// up after the configured create_timeout with a handle that is not
// constructed.
//
// jazz has one random generator for the whole process, seeded with a fixed
// value so runs are reproducible. Use SeedNow to randomise a run.
package jazz
