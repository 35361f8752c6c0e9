//go:build !headless
// +build !headless

package jazz

import (
	"github.com/silbinarywolf/toy-jazz/internal/config"
	"github.com/silbinarywolf/toy-jazz/internal/renderer"
	"github.com/silbinarywolf/toy-jazz/internal/renderer/ebiten"
)

// the tps is applied per surface with ebiten.SetMaxTPS
func defaultToolkit(config.Config) renderer.Toolkit {
	return ebiten.New()
}
