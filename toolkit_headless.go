//go:build headless
// +build headless

package jazz

import (
	"github.com/silbinarywolf/toy-jazz/internal/config"
	"github.com/silbinarywolf/toy-jazz/internal/renderer"
	"github.com/silbinarywolf/toy-jazz/internal/renderer/headless"
)

func defaultToolkit(cfg config.Config) renderer.Toolkit {
	return headless.New(headless.Options{
		TPS:          cfg.TPS,
		ScreenWidth:  cfg.FallbackWidth,
		ScreenHeight: cfg.FallbackHeight,
	})
}
