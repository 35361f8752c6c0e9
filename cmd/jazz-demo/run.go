package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	jazz "github.com/silbinarywolf/toy-jazz"
	"github.com/silbinarywolf/toy-jazz/internal/logging"
	"github.com/silbinarywolf/toy-jazz/internal/scene"
)

var (
	flagWidth      int
	flagHeight     int
	flagFullscreen bool
)

var runCmd = &cobra.Command{
	Use:   "run <scene>",
	Short: "Open a scene",
	Long: `Open the named scene in a window and wait until it is closed.

Controls:
  Mouse wheel        - Zoom (when view.interactive is set)
  Right mouse drag   - Pan
  Left click / tap   - Add a ball (balls)
  R                  - Shuffle colors (balls)
  Space              - Clear (balls)`,
	Args: cobra.ExactArgs(1),
	RunE: runScene,
}

func init() {
	runCmd.Flags().IntVar(&flagWidth, "width", 800, "Window width")
	runCmd.Flags().IntVar(&flagHeight, "height", 600, "Window height")
	runCmd.Flags().BoolVar(&flagFullscreen, "fullscreen", false, "Open fullscreen if the display supports it")
}

func runScene(cmd *cobra.Command, args []string) error {
	s, err := scene.Get(args[0])
	if err != nil {
		return errors.Wrap(err, "run 'jazz-demo list' to see available scenes")
	}

	cfg, err := jazz.LoadConfig(flagConfig)
	if err != nil {
		return err
	}
	if flagSeed != 0 {
		cfg.Seed = flagSeed
		cfg.RandomSeed = false
	}
	if err := jazz.Configure(cfg); err != nil {
		return err
	}
	logger, err := logging.New(os.Stderr, cfg.Log)
	if err != nil {
		return err
	}

	width, height := flagWidth, flagHeight
	env := scene.Env{NewImage: jazz.NewImage, Width: width, Height: height}
	if flagFullscreen {
		width, height = 0, 0
		env.Width, env.Height = cfg.FallbackWidth, cfg.FallbackHeight
	}
	logger.Info("opening scene", "scene", s.ID, "kind", s.Kind, "seed", cfg.Seed)

	var win *jazz.Window
	err = jazz.Main(func() {
		w := s.Build(env)
		switch s.Kind {
		case scene.Static:
			win = jazz.Display(s.Title, width, height, w.Picture())
		case scene.Animated:
			win = jazz.Animate(s.Title, width, height, w)
		default:
			win = jazz.Play(s.Title, width, height, w)
		}
	})
	if err != nil {
		return err
	}
	if win != nil {
		if err := win.Err(); err != nil {
			return err
		}
		logger.Info("scene closed", "frames", win.Frames())
	}
	return nil
}
