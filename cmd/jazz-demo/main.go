// jazz-demo opens the demo scenes.
//
// Usage:
//
//	jazz-demo list             - List available scenes
//	jazz-demo run <scene>      - Open a scene in a window
//
// Global flags:
//
//	--config <path>  - Load configuration from path
//	--seed <value>   - Seed the random generator (0 keeps the configured seed)
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	flagConfig string
	flagSeed   int64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("jazz-demo failed", "err", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "jazz-demo",
	Short: "Demo scenes for the jazz graphics library",
	Long: `jazz-demo opens the scenes that ship with jazz.

Examples:
  jazz-demo list
  jazz-demo run checker
  jazz-demo run balls --seed 42
  jazz-demo run orbit --fullscreen`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a jazz config YAML (default: $JAZZ_CONFIG, ~/.jazz/config.yaml, ./jazz.yaml)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = use the configured seed)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
}
