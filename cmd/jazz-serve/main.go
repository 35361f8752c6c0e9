// jazz-serve builds a jazz program to WebAssembly and serves it to the web
// browser. The program is rebuilt every time the page is reloaded.
//
// Usage:
//
//	jazz-serve [package] [--addr :8080] [--tags debug]
package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/silbinarywolf/toy-jazz/cmd/jazz-serve/internal/devwebserver"
)

var (
	flagAddr    string
	flagTags    string
	flagDir     string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("jazz-serve failed", "err", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "jazz-serve [package]",
	Short: "Serve a jazz program to the web browser",
	Long: `jazz-serve builds the given main package with GOOS=js GOARCH=wasm and
serves it with an index page and the toolchain's wasm_exec.js. The package
defaults to the current directory.

Examples:
  jazz-serve ./cmd/jazz-demo
  jazz-serve ./cmd/jazz-demo --addr :9000 --tags headless`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.Flags().StringVar(&flagAddr, "addr", ":8080", "Address to listen on")
	rootCmd.Flags().StringVar(&flagTags, "tags", "", "A list of build tags to consider satisfied during the build")
	rootCmd.Flags().StringVar(&flagDir, "dir", ".", "Directory the package is resolved from")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "jazz-serve",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	pkg := "."
	if len(args) > 0 {
		pkg = args[0]
	}
	server, err := devwebserver.New(devwebserver.Options{
		Addr:    flagAddr,
		Dir:     flagDir,
		Package: pkg,
		Tags:    flagTags,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	defer server.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return server.ListenAndServe(ctx)
}
