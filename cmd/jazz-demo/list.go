package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/silbinarywolf/toy-jazz/internal/scene"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all demo scenes",
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	scenes := scene.List()

	maxIDLen := 2 // "ID" header
	for _, s := range scenes {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  %-*s  %-11s  %s\n", maxIDLen, "ID", "Kind", "Title")
	fmt.Fprintf(out, "  %-*s  %-11s  %s\n", maxIDLen, "--", "----", "-----")
	for _, s := range scenes {
		fmt.Fprintf(out, "  %-*s  %-11s  %s\n", maxIDLen, s.ID, s.Kind, s.Title)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'jazz-demo run <id>' to open a scene.")
}
