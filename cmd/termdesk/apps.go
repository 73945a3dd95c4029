package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/1broseidon/termdesk/internal/apps"
	"github.com/1broseidon/termdesk/internal/config"
)

func newAppsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apps",
		Short: "List the applications the desktop can host",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printApps(cmd.OutOrStdout(), config.DefaultConfig())
		},
	}
}

func printApps(w io.Writer, cfg *config.Config) {
	header := color.New(color.FgCyan, color.Bold)
	id := color.New(color.FgGreen)
	muted := color.New(color.Faint)

	header.Fprintf(w, "%-2s %-12s %-16s %-8s %s\n", "", "ID", "TITLE", "SIZE", "PINNED")
	for _, k := range apps.All() {
		a := apps.Lookup(k)
		size := cfg.DefaultSize(k)
		pinned := ""
		if slices.Contains(cfg.PinnedApps, k) {
			pinned = "yes"
		}
		fmt.Fprintf(w, "%-2s %s %-16s %s %s\n",
			a.Glyph,
			id.Sprintf("%-12s", k.String()),
			a.Title,
			muted.Sprintf("%-8s", fmt.Sprintf("%dx%d", size.Width, size.Height)),
			pinned,
		)
	}
}
