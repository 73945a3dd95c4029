package main

import (
	"github.com/spf13/cobra"

	"github.com/1broseidon/termdesk/internal/config"
)

// Version information, set at build time via ldflags.
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

type globalFlags struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:   "termdesk",
		Short: "A simulated desktop in your terminal",
		Long: `termdesk draws a desktop with icons, draggable windows, a taskbar and a
start menu inside the terminal. It hosts a file explorer, a text editor,
a paint canvas, a calculator and a passive web browser frame.

Running termdesk without a subcommand starts the desktop.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDesktop(cmd.Context(), flags)
		},
	}
	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "config file path (default: ~/.config/termdesk/config.yaml)")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(newRunCmd(flags))
	root.AddCommand(newAppsCmd())
	root.AddCommand(newConfigCmd(flags))
	root.AddCommand(newVersionCmd())
	return root
}

// resolveConfigPath returns the --config value or the default location.
func (f *globalFlags) resolveConfigPath() (string, error) {
	if f.configPath != "" {
		return f.configPath, nil
	}
	return config.DefaultConfigPath()
}

func (f *globalFlags) load() (*config.LoadResult, error) {
	path, err := f.resolveConfigPath()
	if err != nil {
		return nil, err
	}
	return config.LoadFromPath(path)
}
