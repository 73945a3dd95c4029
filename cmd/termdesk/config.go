package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/1broseidon/termdesk/internal/config"
)

func newConfigCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}
	cmd.AddCommand(newConfigValidateCmd(flags))
	cmd.AddCommand(newConfigPrintCmd(flags))
	cmd.AddCommand(newConfigPathCmd(flags))
	return cmd
}

func newConfigValidateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the config file for errors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := flags.load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if res.File == "" {
				fmt.Fprintln(out, "config: ok (no file, using defaults)")
				return nil
			}
			fmt.Fprintf(out, "config: %s %s\n", color.GreenString("ok"), res.File)
			return nil
		},
	}
}

func newConfigPrintCmd(flags *globalFlags) *cobra.Command {
	var defaults, sources bool
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the effective config as yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if defaults {
				return printConfig(out, config.DefaultConfig())
			}
			res, err := flags.load()
			if err != nil {
				return err
			}
			if sources {
				printSources(out, res)
				return nil
			}
			return printConfig(out, res.Config)
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, "print built-in defaults (no file)")
	cmd.Flags().BoolVar(&sources, "sources", false, "list the keys set by the config file and where")
	return cmd
}

func newConfigPathCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := flags.resolveConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func printConfig(w io.Writer, cfg *config.Config) error {
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func printSources(w io.Writer, res *config.LoadResult) {
	if len(res.Sources) == 0 {
		fmt.Fprintln(w, "all values are defaults")
		return
	}
	keys := make([]string, 0, len(res.Sources))
	for k := range res.Sources {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%-28s %s\n", k, formatSource(res.Sources[k]))
	}
}

func formatSource(src config.Source) string {
	switch src.Kind {
	case config.SourceFile:
		if src.File == "" {
			return "file"
		}
		if src.Line > 0 {
			return fmt.Sprintf("file:%s:%d:%d", src.File, src.Line, src.Column)
		}
		return "file:" + src.File
	case config.SourceDefault:
		return "default"
	default:
		return string(src.Kind)
	}
}
