package main

import (
	"os"

	"github.com/milk9111/siteeditor/editor"
	"github.com/spf13/cobra"
)

type options struct {
	configPath       string
	doormatThickness float64
	replacePrevious  bool
}

func (o *options) config(cmd *cobra.Command) (editor.Config, error) {
	cfg, err := editor.LoadConfig(o.configPath)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("doormat-thickness") {
		cfg.DoormatThickness = o.doormatThickness
	}
	if cmd.Flags().Changed("replace-previous-issues") {
		cfg.ReplacePreviousIssues = o.replacePrevious
	}
	return cfg, nil
}

func main() {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:          "siteeditor",
		Short:        "Headless editor for site levels, lifts and cabin doors",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "siteeditor.yaml", "editor config file")
	rootCmd.PersistentFlags().Float64Var(&opts.doormatThickness, "doormat-thickness", 0, "depth of the doormat in front of each cabin face")
	rootCmd.PersistentFlags().BoolVar(&opts.replacePrevious, "replace-previous-issues", false, "drop earlier issues of the same kind on validation")

	rootCmd.AddCommand(inspectCmd(opts))
	rootCmd.AddCommand(validateCmd(opts))
	rootCmd.AddCommand(runCmd(opts))
	rootCmd.AddCommand(watchCmd(opts))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func inspectCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [site-file]",
		Short: "Load a site and print its levels, lifts and doors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}
			return runInspect(cmd.OutOrStdout(), cfg, args[0])
		},
	}
}

func validateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [site-file]",
		Short: "Report lifts that share a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}
			return runValidate(cmd.OutOrStdout(), cfg, args[0])
		},
	}
}

func runCmd(opts *options) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "run [site-file] [script]",
		Short: "Apply a tengo edit script to a site",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}
			return runScript(cmd.Context(), cmd.OutOrStdout(), cfg, args[0], args[1], out)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "write the edited site to this file")
	return cmd
}

func watchCmd(opts *options) *cobra.Command {
	var scriptPath string
	cmd := &cobra.Command{
		Use:   "watch [site-file]",
		Short: "Reload a site, and optionally re-run a script, whenever either changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}
			return runWatch(cmd.Context(), cmd.OutOrStdout(), cfg, args[0], scriptPath)
		},
	}
	cmd.Flags().StringVarP(&scriptPath, "script", "s", "", "tengo edit script to apply after every reload")
	return cmd
}
