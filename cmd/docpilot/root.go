package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"docpilot/internal/config"
	"docpilot/internal/logging"
)

func Execute() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		workspace   string
		uiMode      string
		autoApprove bool
		noColor     bool
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:           "docpilot",
		Short:         "Approval-gated document editing for Word and spreadsheet files",
		Long:          "docpilot runs the document mutation tools behind an approval gate:\nevery proposed change renders a diff and waits for a yes/no decision\nbefore anything touches the file.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(workspace)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("ui") {
				settings.UI = uiMode
			}
			if autoApprove {
				settings.AutoApprove = true
			}
			if cmd.Flags().Changed("timeout") {
				settings.DecisionTimeout = timeout
			}
			if noColor {
				color.NoColor = true
			}
			switch settings.UI {
			case config.UITUI, config.UILine, config.UIPlain:
			default:
				return fmt.Errorf("unknown ui mode %q", settings.UI)
			}

			logger := logging.New(os.Stderr, logging.ParseLevel(settings.LogLevel))
			app := NewApp(settings, logger)
			defer app.Close()

			switch settings.UI {
			case config.UITUI:
				return runTUI(app)
			case config.UIPlain:
				return runLineUI(app, os.Stdin, os.Stdout, os.Stderr, false)
			default:
				return runLineUI(app, os.Stdin, os.Stdout, os.Stderr, true)
			}
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "workspace root (default: current directory)")
	cmd.Flags().StringVar(&uiMode, "ui", config.UILine, "decision surface: tui, line, or plain")
	cmd.Flags().BoolVar(&autoApprove, "auto-approve", false, "apply changes without prompting (sandbox still enforced)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.Flags().DurationVar(&timeout, "timeout", 300*time.Second, "how long an approval prompt stays open")

	cmd.AddCommand(newToolsCommand())
	return cmd
}

func newToolsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the available document mutation tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load("")
			if err != nil {
				return err
			}
			app := NewApp(settings, logging.Nop())
			defer app.Close()
			for _, def := range app.Registry.List() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-22s %s\n", def.Name, def.Description)
			}
			return nil
		},
	}
}
