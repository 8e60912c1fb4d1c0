package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Ddraigan/diff-tool/internal/config"
	"github.com/Ddraigan/diff-tool/internal/git"
	"github.com/Ddraigan/diff-tool/internal/logging"
	"github.com/Ddraigan/diff-tool/internal/ui"
	"github.com/Ddraigan/diff-tool/internal/watcher"
)

// Options holds the command line flags
type Options struct {
	ChangeDir   bool
	Context     int
	NoWatch     bool
	NoHighlight bool
	Debug       bool
	ConfigPath  string
	PrintConfig bool
}

func main() {
	var opts Options

	rootCmd := &cobra.Command{
		Use:   "diff-tool [flags] <path>",
		Short: "Side-by-side git diff viewer for a single file",
		Example: `  # View unstaged changes to a file
  diff-tool src/main.go

  # Run git from the file's directory
  diff-tool -C ../other-repo/README.md

  # Print the effective configuration
  diff-tool --print-config`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("context") {
				if opts.Context < 0 {
					return errors.Errorf("--context must not be negative, got %d", opts.Context)
				}
				cfg.Diff.ContextLines = opts.Context
			}

			if opts.PrintConfig {
				return cfg.Write(cmd.OutOrStdout())
			}
			if len(args) == 0 {
				return errors.New("missing file path")
			}

			return run(cmd.Context(), cmd, args[0], cfg, opts)
		},
	}

	rootCmd.Flags().BoolVarP(&opts.ChangeDir, "change-dir", "C", false, "Run git from the file's directory")
	rootCmd.Flags().IntVarP(&opts.Context, "context", "U", git.DefaultContext, "Number of context lines around changes")
	rootCmd.Flags().BoolVar(&opts.NoWatch, "no-watch", false, "Do not reload when the file changes")
	rootCmd.Flags().BoolVar(&opts.NoHighlight, "no-highlight", false, "Disable syntax highlighting")
	rootCmd.Flags().BoolVarP(&opts.Debug, "debug", "d", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&opts.ConfigPath, "config", "", "Path to config file (default: $"+config.EnvDir+"/config.toml or XDG config dir)")
	rootCmd.Flags().BoolVar(&opts.PrintConfig, "print-config", false, "Print the effective configuration as TOML and exit")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cobra.Command, path string, cfg config.Config, opts Options) error {
	console := logging.NewConsole(logging.DefaultCapacity)
	logger := logging.New(console, logging.Options{Debug: opts.Debug})

	target := git.Target{
		Path:      path,
		ChangeDir: opts.ChangeDir,
		Context:   cfg.Diff.ContextLines,
	}

	if err := git.CheckRepo(ctx, target.Dir()); err != nil {
		return err
	}

	diff, err := git.Load(ctx, target)
	if err != nil {
		return err
	}

	status, err := git.GetStatus(ctx, target)
	if err != nil {
		logger.Warn("Could not read file status", "err", err)
	}

	if diff.Empty() {
		msg := fmt.Sprintf("No changes to show for %s", path)
		if status.Path != "" {
			msg += " (" + status.Describe() + ")"
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	}

	added, removed := diff.Stats()
	logger.Info("Loaded diff", "path", path, "rows", diff.Len(), "added", added, "removed", removed)

	uiOpts := ui.Options{
		Target:    target,
		Status:    status,
		Diff:      diff,
		Config:    cfg,
		Console:   console,
		Logger:    logger,
		Highlight: cfg.Diff.HighlightEnabled() && !opts.NoHighlight,
	}

	if cfg.Diff.WatchEnabled() && !opts.NoWatch {
		w, err := watcher.New(path)
		if err != nil {
			logger.Warn("File watching disabled", "err", err)
		} else {
			defer w.Close()
			w.Start()
			uiOpts.Changes = w.Changes
			uiOpts.WatchErrors = w.Errors
			logger.Debug("Watching file", "path", w.Path())
		}
	}

	p := tea.NewProgram(
		ui.New(uiOpts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "run ui")
	}
	return nil
}
