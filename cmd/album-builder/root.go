package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/handiism/prompt-album-builder/internal/config"
	"github.com/handiism/prompt-album-builder/internal/logger"
	"github.com/handiism/prompt-album-builder/internal/organize"
	"github.com/handiism/prompt-album-builder/internal/report"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	prompt     string
	configPath string
	dryRun     bool
	backup     bool
	verbose    bool
	year       int
	month      int
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "album-builder",
		Short: "Organize photos into albums described by a natural-language prompt",
		Long: `album-builder turns a prompt such as "Create albums for NCC events, college fests in March 2024"
into album folders. Photos are matched by filename and folder name, then moved
(or copied in backup mode) into YYYY-MM-Album-Name folders under the target albums folder.

For interactive mode, use: album-builder-tui`,
		Example: `  album-builder --prompt "Create albums for vacation and work" --dry-run
  album-builder --prompt "Sort by NCC events" --year 2024 --month 3 --backup`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.prompt, "prompt", "p", "", "album description, e.g. \"Create albums for vacation and work\"")
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to config file (default $"+config.EnvConfigPath+" or "+config.DefaultPath+")")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "show what would be done without changing any file")
	flags.BoolVar(&opts.backup, "backup", false, "copy photos instead of moving them")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "show debug output")
	flags.IntVar(&opts.year, "year", 0, "only consider this year for album dates")
	flags.IntVar(&opts.month, "month", 0, "only consider this month (1-12) for album dates")
	_ = cmd.MarkFlagRequired("prompt")

	return cmd
}

func runBuild(cmd *cobra.Command, opts *rootOptions) error {
	if strings.TrimSpace(opts.prompt) == "" {
		return errors.New("prompt cannot be empty")
	}
	if opts.month < 0 || opts.month > 12 {
		return fmt.Errorf("month must be between 1 and 12, got %d", opts.month)
	}

	settings, err := config.Load(config.ResolvePath(opts.configPath))
	if err != nil {
		return err
	}

	// Verbose runs print the structured log, which carries every progress
	// event, instead of the progress lines.
	log, err := newRunLogger(settings, opts.dryRun, opts.verbose, opts.verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	out := cmd.OutOrStdout()
	if opts.dryRun {
		fmt.Fprintln(out, "[DRY RUN] No files will be changed")
	}

	manager := organize.NewManager(settings, organize.Options{
		DryRun: opts.dryRun,
		Backup: opts.backup,
		Year:   opts.year,
		Month:  opts.month,
	}, log, func(event organize.ProgressEvent) {
		if opts.verbose || event.Level == organize.LevelVerbose {
			return
		}
		fmt.Fprintln(out, progressPrefix(event.Level)+event.Message)
	})

	stats, err := manager.Run(cmd.Context(), opts.prompt)
	if errors.Is(err, organize.ErrNoPhotos) {
		return nil
	}
	if err != nil {
		if cmd.Context().Err() != nil {
			return fmt.Errorf("cancelled: %w", err)
		}
		return err
	}

	fmt.Fprint(out, report.RenderRunSummary(stats))
	return nil
}

// newRunLogger logs to the console and, outside dry runs, to a timestamped
// file in the configured log directory.
func newRunLogger(settings *config.Settings, dryRun, verbose, console bool) (*logger.Logger, error) {
	level := settings.Logging.Level
	if verbose {
		level = "debug"
	}

	opts := logger.Options{Level: level, Console: console}
	if !dryRun {
		opts.File = logger.RunLogPath(settings.Logging.LogDir, time.Now())
	}

	return logger.New(opts)
}

func progressPrefix(level organize.ProgressLevel) string {
	switch level {
	case organize.LevelError:
		return "❌ "
	case organize.LevelWarning:
		return "⚠️  "
	case organize.LevelSuccess:
		return "✅ "
	case organize.LevelInfo:
		return "ℹ️  "
	default:
		return "   "
	}
}
