// Package cmd implements the taskboard CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/taskboard/internal/board"
	"github.com/twiced-technology-gmbh/taskboard/internal/clierr"
	"github.com/twiced-technology-gmbh/taskboard/internal/config"
	"github.com/twiced-technology-gmbh/taskboard/internal/output"
	"github.com/twiced-technology-gmbh/taskboard/internal/seed"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON     bool
	flagTable    bool
	flagCompact  bool
	flagDir      string
	flagSeed     string
	flagNoColor  bool
	flagLogLevel string
)

// logger is the process logger, configured in PersistentPreRunE.
var logger = newLogger()

var rootCmd = &cobra.Command{
	Use:   "taskboard",
	Short: "Terminal kanban board for tasks, projects and tags",
	Long: `taskboard shows tasks on a Kanban board grouped by status, priority or project.
Run taskboard without arguments to open the interactive board. Board state lives
in memory for the session and is seeded from the board's fixture file.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runTUI,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if flagNoColor || os.Getenv("NO_COLOR") != "" {
			output.DisableColor()
		}
		if flagLogLevel != "" {
			lvl, err := log.ParseLevel(flagLogLevel)
			if err != nil {
				return clierr.Newf(clierr.InvalidInput, "invalid --log-level %q", flagLogLevel)
			}
			logger.SetLevel(lvl)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "path to board directory")
	rootCmd.PersistentFlags().StringVar(&flagSeed, "seed", "", "fixture file to seed the board from (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	// SilentError: exit with its code, no output.
	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	// Determine if JSON mode is active.
	jsonMode := flagJSON
	if !jsonMode {
		jsonMode = os.Getenv(output.EnvVar) == "json"
	}

	if jsonMode {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) {
			output.JSONError(os.Stdout, cliErr.Code, cliErr.Message, cliErr.Details)
			os.Exit(cliErr.ExitCode())
		}
		// Unknown errors are reported as INTERNAL_ERROR.
		output.JSONError(os.Stdout, clierr.InternalError, err.Error(), nil)
		os.Exit(2) //nolint:mnd // exit code 2 for internal errors
	}

	// Non-JSON mode: print to stderr.
	fmt.Fprintln(os.Stderr, err)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

func newLogger() *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "taskboard",
		Formatter:       log.TextFormatter,
	})
	l.SetLevel(log.WarnLevel)
	return l
}

// loadConfig finds and loads the board config. Without --dir, a missing
// board falls back to an unsaved default config over the built-in sample.
func loadConfig() (*config.Config, error) {
	if flagDir != "" {
		cfg, err := config.Load(flagDir)
		if errors.Is(err, config.ErrNotFound) {
			return nil, clierr.Newf(clierr.BoardNotFound, "no board found in %s (run 'taskboard init' to create one)", flagDir).
				WithDetails(map[string]any{"dir": flagDir})
		}
		if err != nil {
			return nil, err
		}
		applyLogLevel(cfg)
		return cfg, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}

	dir, err := config.FindDir(cwd)
	if err != nil {
		if clierr.CodeOf(err) != clierr.BoardNotFound {
			return nil, err
		}
		logger.Debug("no board directory found, using built-in sample", "cwd", cwd)
		cfg := config.NewDefault(config.DefaultBoardName)
		applyLogLevel(cfg)
		return cfg, nil
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	applyLogLevel(cfg)
	return cfg, nil
}

// applyLogLevel uses the config's log level unless --log-level was given.
func applyLogLevel(cfg *config.Config) {
	if flagLogLevel == "" {
		logger.SetLevel(cfg.LogLevel())
	}
}

// loadBoard seeds a fresh board from --seed, the config's seed file, or the
// built-in sample, in that order.
func loadBoard(cfg *config.Config) (*board.Board, error) {
	data, err := loadSeed(cfg)
	if err != nil {
		return nil, err
	}

	opts := cfg.BoardOptions()
	opts.Logger = logger
	b := board.New(data.Board(), opts)
	logger.Debug("board loaded",
		"tasks", len(data.Tasks), "projects", len(data.Projects), "tags", len(data.Tags))
	return b, nil
}

func loadSeed(cfg *config.Config) (seed.Data, error) {
	path := seedPath(cfg)
	if path == "" {
		return seed.Sample(), nil
	}
	return seed.Load(path)
}

// seedPath returns the fixture file in use, or "" for the built-in sample.
func seedPath(cfg *config.Config) string {
	if flagSeed != "" {
		return flagSeed
	}
	return cfg.SeedPath()
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact)
}
