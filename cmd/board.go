package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/taskboard/internal/board"
	"github.com/twiced-technology-gmbh/taskboard/internal/clierr"
	"github.com/twiced-technology-gmbh/taskboard/internal/config"
	"github.com/twiced-technology-gmbh/taskboard/internal/output"
	"github.com/twiced-technology-gmbh/taskboard/internal/watcher"
)

var flagWatch bool

var boardCmd = &cobra.Command{
	Use:     "board",
	Aliases: []string{"summary"},
	Short:   "Show the board",
	Long: `Displays the board's columns with their tasks, grouped by status, priority or
project, and the number of unfinished tasks.

Use --watch to keep the display live-updating. The board re-renders whenever the
fixture file or config changes on disk. Press Ctrl+C to stop.`,
	RunE: runBoard,
}

func init() {
	rootCmd.AddCommand(boardCmd)
	boardCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "live-update the board on file changes")
	boardCmd.Flags().String("group-by", "", "group board by field ("+strings.Join(board.ValidGroupByFields(), ", ")+")")
	boardCmd.Flags().StringP("search", "s", "", "only show tasks whose title, description or comments match (case-insensitive)")
}

func runBoard(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	groupBy := cfg.Defaults.GroupBy
	if raw, _ := cmd.Flags().GetString("group-by"); raw != "" {
		if groupBy, err = board.ParseGroupBy(raw); err != nil {
			return err
		}
	}
	query, _ := cmd.Flags().GetString("search")

	// Render once.
	if err := renderBoard(cfg, groupBy, query); err != nil {
		return err
	}

	if !flagWatch {
		return nil
	}
	return watchBoard(cfg, groupBy, query)
}

func renderBoard(cfg *config.Config, groupBy board.GroupBy, query string) error {
	state, err := loadBoard(cfg)
	if err != nil {
		return err
	}

	buckets := state.View(groupBy, query)
	overview := board.Summarize(cfg.Board.Name, groupBy, query, state.Tasks(), buckets)

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, struct {
			board.Overview
			Columns []board.Bucket `json:"columns"`
		}{overview, buckets})
	case output.FormatCompact:
		output.BoardCompact(os.Stdout, overview, buckets)
	default:
		output.BoardTable(os.Stdout, overview, buckets)
	}
	return nil
}

func watchBoard(cfg *config.Config, groupBy board.GroupBy, query string) error {
	var files []string
	if path := seedPath(cfg); path != "" {
		files = append(files, path)
	}
	if cfg.Dir() != "" {
		files = append(files, cfg.ConfigPath())
	}
	if len(files) == 0 {
		return clierr.New(clierr.InvalidInput,
			"nothing to watch: the board uses the built-in sample (set a seed file or run 'taskboard init')")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, err := watcher.New(files, func() {
		clearScreen()
		// Re-load config in case the seed path or defaults changed.
		freshCfg := cfg
		if cfg.Dir() != "" {
			if loaded, loadErr := config.Load(cfg.Dir()); loadErr != nil {
				logger.Warn("reloading config", "err", loadErr)
			} else {
				freshCfg = loaded
			}
		}
		if renderErr := renderBoard(freshCfg, groupBy, query); renderErr != nil {
			logger.Warn("rendering board", "err", renderErr)
		}
	})
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer w.Close()

	fmt.Fprintln(os.Stderr, "Watching for changes... (Ctrl+C to stop)")

	w.Run(ctx, func(watchErr error) {
		logger.Warn("file watcher", "err", watchErr)
	})
	return nil
}

// clearScreen sends ANSI escape codes to clear the terminal and move the
// cursor to the top-left corner.
func clearScreen() {
	fmt.Fprint(os.Stdout, "\033[2J\033[H")
}
