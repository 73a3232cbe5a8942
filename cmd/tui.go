package cmd

import (
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/taskboard/internal/clierr"
	"github.com/twiced-technology-gmbh/taskboard/internal/tui"
)

func runTUI(_ *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return clierr.New(clierr.InvalidInput,
			"the interactive board needs a terminal; use 'taskboard board' for a static view")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	state, err := loadBoard(cfg)
	if err != nil {
		return err
	}

	// Console logging would corrupt the alt screen.
	logger.SetOutput(io.Discard)
	defer logger.SetOutput(os.Stderr)

	model := tui.NewBoard(cfg, state)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
