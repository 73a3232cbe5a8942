package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/taskboard/internal/config"
	"github.com/twiced-technology-gmbh/taskboard/internal/output"
	"github.com/twiced-technology-gmbh/taskboard/internal/seed"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new board",
	Long: `Creates a board directory with config.yml and a sample seed.yml fixture.
Edit seed.yml to change the projects, tags and tasks the board starts with.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("name", config.DefaultBoardName, "board name")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	dir := flagDir
	if dir == "" {
		dir = config.DefaultDir
	}

	name, _ := cmd.Flags().GetString("name")
	cfg, err := config.Init(dir, name)
	if err != nil {
		return err
	}

	seedFile := cfg.SeedPath()
	if _, err := os.Stat(seedFile); os.IsNotExist(err) {
		if err := seed.WriteRaw(seedFile, seed.SampleYAML()); err != nil {
			return fmt.Errorf("writing seed file: %w", err)
		}
	}
	logger.Info("board initialized", "dir", cfg.Dir(), "seed", seedFile)

	format := outputFormat()
	if format == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{
			"status": "initialized",
			"dir":    cfg.Dir(),
			"name":   cfg.Board.Name,
			"config": cfg.ConfigPath(),
			"seed":   seedFile,
		})
	}

	output.Messagef(os.Stdout, "Initialized board %q in %s", cfg.Board.Name, cfg.Dir())
	output.Messagef(os.Stdout, "  Config: %s", cfg.ConfigPath())
	output.Messagef(os.Stdout, "  Seed:   %s", filepath.Base(seedFile))
	return nil
}
