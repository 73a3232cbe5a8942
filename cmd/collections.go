package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/taskboard/internal/board"
	"github.com/twiced-technology-gmbh/taskboard/internal/output"
	"github.com/twiced-technology-gmbh/taskboard/internal/task"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects",
	Long:  `Lists the board's projects with the number of tasks assigned to each.`,
	Args:  cobra.NoArgs,
	RunE:  runProjects,
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags",
	Long:  `Lists the board's tags with their colors and the number of tasks carrying each.`,
	Args:  cobra.NoArgs,
	RunE:  runTags,
}

func init() {
	projectsCmd.Flags().StringP("search", "s", "", "filter projects by name (case-insensitive)")
	tagsCmd.Flags().StringP("search", "s", "", "filter tags by name (case-insensitive)")
	rootCmd.AddCommand(projectsCmd, tagsCmd)
}

type projectRow struct {
	task.Project
	Tasks int `json:"tasks"`
}

type tagRow struct {
	task.Tag
	Tasks int `json:"tasks"`
}

func runProjects(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	state, err := loadBoard(cfg)
	if err != nil {
		return err
	}

	query, _ := cmd.Flags().GetString("search")
	projects := board.FilterProjects(state.Projects(), query)
	usage := board.ProjectUsage(state.Tasks())

	switch outputFormat() {
	case output.FormatJSON:
		rows := make([]projectRow, len(projects))
		for i, p := range projects {
			rows[i] = projectRow{Project: p, Tasks: usage[p.ID]}
		}
		return output.JSON(os.Stdout, rows)
	case output.FormatCompact:
		output.ProjectCompact(os.Stdout, projects, usage)
	default:
		output.ProjectTable(os.Stdout, projects, usage)
	}
	return nil
}

func runTags(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	state, err := loadBoard(cfg)
	if err != nil {
		return err
	}

	query, _ := cmd.Flags().GetString("search")
	tags := board.FilterTags(state.Tags(), query)
	usage := board.TagUsage(tags, state.Tasks())

	switch outputFormat() {
	case output.FormatJSON:
		rows := make([]tagRow, len(tags))
		for i, t := range tags {
			rows[i] = tagRow{Tag: t, Tasks: usage[t.ID]}
		}
		return output.JSON(os.Stdout, rows)
	case output.FormatCompact:
		output.TagCompact(os.Stdout, tags, usage)
	default:
		output.TagTable(os.Stdout, tags, usage)
	}
	return nil
}
