package cmd

import (
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/twiced-technology-gmbh/taskboard/internal/board"
	"github.com/twiced-technology-gmbh/taskboard/internal/clierr"
	"github.com/twiced-technology-gmbh/taskboard/internal/output"
	"github.com/twiced-technology-gmbh/taskboard/internal/task"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long:    `Lists tasks with optional filtering, sorting, and output format control.`,
	RunE:    runList,
}

func init() {
	listCmd.Flags().StringSlice("status", nil, "filter by status (comma-separated)")
	listCmd.Flags().StringSlice("priority", nil, "filter by priority (comma-separated)")
	listCmd.Flags().String("project", "", "filter by project ID or name")
	listCmd.Flags().String("tag", "", "filter by tag")
	listCmd.Flags().StringP("search", "s", "", "search tasks by title, description, or comments (case-insensitive)")
	listCmd.Flags().String("sort", "", "sort field ("+strings.Join(board.ValidSortFields(), ", ")+")")
	listCmd.Flags().BoolP("reverse", "r", false, "reverse sort order")
	listCmd.Flags().IntP("limit", "n", 0, "limit number of results")
	listCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		switch name {
		case "tags":
			name = "tag"
		case "statuses":
			name = "status"
		case "priorities":
			name = "priority"
		case "sort-by":
			name = "sort"
		}
		return pflag.NormalizedName(name)
	})
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	state, err := loadBoard(cfg)
	if err != nil {
		return err
	}

	rawStatuses, _ := cmd.Flags().GetStringSlice("status")
	rawPriorities, _ := cmd.Flags().GetStringSlice("priority")
	project, _ := cmd.Flags().GetString("project")
	tag, _ := cmd.Flags().GetString("tag")
	search, _ := cmd.Flags().GetString("search")
	sortBy, _ := cmd.Flags().GetString("sort")
	reverse, _ := cmd.Flags().GetBool("reverse")
	limit, _ := cmd.Flags().GetInt("limit")

	if sortBy != "" && !slices.Contains(board.ValidSortFields(), sortBy) {
		return clierr.Newf(clierr.InvalidInput, "invalid --sort field %q; valid: %s",
			sortBy, strings.Join(board.ValidSortFields(), ", "))
	}

	filter := board.FilterOptions{Tag: tag, Search: search}
	for _, s := range rawStatuses {
		st, err := task.ParseStatus(s)
		if err != nil {
			return err
		}
		filter.Statuses = append(filter.Statuses, st)
	}
	for _, p := range rawPriorities {
		pr, err := task.ParsePriority(p)
		if err != nil {
			return err
		}
		filter.Priorities = append(filter.Priorities, pr)
	}
	if project != "" {
		filter.ProjectID = resolveProjectID(state.Projects(), project)
	}

	tasks := board.Filter(state.Tasks(), filter)
	if sortBy != "" {
		board.Sort(tasks, sortBy, reverse)
	} else if reverse {
		slices.Reverse(tasks)
	}
	if limit > 0 && len(tasks) > limit {
		tasks = tasks[:limit]
	}

	return outputTaskList(tasks, state.Projects())
}

// resolveProjectID accepts a project ID or a case-insensitive project name.
// Unknown values are used as an ID, which matches dangling references.
func resolveProjectID(projects []task.Project, ref string) string {
	for _, p := range projects {
		if p.ID == ref {
			return p.ID
		}
	}
	for _, p := range projects {
		if strings.EqualFold(p.Name, ref) {
			return p.ID
		}
	}
	return ref
}

func outputTaskList(tasks []task.Task, projects []task.Project) error {
	format := outputFormat()
	if format == output.FormatJSON {
		if tasks == nil {
			tasks = []task.Task{}
		}
		return output.JSON(os.Stdout, tasks)
	}
	if format == output.FormatCompact {
		output.TaskCompact(os.Stdout, tasks)
		return nil
	}

	output.TaskTable(os.Stdout, tasks, projects)
	return nil
}
