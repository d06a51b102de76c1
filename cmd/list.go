package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/switcheroo/internal/output"
	"github.com/mj1618/switcheroo/internal/rank"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List switchable windows",
	Long: `List the windows of running applications on every space and display,
ranked against an optional fuzzy query. With no query windows are ordered by
app name, then title.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().String("query", "", "Fuzzy query matched against \"<app> <title>\"")
	listCmd.Flags().String("app", "", "Filter windows by app name substring")
	listCmd.Flags().Int("limit", 0, "Max windows in output (0 = unlimited)")
}

func runList(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	appName, _ := cmd.Flags().GetString("app")
	limit, _ := cmd.Flags().GetInt("limit")

	mgr, err := refreshedManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	results := rankWindows(mgr, query, appName)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	if results == nil {
		results = []rank.Result{}
	}

	return output.Print(output.ListResult{
		Query:   query,
		TS:      time.Now().Unix(),
		Windows: results,
	})
}
