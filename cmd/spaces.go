package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/switcheroo/internal/output"
)

var spacesCmd = &cobra.Command{
	Use:   "spaces",
	Short: "List displays and their spaces",
	Long: `List every space on every display in window-server order. User spaces carry
a 1-based index counted across displays; full-screen spaces have none.`,
	RunE: runSpaces,
}

func init() {
	rootCmd.AddCommand(spacesCmd)
}

func runSpaces(cmd *cobra.Command, args []string) error {
	mgr, err := refreshedManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	return output.Print(output.SpacesResult{
		Active: mgr.ActiveSpace(),
		Spaces: mgr.Spaces(),
	})
}
