package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/switcheroo/internal/output"
	"github.com/mj1618/switcheroo/internal/rank"
)

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Bring a window to the foreground",
	Long: `Focus a window by system ID, or the best match for a fuzzy query. The
window's space is switched to if needed and the pointer is moved onto it.`,
	RunE: runFocus,
}

func init() {
	rootCmd.AddCommand(focusCmd)
	focusCmd.Flags().Int("window-id", 0, "Focus window by system ID")
	focusCmd.Flags().String("query", "", "Focus the best match for this fuzzy query")
}

func runFocus(cmd *cobra.Command, args []string) error {
	windowID, _ := cmd.Flags().GetInt("window-id")
	query, _ := cmd.Flags().GetString("query")

	if windowID < 0 || (windowID == 0 && query == "") {
		return fmt.Errorf("specify --window-id or --query")
	}
	if windowID > 0 {
		query = ""
	}

	mgr, err := refreshedManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	target, ok := rank.Pick(rankWindows(mgr, query, ""), uint32(windowID))
	if !ok {
		if windowID > 0 {
			return fmt.Errorf("no window with id %d", windowID)
		}
		return fmt.Errorf("no window matches %q", query)
	}

	if err := mgr.Focus(target.Window.ID); err != nil {
		return err
	}

	return output.Print(output.FocusResult{
		OK:       true,
		WindowID: target.Window.ID,
		App:      target.App,
		Title:    target.Window.Title,
	})
}
