package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mj1618/switcheroo/internal/output"
)

var iconCmd = &cobra.Command{
	Use:   "icon",
	Short: "Export an application's icon as PNG",
	Long:  "Write the normalized icon of a running application to a PNG file, optionally rescaled.",
	RunE:  runIcon,
}

func init() {
	rootCmd.AddCommand(iconCmd)
	iconCmd.Flags().Int("pid", 0, "Process ID of the application")
	iconCmd.Flags().String("out", "", "Output PNG path")
	iconCmd.Flags().Int("size", 0, "Rescale to size x size pixels (0 = native)")
	_ = iconCmd.MarkFlagRequired("pid")
	_ = iconCmd.MarkFlagRequired("out")
}

func runIcon(cmd *cobra.Command, args []string) error {
	pid, _ := cmd.Flags().GetInt("pid")
	out, _ := cmd.Flags().GetString("out")
	size, _ := cmd.Flags().GetInt("size")
	if size < 0 {
		return fmt.Errorf("--size must not be negative")
	}

	mgr, err := refreshedManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	icon, ok := mgr.Icon(pid)
	if !ok {
		return fmt.Errorf("no icon for pid %d (not a running regular app, or the app has no icon)", pid)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	width, height, err := output.EncodeIconPNG(f, icon, size)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	return output.Print(output.IconResult{
		PID:    pid,
		Path:   out,
		Width:  width,
		Height: height,
	})
}
