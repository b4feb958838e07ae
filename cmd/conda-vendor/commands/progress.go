package commands

import "github.com/spf13/cobra"

func addOutputModeFlags(cmd *cobra.Command) {
	cmd.Flags().String("output-mode", "auto", "Progress display: auto, tui or linear")
	cmd.Flags().Bool("ci", false, "Use linear progress output (shorthand for --output-mode=linear)")
}

func outputMode(cmd *cobra.Command) string {
	if ci, _ := cmd.Flags().GetBool("ci"); ci {
		return "linear"
	}
	mode, _ := cmd.Flags().GetString("output-mode")
	return mode
}
