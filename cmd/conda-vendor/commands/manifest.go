package commands

import (
	"fmt"

	"github.com/rigzba21/conda-vendor/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newManifestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Solve an environment and write its manifest without downloading",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			opts := app.ManifestOptions{}
			opts.EnvironmentFile, _ = flags.GetString("file")
			opts.Solver, _ = flags.GetString("solver")
			opts.Platform, _ = flags.GetString("platform")
			opts.Output, _ = flags.GetString("output")
			opts.ManifestFormat, _ = flags.GetString("format")
			opts.OutputMode = outputMode(cmd)

			result, err := c.app.Manifest(cmd.Context(), opts)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d entries to %s\n", len(result.Entries), result.ManifestPath)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringP("file", "f", "", "Path to the environment.yaml file")
	flags.StringP("solver", "s", "conda", "Solver backend: conda, mamba or micromamba")
	flags.StringP("platform", "p", "", "Target platform tag, such as linux-64 (defaults to the host)")
	flags.StringP("output", "o", "", "Manifest file to write (defaults to the format's file name)")
	flags.String("format", "yaml", "Manifest format: yaml, json or resources")
	addOutputModeFlags(cmd)
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
