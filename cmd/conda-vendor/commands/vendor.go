package commands

import (
	"fmt"

	"github.com/rigzba21/conda-vendor/internal/app"
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func (c *CLI) newVendorCmd() *cobra.Command {
	defaults := app.DefaultVendorOptions()

	cmd := &cobra.Command{
		Use:   "vendor",
		Short: "Solve an environment and vendor its packages into a local channel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			opts := app.VendorOptions{}
			opts.EnvironmentFile, _ = flags.GetString("file")
			opts.Solver, _ = flags.GetString("solver")
			opts.Platform, _ = flags.GetString("platform")
			opts.OutputDir, _ = flags.GetString("output")
			opts.Jobs, _ = flags.GetInt("jobs")
			retries, _ := flags.GetInt("retries")
			if retries < 0 {
				return zerr.With(zerr.New("retries must not be negative"), "retries", retries)
			}
			opts.MaxAttempts = retries + 1
			opts.RetryDelay, _ = flags.GetDuration("retry-delay")
			opts.RateLimit, _ = flags.GetFloat64("rate-limit")
			opts.SkipIndex, _ = flags.GetBool("skip-index")
			opts.IndexCommand, _ = flags.GetString("indexer")
			opts.ManifestFormat, _ = flags.GetString("format")
			opts.OutputMode = outputMode(cmd)

			result, err := c.app.Vendor(cmd.Context(), opts)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Vendored %d artifact(s) for %s (%s) into %s\n",
				len(result.Artifacts), result.Environment, result.Platform, result.Layout.Root)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringP("file", "f", "", "Path to the environment.yaml file")
	flags.StringP("solver", "s", defaults.Solver, "Solver backend: conda, mamba or micromamba")
	flags.StringP("platform", "p", "", "Target platform tag, such as linux-64 (defaults to the host)")
	flags.StringP("output", "o", defaults.OutputDir, "Directory the channel is created in")
	flags.IntP("jobs", "j", defaults.Jobs, "Number of artifacts downloaded at once")
	flags.Int("retries", defaults.MaxAttempts-1, "Retries per artifact on connection failures")
	flags.Duration("retry-delay", defaults.RetryDelay, "Initial delay between retries, doubled after each one")
	flags.Float64("rate-limit", defaults.RateLimit, "Maximum download requests per second (0 for unlimited)")
	flags.Bool("skip-index", false, "Do not run the channel indexer")
	flags.String("indexer", defaults.IndexCommand, "Command used to index the channel")
	flags.String("format", defaults.ManifestFormat, "Manifest format: yaml, json or resources")
	addOutputModeFlags(cmd)
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
