// Package commands implements the CLI commands for conda-vendor.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/rigzba21/conda-vendor/internal/app"
	"github.com/rigzba21/conda-vendor/internal/build"
	"github.com/rigzba21/conda-vendor/internal/engine/pipeline"
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

// Log formats accepted by --log-format.
const (
	LogFormatPretty = "pretty"
	LogFormatJSON   = "json"
)

// CLI represents the command line interface for conda-vendor.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Vendor(ctx context.Context, opts app.VendorOptions) (*pipeline.VendorResult, error)
	Manifest(ctx context.Context, opts app.ManifestOptions) (*pipeline.PlanResult, error)
	SetJSONLogs(enable bool)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "conda-vendor",
		Short:         "Vendor conda environments into offline local channels",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().String("log-format", LogFormatPretty, "Log output format: pretty or json")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRunE = c.configureLogging

	rootCmd.AddCommand(c.newVendorCmd())
	rootCmd.AddCommand(c.newManifestCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func (c *CLI) configureLogging(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("log-format")
	switch format {
	case LogFormatPretty:
		c.app.SetJSONLogs(false)
	case LogFormatJSON:
		c.app.SetJSONLogs(true)
	default:
		return zerr.With(zerr.New("unknown log format"), "log_format", format)
	}
	return nil
}
