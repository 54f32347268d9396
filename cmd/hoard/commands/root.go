// Package commands implements the CLI commands for the hoard bundler.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/hoard/internal/app"
	"go.trai.ch/hoard/internal/build"
)

// CLI represents the command line interface for hoard.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, opts app.Options) (*app.Report, error)
	Watch(ctx context.Context, opts app.Options) error
	Clean(ctx context.Context, opts app.CleanOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "hoard",
		Short:         "An incremental CommonJS bundler",
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

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "Path to hoard.yaml or a directory to search from")
	flags.Bool("json", false, "Write logs as JSON")
	flags.Bool("no-persist", false, "Do not load or save the cache state")
	flags.Bool("verbose", false, "Enable debug logging and span tracing")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newCleanCmd())
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

func options(cmd *cobra.Command) app.Options {
	configPath, _ := cmd.Flags().GetString("config")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	noPersist, _ := cmd.Flags().GetBool("no-persist")
	verbose, _ := cmd.Flags().GetBool("verbose")

	return app.Options{
		ConfigPath: configPath,
		JSON:       jsonLogs,
		NoPersist:  noPersist,
		Verbose:    verbose,
	}
}
