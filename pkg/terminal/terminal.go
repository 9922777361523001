package terminal

import (
	"io"
	"os"

	"github.com/de-tools/stat-atlas/pkg/services/analysis"
	"github.com/de-tools/stat-atlas/pkg/terminal/commands"
	"github.com/de-tools/stat-atlas/pkg/terminal/report"

	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	client   *analysis.Client
	reporter *report.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Client *analysis.Client
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		client:   opts.Client,
		reporter: report.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stat-atlas",
		Short: "Statistics session browser tool",
	}

	cmd.AddCommand(commands.NewSessionsCmd(cli.client, cli.reporter))
	cmd.AddCommand(commands.NewExportCmd(cli.client))
	cmd.AddCommand(commands.NewCountsCmd(cli.client, cli.reporter))

	return cmd
}
