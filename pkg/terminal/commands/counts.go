package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/stat-atlas/pkg/services/analysis"
	"github.com/de-tools/stat-atlas/pkg/services/session"
	"github.com/de-tools/stat-atlas/pkg/terminal/report"

	"github.com/spf13/cobra"
)

type CountsCmd struct {
	client   *analysis.Client
	reporter *report.Reporter
}

func NewCountsCmd(client *analysis.Client, reporter *report.Reporter) *cobra.Command {
	cc := &CountsCmd{client: client, reporter: reporter}
	return &cobra.Command{
		Use:   "counts",
		Short: "Show stored session counts per analysis kind",
		RunE:  cc.run,
	}
}

func (cc *CountsCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	sessions, _, err := cc.client.ListSessions(ctx, analysis.ListQuery{})
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	return cc.reporter.HandleCounts(session.CountsByKind(sessions))
}
