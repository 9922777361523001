package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/stat-atlas/pkg/models/domain"
	"github.com/de-tools/stat-atlas/pkg/services/analysis"
	"github.com/de-tools/stat-atlas/pkg/services/session"
	"github.com/de-tools/stat-atlas/pkg/terminal/report"

	"github.com/spf13/cobra"
)

type SessionsCmd struct {
	kind     string
	search   string
	limit    int
	client   *analysis.Client
	reporter *report.Reporter
}

func NewSessionsCmd(client *analysis.Client, reporter *report.Reporter) *cobra.Command {
	sc := &SessionsCmd{client: client, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List stored analysis sessions",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.kind, "kind", "", "Analysis kind (correspondence, pca, cluster, regression, timeseries)")
	cmd.Flags().StringVar(&sc.search, "search", "", "Filter sessions by name or description")
	cmd.Flags().IntVar(&sc.limit, "limit", 50, "Maximum sessions to fetch")

	_ = cmd.MarkFlagRequired("kind")

	return cmd
}

func (sc *SessionsCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	kind, err := domain.ParseKind(sc.kind)
	if err != nil {
		return err
	}

	sessions, _, err := sc.client.ListSessions(ctx, analysis.ListQuery{
		Kind:   kind,
		Search: sc.search,
		Limit:  sc.limit,
	})
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	// The backend's kind filter is advisory; drop strays here too.
	return sc.reporter.HandleSessions(kind, session.Filter(sessions, kind))
}
