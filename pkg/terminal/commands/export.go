package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/de-tools/stat-atlas/pkg/export"
	"github.com/de-tools/stat-atlas/pkg/models/domain"
	"github.com/de-tools/stat-atlas/pkg/services/analysis"
	"github.com/de-tools/stat-atlas/pkg/services/builder"
	"github.com/de-tools/stat-atlas/pkg/services/resolve"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ExportCmd struct {
	sessionID int
	output    string
	artifact  string
	client    *analysis.Client
}

func NewExportCmd(client *analysis.Client) *cobra.Command {
	ec := &ExportCmd{client: client}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a session's analysis as CSV",
		RunE:  ec.run,
	}

	cmd.Flags().IntVar(&ec.sessionID, "session", 0, "Session id to export")
	cmd.Flags().StringVar(&ec.output, "output", "", "Output path (defaults to analysis_<id>.csv)")
	cmd.Flags().StringVar(&ec.artifact, "artifact", "",
		"Artifact instead of the analysis summary: data (uploaded table, any kind), "+
			"loadings|scores|details (pca), predictions|forecast|feature_importance|details (timeseries)")

	_ = cmd.MarkFlagRequired("session")

	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()
	logger := zerolog.Ctx(ctx)

	path := ec.output
	if path == "" {
		path = fmt.Sprintf("analysis_%d.csv", ec.sessionID)
	}

	if ec.artifact != "" {
		return ec.exportArtifact(ctx, path)
	}

	// Prefer the backend's own export; synthesize locally when it fails.
	if dl, err := ec.client.DownloadAnalysisCSV(ctx, ec.sessionID); err == nil {
		return os.WriteFile(path, dl.Data, 0o644)
	} else {
		logger.Warn().Err(err).Msg("backend csv export failed; synthesizing locally")
	}

	raw, err := ec.client.GetSession(ctx, ec.sessionID)
	if err != nil {
		return fmt.Errorf("failed to fetch session %d: %w", ec.sessionID, err)
	}

	kindName := resolve.String(raw, resolve.Common()[resolve.FieldKindName], "")
	kind, err := domain.ParseKind(kindName)
	if err != nil {
		return fmt.Errorf("session %d has no recognizable analysis kind: %w", ec.sessionID, err)
	}

	result, err := builder.Build(ctx, kind, raw, ec.sessionID)
	if err != nil {
		return err
	}
	data, err := export.Bytes(result)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// exportArtifact fetches one of the backend's dedicated downloads. "data" is
// the originally uploaded table and exists for every kind; the rest are
// kind-specific, so the session's stored kind decides the endpoint.
func (ec *ExportCmd) exportArtifact(ctx context.Context, path string) error {
	if ec.artifact == "data" {
		dl, err := ec.client.DownloadSessionCSV(ctx, ec.sessionID)
		if err != nil {
			return err
		}
		return os.WriteFile(path, dl.Data, 0o644)
	}

	raw, err := ec.client.GetSession(ctx, ec.sessionID)
	if err != nil {
		return fmt.Errorf("failed to fetch session %d: %w", ec.sessionID, err)
	}
	kindName := resolve.String(raw, resolve.Common()[resolve.FieldKindName], "")
	kind, err := domain.ParseKind(kindName)
	if err != nil {
		return fmt.Errorf("session %d has no recognizable analysis kind: %w", ec.sessionID, err)
	}

	var dl *analysis.Download
	switch kind {
	case domain.KindPCA:
		dl, err = ec.client.DownloadPCA(ctx, ec.sessionID, ec.artifact)
	case domain.KindTimeseries:
		dl, err = ec.client.DownloadTimeseries(ctx, ec.sessionID, ec.artifact)
	default:
		return fmt.Errorf("%s sessions have no %q artifact", kind, ec.artifact)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, dl.Data, 0o644)
}
