// Package report renders session listings and diagnostics for the CLI in a
// formatted text form.
package report

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/stat-atlas/pkg/models/domain"
)

// Reporter outputs listings to the console.
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter; nil defaults to stdout.
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) HandleSessions(kind domain.AnalysisKind, sessions []domain.AnalysisSession) error {
	tmpl := `
Stored {{.Kind}} sessions ({{len .Sessions}})

{{range .Sessions}}#{{.ID}} {{.Name}}
  File: {{.Filename}} ({{.RowCount}}x{{.ColumnCount}})
{{- if not .AnalyzedAt.IsZero}}
  Analyzed: {{.AnalyzedAt.Format "2006-01-02 15:04"}}
{{- end}}
{{- if .PrimaryMetric}}
  {{.PrimaryMetric.Name}}: {{printf "%.4f" .PrimaryMetric.Value}}
{{- end}}
{{- if .SecondaryMetric}}
  {{.SecondaryMetric.Name}}: {{printf "%.4f" .SecondaryMetric.Value}}
{{- end}}

{{end}}`

	t, err := template.New("sessions").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, struct {
		Kind     domain.AnalysisKind
		Sessions []domain.AnalysisSession
	}{Kind: kind, Sessions: sessions})
}

func (c *Reporter) HandleCounts(counts map[domain.AnalysisKind]int) error {
	// Kinds() fixes the order; the map's iteration order never shows.
	for _, kind := range domain.Kinds() {
		if _, err := fmt.Fprintf(c.writer, "%-16s %d\n", kind, counts[kind]); err != nil {
			return err
		}
	}
	return nil
}
