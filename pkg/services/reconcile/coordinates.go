// Package reconcile normalizes point-cloud payloads (row/column profiles,
// PCA scores and loadings, cluster projections) into ordered coordinate
// points regardless of which axis key names the backend emitted.
package reconcile

import (
	"github.com/de-tools/stat-atlas/pkg/models/domain"
	"github.com/de-tools/stat-atlas/pkg/services/resolve"
)

// AxisAliases lists the accepted key names for each canonical coordinate
// field, in resolution order.
type AxisAliases struct {
	Name []string
	Dim1 []string
	Dim2 []string
}

// DefaultAxes covers every axis spelling observed across backend versions.
func DefaultAxes() AxisAliases {
	return AxisAliases{
		Name: []string{"name", "sample_name", "variable_name", "label"},
		Dim1: []string{"dimension_1", "pc1", "x", "dim1"},
		Dim2: []string{"dimension_2", "pc2", "y", "dim2"},
	}
}

// Points turns a raw point list into ordered CoordinatePoints.
//
// When primary is non-empty each entry is mapped through the field resolver
// using the axis aliases; entries keep their position even when duplicated
// or malformed, because the backend's ordering is authoritative for index
// alignment with other per-sample arrays. When primary is empty but
// fallbackNames is not, one name-only point per name is emitted; its
// dimensions are a placeholder, not a zero coordinate. Both empty yields an
// empty list, and the consuming view must render an explicit no-data state.
func Points(primary []any, fallbackNames []string, axes AxisAliases) []domain.CoordinatePoint {
	if len(primary) > 0 {
		points := make([]domain.CoordinatePoint, 0, len(primary))
		for _, entry := range primary {
			m, _ := entry.(map[string]any)
			points = append(points, domain.CoordinatePoint{
				Name: resolve.String(m, axes.Name, ""),
				Dim1: resolve.Float(m, axes.Dim1, 0),
				Dim2: resolve.Float(m, axes.Dim2, 0),
			})
		}
		return points
	}

	if len(fallbackNames) > 0 {
		points := make([]domain.CoordinatePoint, 0, len(fallbackNames))
		for _, name := range fallbackNames {
			points = append(points, domain.CoordinatePoint{Name: name, NameOnly: true})
		}
		return points
	}

	return []domain.CoordinatePoint{}
}
