package domain

// CoordinatePoint is one named point of a two-dimensional projection: a row
// or column profile (correspondence), a score or loading (PCA), or a sample
// position (cluster). Points are owned by the result that contains them and
// are never mutated after construction.
type CoordinatePoint struct {
	Name string  `json:"name"`
	Dim1 float64 `json:"dimension_1"`
	Dim2 float64 `json:"dimension_2"`

	// NameOnly marks a point synthesized from a names-only fallback list.
	// Its dimensions carry no information; renderers show a dash, never a
	// zero, since zero is a valid coordinate.
	NameOnly bool `json:"name_only,omitempty"`
}
