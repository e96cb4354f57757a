// Package report holds the document-level data model and the model-driven
// steps that produce it: per-page aggregation, template mapping, and
// point-label lookup.
package report

import (
	"context"
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Header maps field labels to field values from the top of a document.
// Later pages' keys overwrite earlier ones on collision.
type Header map[string]string

// Table is an ordered set of columns plus rows of cell strings. Columns are
// fixed by the first page that supplies any; rows accumulate across pages.
// Row widths are not validated against the column count; exports render
// whatever is there, positionally.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Report is the unit returned to callers and accepted by the exporter.
// Immutable once returned; the server keeps no copy.
type Report struct {
	Header Header `json:"header"`
	Table  Table  `json:"table"`
}

// Normalize replaces nil collections so the JSON shape is always
// {header: {}, table: {columns: [], rows: []}}.
func (r *Report) Normalize() {
	if r.Header == nil {
		r.Header = Header{}
	}
	if r.Table.Columns == nil {
		r.Table.Columns = []string{}
	}
	if r.Table.Rows == nil {
		r.Table.Rows = [][]string{}
	}
}

// PointAnswer is the response to a point-label query.
type PointAnswer struct {
	Parameter string `json:"parameter"`
	Value     string `json:"value"`
}

// Invoker is the slice of the model layer this package depends on. The
// concrete implementation is *llm.Invoker; tests substitute a fake.
type Invoker interface {
	InvokeJSON(ctx context.Context, prompt string, schema *jsonschema.Schema) (json.RawMessage, error)
}
