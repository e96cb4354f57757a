package report

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapToTemplate_ReshapesReport(t *testing.T) {
	inv := &fakeInvoker{responses: []string{
		`{"header": {"Part Number": "42"}, "table": {"columns": ["Dim", "Actual"], "rows": [["d1", "9.98"]]}}`,
	}}
	m, err := NewMapper(inv, nil)
	require.NoError(t, err)

	src := Report{
		Header: Header{"part": "42"},
		Table:  Table{Columns: []string{"c"}, Rows: [][]string{{"d1"}}},
	}
	out, err := m.MapToTemplate(context.Background(), "Part Number: ____", src)
	require.NoError(t, err)
	assert.Equal(t, 1, inv.calls)
	assert.Equal(t, "42", out.Header["Part Number"])
	assert.Equal(t, []string{"Dim", "Actual"}, out.Table.Columns)
}

func TestMapToTemplate_NormalizesNilFields(t *testing.T) {
	inv := &fakeInvoker{responses: []string{
		`{"header": {}, "table": {"columns": [], "rows": []}}`,
	}}
	m, err := NewMapper(inv, nil)
	require.NoError(t, err)

	out, err := m.MapToTemplate(context.Background(), "template", Report{})
	require.NoError(t, err)
	assert.NotNil(t, out.Header)
	assert.NotNil(t, out.Table.Columns)
	assert.NotNil(t, out.Table.Rows)
}

func TestPointQuery_Lookup(t *testing.T) {
	inv := &fakeInvoker{responses: []string{
		`{"parameter": "Overall Length", "value": "120.5 mm"}`,
	}}
	q, err := NewPointQuery(inv, nil)
	require.NoError(t, err)

	ans, err := q.Lookup(context.Background(), "Overall Length 120.5 mm", "Overall Length")
	require.NoError(t, err)
	assert.Equal(t, "Overall Length", ans.Parameter)
	assert.Equal(t, "120.5 mm", ans.Value)
}

func TestReportNormalize(t *testing.T) {
	var r Report
	r.Normalize()
	assert.NotNil(t, r.Header)
	assert.NotNil(t, r.Table.Columns)
	assert.NotNil(t, r.Table.Rows)
}
