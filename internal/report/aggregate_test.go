package report

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeInvoker returns scripted JSON payloads in call order.
type fakeInvoker struct {
	calls     int
	responses []string
	err       error
}

func (f *fakeInvoker) InvokeJSON(_ context.Context, _ string, _ *jsonschema.Schema) (json.RawMessage, error) {
	i := f.calls
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	return json.RawMessage(f.responses[i]), nil
}

func TestAggregate_AllBlankPagesSkipOracle(t *testing.T) {
	inv := &fakeInvoker{}
	agg, err := NewAggregator(inv, nil)
	require.NoError(t, err)

	rep, err := agg.Aggregate(context.Background(), []string{"", "   ", "\n\t"})
	require.NoError(t, err)
	assert.Equal(t, 0, inv.calls, "blank pages must not reach the model")
	assert.Equal(t, Header{}, rep.Header)
	assert.Equal(t, []string{}, rep.Table.Columns)
	assert.Equal(t, [][]string{}, rep.Table.Rows)
}

func TestAggregate_RowsAccumulateAcrossPages(t *testing.T) {
	inv := &fakeInvoker{responses: []string{
		`{"header": {}, "table": {"columns": ["P", "V"], "rows": [["d", "1"], ["l", "2"]]}}`,
		`{"header": {}, "table": {"columns": ["P", "V"], "rows": [["w", "3"]]}}`,
	}}
	agg, err := NewAggregator(inv, nil)
	require.NoError(t, err)

	rep, err := agg.Aggregate(context.Background(), []string{"page one", "page two"})
	require.NoError(t, err)
	assert.Equal(t, 2, inv.calls)
	assert.Len(t, rep.Table.Rows, 3)
	assert.Equal(t, [][]string{{"d", "1"}, {"l", "2"}, {"w", "3"}}, rep.Table.Rows)
}

func TestAggregate_ColumnsAdoptedFromFirstSupplier(t *testing.T) {
	inv := &fakeInvoker{responses: []string{
		`{"header": {}, "table": {"columns": [], "rows": [["early"]]}}`,
		`{"header": {}, "table": {"columns": ["C1", "C2"], "rows": [["a", "b"]]}}`,
		`{"header": {}, "table": {"columns": ["X", "Y"], "rows": [["c", "d"]]}}`,
	}}
	agg, err := NewAggregator(inv, nil)
	require.NoError(t, err)

	rep, err := agg.Aggregate(context.Background(), []string{"p1", "p2", "p3"})
	require.NoError(t, err)
	// Page 2 is the first to supply columns; page 3's differing columns are
	// ignored, but every page's rows survive.
	assert.Equal(t, []string{"C1", "C2"}, rep.Table.Columns)
	assert.Equal(t, [][]string{{"early"}, {"a", "b"}, {"c", "d"}}, rep.Table.Rows)
}

func TestAggregate_HeaderLastWriteWins(t *testing.T) {
	inv := &fakeInvoker{responses: []string{
		`{"header": {"X": "1", "A": "keep"}, "table": {"columns": [], "rows": []}}`,
		`{"header": {"X": "2"}, "table": {"columns": [], "rows": []}}`,
	}}
	agg, err := NewAggregator(inv, nil)
	require.NoError(t, err)

	rep, err := agg.Aggregate(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, "2", rep.Header["X"])
	assert.Equal(t, "keep", rep.Header["A"])
}

func TestAggregate_BlankPagesAmongContentPages(t *testing.T) {
	inv := &fakeInvoker{responses: []string{
		`{"header": {"doc": "42"}, "table": {"columns": ["C"], "rows": [["r1"]]}}`,
	}}
	agg, err := NewAggregator(inv, nil)
	require.NoError(t, err)

	rep, err := agg.Aggregate(context.Background(), []string{"", "content", "  "})
	require.NoError(t, err)
	assert.Equal(t, 1, inv.calls)
	assert.Equal(t, [][]string{{"r1"}}, rep.Table.Rows)
}

func TestAggregate_PageFailureAbortsWholeDocument(t *testing.T) {
	boom := errors.New("model exhausted")
	inv := &fakeInvoker{err: boom}
	agg, err := NewAggregator(inv, nil)
	require.NoError(t, err)

	_, err = agg.Aggregate(context.Background(), []string{"page one", "page two"})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	// No partial result and no further pages after the failure.
	assert.Equal(t, 1, inv.calls)
}
