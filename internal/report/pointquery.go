package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/docuproc/inspection-reports/internal/llm"
)

// PointQuery answers "what is the value of the parameter labeled X" against
// a document's extracted text.
type PointQuery struct {
	inv    Invoker
	schema *jsonschema.Schema
	logger *slog.Logger
}

func NewPointQuery(inv Invoker, logger *slog.Logger) (*PointQuery, error) {
	if logger == nil {
		logger = slog.Default()
	}
	schema, err := llm.CompileSchema(BuildPointAnswerSchema())
	if err != nil {
		return nil, fmt.Errorf("compile point answer schema: %w", err)
	}
	return &PointQuery{inv: inv, schema: schema, logger: logger}, nil
}

func (q *PointQuery) Lookup(ctx context.Context, docText, label string) (PointAnswer, error) {
	raw, err := q.inv.InvokeJSON(ctx, BuildPointQueryPrompt(docText, label), q.schema)
	if err != nil {
		q.logger.Error("pointquery.failed", "label", label, "error", err)
		return PointAnswer{}, fmt.Errorf("point query %q: %w", label, err)
	}

	var ans PointAnswer
	if err := json.Unmarshal(raw, &ans); err != nil {
		return PointAnswer{}, fmt.Errorf("decode point answer: %w", err)
	}
	q.logger.Info("pointquery.ok", "label", label, "found", ans.Value != "")
	return ans, nil
}
