package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/docuproc/inspection-reports/internal/llm"
)

// Mapper is the second model step: reshape an aggregated report to follow
// a blank template's structure.
type Mapper struct {
	inv    Invoker
	schema *jsonschema.Schema
	logger *slog.Logger
}

func NewMapper(inv Invoker, logger *slog.Logger) (*Mapper, error) {
	if logger == nil {
		logger = slog.Default()
	}
	schema, err := llm.CompileSchema(BuildReportSchema())
	if err != nil {
		return nil, fmt.Errorf("compile report schema: %w", err)
	}
	return &Mapper{inv: inv, schema: schema, logger: logger}, nil
}

// MapToTemplate asks the model to restructure rep according to the
// template's header fields and table columns.
func (m *Mapper) MapToTemplate(ctx context.Context, templateText string, rep Report) (Report, error) {
	rep.Normalize()
	src, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return Report{}, fmt.Errorf("encode source report: %w", err)
	}

	raw, err := m.inv.InvokeJSON(ctx, BuildMappingPrompt(templateText, src), m.schema)
	if err != nil {
		m.logger.Error("map.failed", "error", err)
		return Report{}, fmt.Errorf("map to template: %w", err)
	}

	var out Report
	if err := json.Unmarshal(raw, &out); err != nil {
		return Report{}, fmt.Errorf("decode mapped report: %w", err)
	}
	out.Normalize()

	m.logger.Info("map.ok",
		"header_keys", len(out.Header),
		"columns", len(out.Table.Columns),
		"rows", len(out.Table.Rows),
	)
	return out, nil
}
