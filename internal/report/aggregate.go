package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/docuproc/inspection-reports/internal/llm"
)

// Aggregator drives the model once per extracted page and merges the
// partial {header, table} results into one Report.
type Aggregator struct {
	inv    Invoker
	schema *jsonschema.Schema
	logger *slog.Logger
}

func NewAggregator(inv Invoker, logger *slog.Logger) (*Aggregator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	schema, err := llm.CompileSchema(BuildReportSchema())
	if err != nil {
		return nil, fmt.Errorf("compile report schema: %w", err)
	}
	return &Aggregator{inv: inv, schema: schema, logger: logger}, nil
}

// Aggregate processes pages strictly in order. Blank pages are skipped
// without a model call. Merge rules: header keys last-write-wins; columns
// adopted from the first page that supplies any; rows always appended.
// A page that exhausts retries fails the whole aggregation; no partial
// result survives.
func (a *Aggregator) Aggregate(ctx context.Context, pages []string) (Report, error) {
	start := time.Now()

	header := Header{}
	rows := [][]string{}
	var columns []string

	for i, page := range pages {
		pageNr := i + 1
		if strings.TrimSpace(page) == "" {
			a.logger.Debug("aggregate.page.blank", "page", pageNr)
			continue
		}

		raw, err := a.inv.InvokeJSON(ctx, BuildPagePrompt(page), a.schema)
		if err != nil {
			a.logger.Error("aggregate.page.failed", "page", pageNr, "error", err)
			return Report{}, fmt.Errorf("page %d: %w", pageNr, err)
		}

		var partial Report
		if err := json.Unmarshal(raw, &partial); err != nil {
			// Schema validation already passed; this shouldn't happen.
			return Report{}, fmt.Errorf("page %d: decode partial: %w", pageNr, err)
		}

		for k, v := range partial.Header {
			header[k] = v
		}
		if columns == nil && len(partial.Table.Columns) > 0 {
			columns = partial.Table.Columns
		}
		rows = append(rows, partial.Table.Rows...)

		a.logger.Info("aggregate.page.ok",
			"page", pageNr,
			"header_keys", len(partial.Header),
			"rows", len(partial.Table.Rows),
		)
	}

	if columns == nil {
		columns = []string{}
	}

	rep := Report{Header: header, Table: Table{Columns: columns, Rows: rows}}
	a.logger.Info("aggregate.ok",
		"pages", len(pages),
		"columns", len(columns),
		"rows", len(rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rep, nil
}
