package report

// BuildReportSchema returns the JSON-Schema (draft 2020-12 subset) every
// model response carrying a {header, table} payload must satisfy. Row
// widths are deliberately unconstrained relative to the column count.
func BuildReportSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"header", "table"},
		"properties": map[string]any{
			"header": map[string]any{
				"type":                 "object",
				"additionalProperties": map[string]any{"type": "string"},
			},
			"table": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"required":             []string{"columns", "rows"},
				"properties": map[string]any{
					"columns": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
					"rows": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
					},
				},
			},
		},
	}
}

// BuildPointAnswerSchema returns the schema for point-label query responses.
func BuildPointAnswerSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"parameter", "value"},
		"properties": map[string]any{
			"parameter": map[string]any{"type": "string"},
			"value":     map[string]any{"type": "string"},
		},
	}
}
