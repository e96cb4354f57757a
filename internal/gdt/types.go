// Package gdt analyzes Geometric Dimensioning and Tolerancing callouts:
// a cropped region of a drawing page goes to a vision model that reads the
// feature-control frame compartments.
package gdt

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrPageOutOfRange rejects page numbers before any rasterization or model
// call happens.
var ErrPageOutOfRange = errors.New("page number out of range")

// DatumRef is one datum reference compartment: a letter plus an optional
// material-condition modifier.
type DatumRef struct {
	Letter   string `json:"letter"`
	Modifier string `json:"modifier,omitempty"`
}

// Feature describes one feature-control-frame instance, compartments read
// left to right.
type Feature struct {
	Symbol            string     `json:"symbol"`
	Tolerance         string     `json:"tolerance"`
	Diameter          bool       `json:"diameter"`
	MaterialCondition string     `json:"material_condition,omitempty"`
	Datums            []DatumRef `json:"datums"`
}

// VisionInvoker is the slice of the model layer this package depends on.
type VisionInvoker interface {
	InvokeVisionJSON(ctx context.Context, prompt string, imagePNG []byte, schema *jsonschema.Schema) (json.RawMessage, error)
}

// BuildFeatureSchema returns the JSON-Schema a feature response must satisfy.
func BuildFeatureSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"symbol", "tolerance", "diameter", "datums"},
		"properties": map[string]any{
			"symbol":             map[string]any{"type": "string", "minLength": 1},
			"tolerance":          map[string]any{"type": "string", "minLength": 1},
			"diameter":           map[string]any{"type": "boolean"},
			"material_condition": map[string]any{"type": "string"},
			"datums": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []string{"letter"},
					"properties": map[string]any{
						"letter":   map[string]any{"type": "string", "minLength": 1, "maxLength": 1},
						"modifier": map[string]any{"type": "string"},
					},
				},
			},
		},
	}
}
