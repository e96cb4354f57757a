package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/docuproc/inspection-reports/internal/llm"
)

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate implements llm.Generator for text-only prompts.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, []part{{Text: prompt}})
}

// GenerateVision implements llm.Generator for a prompt with a PNG attachment.
func (c *Client) GenerateVision(ctx context.Context, prompt string, imagePNG []byte) (string, error) {
	return c.generate(ctx, []part{
		{Text: prompt},
		{InlineData: &inlineData{
			MIMEType: "image/png",
			Data:     base64.StdEncoding.EncodeToString(imagePNG),
		}},
	})
}

func (c *Client) generate(ctx context.Context, parts []part) (string, error) {
	if c.cfg.APIKey == "" {
		return "", llm.ErrMissingAPIKey
	}

	url := fmt.Sprintf("%s/models/%s:generateContent",
		strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.Model)
	body := generateRequest{Contents: []content{{Parts: parts}}}
	headers := map[string]string{"x-goog-api-key": c.cfg.APIKey}

	raw, status, err := llm.SendJSON(ctx, c.httpClient, url, body, headers, c.logger)
	if err != nil {
		if status == http.StatusTooManyRequests || isQuotaError(raw) {
			return "", fmt.Errorf("%w: %v", llm.ErrRateLimited, err)
		}
		return "", fmt.Errorf("gemini call: %w", err)
	}

	var resp generateResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates in gemini response")
	}

	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

// isQuotaError sniffs the error payload for the RESOURCE_EXHAUSTED status
// Gemini reports when a quota runs out, which can arrive on statuses other
// than 429.
func isQuotaError(raw []byte) bool {
	if len(raw) == 0 {
		return false
	}
	var e struct {
		Error struct {
			Status string `json:"status"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &e); err != nil {
		return false
	}
	return e.Error.Status == "RESOURCE_EXHAUSTED"
}
