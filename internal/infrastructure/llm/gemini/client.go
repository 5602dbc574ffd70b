package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/LoriCiv/ten99/internal/core/domain"
	"github.com/LoriCiv/ten99/internal/infrastructure/resilience"
)

type Client struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(baseURL, model, apiKey string, executor *resilience.Executor) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		executor:   executor,
	}
}

// Parse asks the model to extract appointment details from free text. The
// model is constrained to a JSON response schema, so a successful call
// always yields a decodable object; fields the text does not mention come
// back empty. ID fields still have to be checked against the roster by the
// caller, the model is told not to guess but models guess anyway.
func (c *Client) Parse(
	ctx context.Context,
	text string,
	clients []domain.RosterEntry,
	contacts []domain.RosterEntry,
	year int,
) (*domain.AppointmentPrefill, error) {
	if c.apiKey == "" {
		return nil, domain.Validationf("gemini api key is not configured")
	}

	request := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]any{{"text": buildPrefillPrompt(text, clients, contacts, year)}}},
		},
		"generationConfig": map[string]any{
			"responseMimeType": "application/json",
			"responseSchema":   prefillSchema(),
			"temperature":      0.1,
		},
	}

	var raw string
	err := c.executor.Execute(ctx, "gemini.generate", func(ctx context.Context) error {
		var callErr error
		raw, callErr = c.generateContent(ctx, request)
		return callErr
	}, recordGeminiFailure)
	if err != nil {
		return nil, wrapRemote("generate prefill", err)
	}

	var prefill domain.AppointmentPrefill
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &prefill); err != nil {
		return nil, domain.WrapError(domain.ErrRemoteService, "parse prefill json", err)
	}
	return &prefill, nil
}

func (c *Client) generateContent(ctx context.Context, request map[string]any) (string, error) {
	path := fmt.Sprintf("/v1beta/models/%s:generateContent", c.model)

	var response struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := c.postJSON(ctx, path, request, &response, "generate"); err != nil {
		return "", err
	}
	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini generate: empty candidate list")
	}
	return strings.TrimSpace(response.Candidates[0].Content.Parts[0].Text), nil
}

func prefillSchema() map[string]any {
	str := map[string]any{"type": "STRING"}
	return map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"subject":           str,
			"date":              str,
			"time":              str,
			"endTime":           str,
			"durationInMinutes": map[string]any{"type": "INTEGER"},
			"notes":             str,
			"jobType":           str,
			"address":           str,
			"virtualLink":       str,
			"clientId":          str,
			"contactId":         str,
		},
	}
}

func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}
