package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultHFBaseURL = "https://api-inference.huggingface.co/models"

// HuggingFaceProvider summarizes text via the Hugging Face Inference API.
// A 503 response with an estimated_time body means the model is cold and
// maps to ErrModelLoading so the reducer can retry with backoff.
type HuggingFaceProvider struct {
	httpClient *http.Client
	baseURL    string
	model      string
	apiKey     string
}

func NewHuggingFaceProvider(httpClient *http.Client, apiKey, model string) *HuggingFaceProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &HuggingFaceProvider{
		httpClient: httpClient,
		baseURL:    DefaultHFBaseURL,
		model:      model,
		apiKey:     apiKey,
	}
}

// WithBaseURL overrides the API endpoint. Test hook.
func (p *HuggingFaceProvider) WithBaseURL(url string) *HuggingFaceProvider {
	p.baseURL = url
	return p
}

func (p *HuggingFaceProvider) Name() string {
	return "huggingface"
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MinLength int `json:"min_length"`
	MaxLength int `json:"max_length"`
}

type hfResult struct {
	SummaryText string `json:"summary_text"`
}

type hfError struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time"`
}

func (p *HuggingFaceProvider) Summarize(ctx context.Context, text string, minWords, maxWords int) (string, error) {
	payload, err := json.Marshal(hfRequest{
		Inputs: text,
		Parameters: hfParameters{
			MinLength: minWords,
			MaxLength: maxWords,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/%s", p.baseURL, p.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusServiceUnavailable {
		var apiErr hfError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.EstimatedTime > 0 {
			return "", fmt.Errorf("%w (estimated %.0fs)", ErrModelLoading, apiErr.EstimatedTime)
		}
		return "", fmt.Errorf("inference API unavailable: %s", string(body))
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("inference API error: %d %s", resp.StatusCode, string(body))
	}

	var results []hfResult
	if err := json.Unmarshal(body, &results); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(results) == 0 || results[0].SummaryText == "" {
		return "", fmt.Errorf("inference API returned no summary")
	}

	return results[0].SummaryText, nil
}
