package gen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// geminiClient calls the Gemini generateContent endpoint directly.
type geminiClient struct {
	cfg    Config
	http   *http.Client
	apiKey string
	base   string
}

func newGeminiClient(cfg Config) (*geminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	return &geminiClient{
		cfg:    cfg,
		apiKey: cfg.APIKey,
		base:   cfg.BaseURL,
		http:   &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// overloadError marks a transient upstream overload worth retrying.
type overloadError struct {
	code   int
	status string
}

func (e *overloadError) Error() string {
	return fmt.Sprintf("generation service overloaded (%d %s)", e.code, e.status)
}

func (c *geminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenConfig{
			Temperature:     c.cfg.Temperature,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: c.cfg.MaxTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.base, c.cfg.Model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		if httpResp.StatusCode == http.StatusServiceUnavailable {
			return "", &overloadError{code: httpResp.StatusCode, status: "UNAVAILABLE"}
		}
		return "", fmt.Errorf("decode response (status %d): %w", httpResp.StatusCode, err)
	}

	if parsed.Error != nil {
		if parsed.Error.Code == http.StatusServiceUnavailable || parsed.Error.Status == "UNAVAILABLE" {
			return "", &overloadError{code: parsed.Error.Code, status: parsed.Error.Status}
		}
		return "", fmt.Errorf("generation API error (%s): %s", parsed.Error.Status, parsed.Error.Message)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
