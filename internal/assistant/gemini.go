package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/afos-pos/internal/config"
	"github.com/aaravmahajanofficial/afos-pos/internal/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type generateRequest struct {
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

type GeminiClient struct {
	httpClient  *http.Client
	apiKey      string
	endpoint    string
	model       string
	temperature float64
	system      string
}

// NewGeminiClient builds a client whose system instruction embeds inventory.
// An empty API key yields a client that always fails with ErrNoCredential.
func NewGeminiClient(cfg config.Assistant, inventory string) *GeminiClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &GeminiClient{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		apiKey:      cfg.APIKey,
		endpoint:    strings.TrimRight(cfg.Endpoint, "/"),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		system:      SystemInstruction(inventory),
	}
}

func (c *GeminiClient) Reply(ctx context.Context, history []models.ChatMessage, message string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoCredential
	}

	req := generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: c.system}}},
		GenerationConfig:  generationConfig{Temperature: c.temperature},
	}

	for _, msg := range history {
		req.Contents = append(req.Contents, content{Role: string(msg.Role), Parts: []part{{Text: msg.Text}}})
	}
	req.Contents = append(req.Contents, content{Role: string(models.ChatRoleUser), Parts: []part{{Text: message}}})

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode assistant request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.endpoint, c.model)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build assistant request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("assistant request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read assistant response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("assistant API error, status code: %d: %s", resp.StatusCode, apiErr.Error.Message)
		}

		return "", fmt.Errorf("assistant API error, status code: %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("failed to decode assistant response: %w", err)
	}

	var b strings.Builder
	if len(out.Candidates) > 0 {
		for _, p := range out.Candidates[0].Content.Parts {
			b.WriteString(p.Text)
		}
	}

	reply := strings.TrimSpace(b.String())
	if reply == "" {
		return "", ErrEmptyReply
	}

	return reply, nil
}
