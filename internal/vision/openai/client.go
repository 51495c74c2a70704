package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"veridoc/internal/config"
	"veridoc/internal/domain"
	"veridoc/internal/port"
	"veridoc/internal/schema"
	"veridoc/internal/vision"
)

const (
	apiURL = "https://api.openai.com/v1/chat/completions"

	defaultModel = "gpt-4o"

	classifyMaxTokens = 512
	extractMaxTokens  = 2048
	temperature       = 0.1
)

// Client implements port.ModelGateway using the OpenAI Chat Completions API.
type Client struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewClient creates an OpenAI-based model gateway from a provider config.
func NewClient(cfg *config.GatewayProviderConfig) *Client {
	return newClient(cfg, apiURL)
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint (for testing).
func NewClientWithEndpoint(cfg *config.GatewayProviderConfig, endpoint string) *Client {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.GatewayProviderConfig, endpoint string) *Client {
	model := cfg.DefaultModel
	if model == "" {
		model = defaultModel
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// resolveModel maps the requested model onto one this provider can serve.
// Fireworks catalog IDs mean nothing at OpenAI, so those requests get the
// configured default instead.
func (c *Client) resolveModel(requested string) string {
	if requested == "" || strings.HasPrefix(requested, "accounts/") {
		return c.model
	}
	return requested
}

func (c *Client) Classify(ctx context.Context, input port.ClassifyInput) (*port.ClassifyOutput, error) {
	model := c.resolveModel(input.Model)

	blocks, err := buildContentBlocks(input.Image, input.MIMEType, vision.ClassificationPrompt())
	if err != nil {
		return nil, fmt.Errorf("building content blocks: %w", err)
	}

	reqBody := requestBody(model, classifyMaxTokens, blocks, "document_classification", schema.ClassificationSchema())

	content, usage, err := c.complete(ctx, reqBody)
	if err != nil {
		return nil, err
	}

	out, err := vision.DecodeClassification(content)
	if err != nil {
		return nil, fmt.Errorf("parsing LLM JSON output: %w (raw: %s)", err, truncate(string(content), 500))
	}
	out.ModelUsed = model
	out.Usage = usage
	return out, nil
}

func (c *Client) Extract(ctx context.Context, input port.ExtractInput) (*port.ExtractOutput, error) {
	model := c.resolveModel(input.Model)

	prompt := vision.ExtractionPrompt(input.DocumentType, input.Essential, input.Metadata)
	blocks, err := buildContentBlocks(input.Image, input.MIMEType, prompt)
	if err != nil {
		return nil, fmt.Errorf("building content blocks: %w", err)
	}

	responseSchema := schema.ExtractionSchema(input.Essential, input.Metadata)
	reqBody := requestBody(model, extractMaxTokens, blocks, "document_extraction", responseSchema)

	content, usage, err := c.complete(ctx, reqBody)
	if err != nil {
		return nil, err
	}

	out, err := vision.DecodeExtraction(responseSchema, content)
	if err != nil {
		return nil, fmt.Errorf("parsing LLM JSON output: %w (raw: %s)", err, truncate(string(content), 500))
	}
	out.ModelUsed = model
	out.Usage = usage
	return out, nil
}

// requestBody builds an OpenAI chat completion request. OpenAI takes the
// response schema as a named json_schema response format.
func requestBody(model string, maxTokens int, blocks []map[string]interface{}, schemaName string, responseSchema map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"model":                 model,
		"max_completion_tokens": maxTokens,
		"temperature":           temperature,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": blocks,
			},
		},
		"response_format": map[string]interface{}{
			"type": "json_schema",
			"json_schema": map[string]interface{}{
				"name":   schemaName,
				"schema": responseSchema,
			},
		},
	}
}

func (c *Client) complete(ctx context.Context, reqBody map[string]interface{}) ([]byte, domain.UsageStats, error) {
	var usage domain.UsageStats

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, usage, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, usage, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, usage, fmt.Errorf("calling openai API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, usage, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("openai API error (status %d): %s", resp.StatusCode, string(respBody))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := vision.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, usage, vision.NewRateLimitError("openai", baseErr, retryAfter)
		}
		return nil, usage, baseErr
	}

	var apiResp apiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, usage, fmt.Errorf("unmarshaling response: %w", err)
	}

	if len(apiResp.Choices) == 0 {
		return nil, usage, fmt.Errorf("empty response from API: no choices")
	}
	if apiResp.Choices[0].FinishReason == "length" {
		return nil, usage, fmt.Errorf("output truncated (finish_reason: length): response exceeded output token limit")
	}

	usage = domain.UsageStats{
		PromptTokens:     apiResp.Usage.PromptTokens,
		CompletionTokens: apiResp.Usage.CompletionTokens,
		TotalTokens:      apiResp.Usage.TotalTokens,
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.PromptTokens + usage.CompletionTokens
	}

	return []byte(apiResp.Choices[0].Message.Content), usage, nil
}

func buildContentBlocks(image []byte, contentType, prompt string) ([]map[string]interface{}, error) {
	if _, ok := domain.AllowedContentTypes[contentType]; !ok {
		return nil, fmt.Errorf("unsupported content type for vision models: %s", contentType)
	}

	encoded := base64.StdEncoding.EncodeToString(image)
	dataURI := fmt.Sprintf("data:%s;base64,%s", contentType, encoded)

	return []map[string]interface{}{
		{
			"type": "image_url",
			"image_url": map[string]interface{}{
				"url": dataURI,
			},
		},
		{
			"type": "text",
			"text": prompt,
		},
	}, nil
}

// apiResponse models the OpenAI Chat Completions API response.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
