package vision_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veridoc/internal/config"
	"veridoc/internal/domain"
	"veridoc/internal/port"
	"veridoc/internal/schema"
	"veridoc/internal/vision"
	"veridoc/internal/vision/fireworks"
)

const fireworksDefaultModel = "accounts/fireworks/models/qwen2p5-vl-32b-instruct"

func newFireworksTestClient(serverURL string) *fireworks.Client {
	cfg := &config.GatewayProviderConfig{
		Provider:    "fireworks",
		APIKey:      "test-fireworks-key",
		TimeoutSecs: 30,
	}
	return fireworks.NewClientWithEndpoint(cfg, serverURL)
}

func completionResponse(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{
				"message": map[string]interface{}{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]interface{}{
			"prompt_tokens":     100,
			"completion_tokens": 50,
			"total_tokens":      150,
		},
	}
}

func classifyTestInput() port.ClassifyInput {
	return port.ClassifyInput{
		Image:    []byte{0xFF, 0xD8, 0xFF, 0xE0},
		MIMEType: "image/jpeg",
	}
}

func extractTestInput() port.ExtractInput {
	return port.ExtractInput{
		Image:        []byte{0xFF, 0xD8, 0xFF, 0xE0},
		MIMEType:     "image/jpeg",
		DocumentType: domain.DocumentTypePassport,
		Essential: []schema.FieldSpec{
			{Name: "full_name", Type: schema.FieldTypeString, Required: true},
		},
		Metadata: []schema.FieldSpec{
			{Name: "passport_number", Type: schema.FieldTypeString, Required: true},
		},
	}
}

const extractionContent = `{
	"essential_fields": {"full_name": {"value": "JANE ALICE DOE", "confidence": 0.95}},
	"metadata": {"passport_number": {"value": "P1234567", "confidence": 0.92}},
	"extraction_notes": "clean scan"
}`

func TestFireworksClient_Classify_Success(t *testing.T) {
	classifyJSON := `{"document_type":"passport","confidence":0.95,"reasoning":"MRZ lines visible"}`

	var capturedReq map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-fireworks-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		err := json.NewDecoder(r.Body).Decode(&capturedReq)
		assert.NoError(t, err)

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(completionResponse(classifyJSON))
	}))
	defer server.Close()

	c := newFireworksTestClient(server.URL)

	result, err := c.Classify(context.Background(), classifyTestInput())

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, domain.DocumentTypePassport, result.DocumentType)
	assert.Equal(t, 0.95, result.Confidence)
	assert.Equal(t, fireworksDefaultModel, result.ModelUsed)
	assert.Equal(t, 100, result.Usage.PromptTokens)
	assert.Equal(t, 50, result.Usage.CompletionTokens)
	assert.Equal(t, 150, result.Usage.TotalTokens)

	// Verify top-level request structure
	assert.Equal(t, fireworksDefaultModel, capturedReq["model"])
	assert.Equal(t, float64(512), capturedReq["max_tokens"])
	assert.Equal(t, 0.1, capturedReq["temperature"])

	// Fireworks takes the schema inline under response_format
	respFmt := capturedReq["response_format"].(map[string]interface{})
	assert.Equal(t, "json_object", respFmt["type"])
	assert.Contains(t, respFmt, "schema")

	// Verify messages structure: image first, then prompt
	messages := capturedReq["messages"].([]interface{})
	require.Len(t, messages, 1)
	msg := messages[0].(map[string]interface{})
	assert.Equal(t, "user", msg["role"])

	content := msg["content"].([]interface{})
	require.Len(t, content, 2)

	imgBlock := content[0].(map[string]interface{})
	assert.Equal(t, "image_url", imgBlock["type"])
	imgURL := imgBlock["image_url"].(map[string]interface{})
	assert.Contains(t, imgURL["url"], "data:image/jpeg;base64,")

	textBlock := content[1].(map[string]interface{})
	assert.Equal(t, "text", textBlock["type"])
	assert.NotEmpty(t, textBlock["text"])
}

func TestFireworksClient_Classify_ModelOverride(t *testing.T) {
	classifyJSON := `{"document_type":"license","confidence":0.9,"reasoning":"state seal"}`

	var capturedModel string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqBody map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&reqBody)
		capturedModel, _ = reqBody["model"].(string)

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(completionResponse(classifyJSON))
	}))
	defer server.Close()

	c := newFireworksTestClient(server.URL)

	input := classifyTestInput()
	input.Model = "accounts/fireworks/models/llama-v3p2-90b-vision-instruct"

	result, err := c.Classify(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, input.Model, capturedModel)
	assert.Equal(t, input.Model, result.ModelUsed)
}

func TestFireworksClient_Extract_Success(t *testing.T) {
	var capturedReq map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := json.NewDecoder(r.Body).Decode(&capturedReq)
		assert.NoError(t, err)

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(completionResponse(extractionContent))
	}))
	defer server.Close()

	c := newFireworksTestClient(server.URL)

	result, err := c.Extract(context.Background(), extractTestInput())

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "JANE ALICE DOE", result.Essential["full_name"].StringValue())
	assert.Equal(t, "P1234567", result.Metadata["passport_number"].StringValue())
	assert.Equal(t, "clean scan", result.Notes)
	assert.Equal(t, 150, result.Usage.TotalTokens)

	// Extraction allows more output tokens than classification
	assert.Equal(t, float64(2048), capturedReq["max_tokens"])
}

func TestFireworksClient_RateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limit exceeded"}}`))
	}))
	defer server.Close()

	c := newFireworksTestClient(server.URL)

	result, err := c.Classify(context.Background(), classifyTestInput())

	assert.Nil(t, result)
	assert.Error(t, err)

	var rlErr *vision.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "fireworks", rlErr.Provider)
	assert.Equal(t, 30*time.Second, rlErr.RetryAfter)
	assert.Contains(t, rlErr.Err.Error(), "fireworks API error (status 429)")
}

func TestFireworksClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"internal server error"}}`))
	}))
	defer server.Close()

	c := newFireworksTestClient(server.URL)

	result, err := c.Classify(context.Background(), classifyTestInput())

	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "fireworks API error (status 500)")

	var rlErr *vision.RateLimitError
	assert.False(t, errors.As(err, &rlErr))
}

func TestFireworksClient_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"choices": []map[string]interface{}{}})
	}))
	defer server.Close()

	c := newFireworksTestClient(server.URL)

	result, err := c.Classify(context.Background(), classifyTestInput())

	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestFireworksClient_TruncatedOutput(t *testing.T) {
	resp := completionResponse(`{"document_type":"passp`)
	resp["choices"].([]map[string]interface{})[0]["finish_reason"] = "length"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	c := newFireworksTestClient(server.URL)

	result, err := c.Classify(context.Background(), classifyTestInput())

	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "output truncated")
}

func TestFireworksClient_InvalidJSONOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(completionResponse("Sorry, I cannot read this document."))
	}))
	defer server.Close()

	c := newFireworksTestClient(server.URL)

	result, err := c.Classify(context.Background(), classifyTestInput())

	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing LLM JSON output")
}

func TestFireworksClient_SchemaViolationOutput(t *testing.T) {
	// Valid JSON, but the document type is outside the classification enum
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(completionResponse(`{"document_type":"resume","confidence":0.9}`))
	}))
	defer server.Close()

	c := newFireworksTestClient(server.URL)

	result, err := c.Classify(context.Background(), classifyTestInput())

	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "does not match schema")
}

func TestFireworksClient_UnsupportedMIMEType(t *testing.T) {
	c := newFireworksTestClient("http://unused")

	input := classifyTestInput()
	input.MIMEType = "application/pdf"

	result, err := c.Classify(context.Background(), input)

	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported content type")
}

func TestFireworksClient_UsageTotalFallback(t *testing.T) {
	resp := completionResponse(`{"document_type":"passport","confidence":0.95}`)
	resp["usage"] = map[string]interface{}{
		"prompt_tokens":     80,
		"completion_tokens": 20,
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	c := newFireworksTestClient(server.URL)

	result, err := c.Classify(context.Background(), classifyTestInput())

	require.NoError(t, err)
	assert.Equal(t, 100, result.Usage.TotalTokens)
}

func TestFireworksClient_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := newFireworksTestClient(server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := c.Classify(ctx, classifyTestInput())

	assert.Nil(t, result)
	assert.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
