package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"veridoc/internal/domain"
	"veridoc/internal/handler"
	"veridoc/internal/service"
	"veridoc/internal/vision"
	"veridoc/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var jpegImage = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46, 0x49, 0x46}

func successResult() *domain.PipelineResult {
	return &domain.PipelineResult{
		Status:                   domain.StatusSuccess,
		DocumentType:             domain.DocumentTypePassport,
		ClassificationConfidence: 0.92,
		Cost:                     domain.CostReport{TotalCost: 0.0021, Currency: "USD"},
	}
}

// multipartUpload builds a multipart body with an optional file part and any
// extra form fields.
func multipartUpload(t *testing.T, filename string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func postMultipart(path string, body *bytes.Buffer, contentType string, handle gin.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, path, body)
	c.Request.Header.Set("Content-Type", contentType)
	handle(c)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestExtractHandler_Extract_Success(t *testing.T) {
	svc := new(mocks.MockExtractionService)
	var captured service.ExtractionInput
	svc.On("Extract", mock.Anything, mock.AnythingOfType("service.ExtractionInput")).
		Run(func(args mock.Arguments) { captured = args.Get(1).(service.ExtractionInput) }).
		Return(successResult(), nil).Once()
	h := handler.NewExtractHandler(svc)

	body, contentType := multipartUpload(t, "passport.jpg", jpegImage, nil)
	w := postMultipart("/api/v1/extract", body, contentType, h.Extract)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "passport", data["document_type"])
	assert.Equal(t, "success", data["status"])

	assert.Equal(t, "passport.jpg", captured.Filename)
	assert.Equal(t, jpegImage, captured.Image)
	assert.Empty(t, captured.Options.ClassificationModel)
	assert.Nil(t, captured.Options.RunValidations)
	svc.AssertExpectations(t)
}

func TestExtractHandler_Extract_FormOptions(t *testing.T) {
	svc := new(mocks.MockExtractionService)
	var captured service.ExtractionInput
	svc.On("Extract", mock.Anything, mock.AnythingOfType("service.ExtractionInput")).
		Run(func(args mock.Arguments) { captured = args.Get(1).(service.ExtractionInput) }).
		Return(successResult(), nil).Once()
	h := handler.NewExtractHandler(svc)

	body, contentType := multipartUpload(t, "passport.jpg", jpegImage, map[string]string{
		"classification_model": "accounts/fireworks/models/llama-v3p2-11b-vision-instruct",
		"extraction_model":     "accounts/fireworks/models/qwen2p5-vl-32b-instruct",
		"run_validations":      "false",
	})
	w := postMultipart("/api/v1/extract", body, contentType, h.Extract)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "accounts/fireworks/models/llama-v3p2-11b-vision-instruct", captured.Options.ClassificationModel)
	assert.Equal(t, "accounts/fireworks/models/qwen2p5-vl-32b-instruct", captured.Options.ExtractionModel)
	require.NotNil(t, captured.Options.RunValidations)
	assert.False(t, *captured.Options.RunValidations)
}

func TestExtractHandler_Extract_InvalidRunValidations(t *testing.T) {
	svc := new(mocks.MockExtractionService)
	h := handler.NewExtractHandler(svc)

	body, contentType := multipartUpload(t, "passport.jpg", jpegImage, map[string]string{
		"run_validations": "banana",
	})
	w := postMultipart("/api/v1/extract", body, contentType, h.Extract)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_PARAMETER", resp.Error.Code)
	svc.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

func TestExtractHandler_Extract_MissingFile(t *testing.T) {
	svc := new(mocks.MockExtractionService)
	h := handler.NewExtractHandler(svc)

	body, contentType := multipartUpload(t, "", nil, map[string]string{"run_validations": "true"})
	w := postMultipart("/api/v1/extract", body, contentType, h.Extract)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "MISSING_FILE", resp.Error.Code)
	svc.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

func TestExtractHandler_Extract_ErrorMapping(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "empty file",
			err:            domain.ErrEmptyFile,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "EMPTY_FILE",
		},
		{
			name:           "unsupported type",
			err:            domain.ErrUnsupportedFileType,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "UNSUPPORTED_FILE_TYPE",
		},
		{
			name:           "too large",
			err:            domain.ErrFileTooLarge,
			expectedStatus: http.StatusRequestEntityTooLarge,
			expectedCode:   "FILE_TOO_LARGE",
		},
		{
			name:           "unknown model",
			err:            domain.ErrUnknownModel,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "UNKNOWN_MODEL",
		},
		{
			name:           "unknown document type",
			err:            domain.ErrUnknownDocumentType,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "UNKNOWN_DOCUMENT_TYPE",
		},
		{
			name:           "unexpected error",
			err:            errors.New("database on fire"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockExtractionService)
			svc.On("Extract", mock.Anything, mock.Anything).Return(nil, tt.err).Once()
			h := handler.NewExtractHandler(svc)

			body, contentType := multipartUpload(t, "passport.jpg", jpegImage, nil)
			w := postMultipart("/api/v1/extract", body, contentType, h.Extract)

			assert.Equal(t, tt.expectedStatus, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.expectedCode, resp.Error.Code)
		})
	}
}

// A rate limit buried under the stage wrapper still maps to 429 and carries
// the provider's retry hint.
func TestExtractHandler_Extract_RateLimited(t *testing.T) {
	svc := new(mocks.MockExtractionService)
	rateErr := vision.NewRateLimitError("all", errors.New("all providers rate limited"), 42)
	svc.On("Extract", mock.Anything, mock.Anything).
		Return(nil, domain.NewInferenceError(domain.StageClassification, rateErr)).Once()
	h := handler.NewExtractHandler(svc)

	body, contentType := multipartUpload(t, "passport.jpg", jpegImage, nil)
	w := postMultipart("/api/v1/extract", body, contentType, h.Extract)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "42", w.Header().Get("Retry-After"))
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "RATE_LIMITED", resp.Error.Code)
}

func TestExtractHandler_Extract_InferenceFailure(t *testing.T) {
	svc := new(mocks.MockExtractionService)
	svc.On("Extract", mock.Anything, mock.Anything).
		Return(nil, domain.NewInferenceError(domain.StageExtraction, errors.New("bad gateway"))).Once()
	h := handler.NewExtractHandler(svc)

	body, contentType := multipartUpload(t, "passport.jpg", jpegImage, nil)
	w := postMultipart("/api/v1/extract", body, contentType, h.Extract)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INFERENCE_FAILED", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "extraction")
	assert.Empty(t, w.Header().Get("Retry-After"))
}

// The simple endpoint ignores tuning fields and always runs with defaults.
func TestExtractHandler_ExtractSimple_IgnoresFormOptions(t *testing.T) {
	svc := new(mocks.MockExtractionService)
	var captured service.ExtractionInput
	svc.On("Extract", mock.Anything, mock.AnythingOfType("service.ExtractionInput")).
		Run(func(args mock.Arguments) { captured = args.Get(1).(service.ExtractionInput) }).
		Return(successResult(), nil).Once()
	h := handler.NewExtractHandler(svc)

	body, contentType := multipartUpload(t, "passport.jpg", jpegImage, map[string]string{
		"classification_model": "some-custom-model",
		"run_validations":      "false",
	})
	w := postMultipart("/api/v1/extract-simple", body, contentType, h.ExtractSimple)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, captured.Options.ClassificationModel)
	assert.Empty(t, captured.Options.ExtractionModel)
	assert.Nil(t, captured.Options.RunValidations)
}

func TestExtractHandler_Models(t *testing.T) {
	svc := new(mocks.MockExtractionService)
	svc.On("Models").Return([]domain.ModelInfo{
		{ID: "model-a", Name: "Model A", InputCostPer1M: 0.9, OutputCostPer1M: 0.9},
		{ID: "model-b", Name: "Model B", InputCostPer1M: 0.22, OutputCostPer1M: 0.88},
	}).Once()
	svc.On("Defaults").Return("model-b", "model-a").Once()
	h := handler.NewExtractHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/models", nil)
	h.Models(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                 `json:"success"`
		Data    handler.ModelCatalog `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data.Models, 2)
	assert.Equal(t, "model-a", resp.Data.Models[0].ID)
	assert.Equal(t, "model-b", resp.Data.Defaults.Classification)
	assert.Equal(t, "model-a", resp.Data.Defaults.Extraction)
	svc.AssertExpectations(t)
}
