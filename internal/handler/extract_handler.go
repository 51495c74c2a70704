package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"veridoc/internal/pipeline"
	"veridoc/internal/service"
)

// ExtractHandler handles document extraction endpoints.
type ExtractHandler struct {
	extractionService service.ExtractionService
}

// NewExtractHandler creates a new ExtractHandler.
func NewExtractHandler(extractionService service.ExtractionService) *ExtractHandler {
	return &ExtractHandler{extractionService: extractionService}
}

// Extract handles POST /api/v1/extract
// @Summary Extract identity document fields
// @Description Classify an identity document image and extract its fields, with per-request model selection
// @Tags extraction
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document image (JPG, PNG, WebP, GIF, or BMP)"
// @Param classification_model formData string false "Model for the classification stage"
// @Param extraction_model formData string false "Model for the extraction stage"
// @Param run_validations formData boolean false "Run validation rules on the extracted record (default true)"
// @Success 200 {object} Response{data=domain.PipelineResult} "Extraction result"
// @Failure 400 {object} ErrorResponseBody "Missing file, unsupported type, or bad parameters"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 429 {object} ErrorResponseBody "Model providers rate limited"
// @Failure 502 {object} ErrorResponseBody "Model inference failed"
// @Router /extract [post]
func (h *ExtractHandler) Extract(c *gin.Context) {
	opts := pipeline.Options{
		ClassificationModel: c.PostForm("classification_model"),
		ExtractionModel:     c.PostForm("extraction_model"),
	}

	if v := c.PostForm("run_validations"); v != "" {
		runValidations, err := strconv.ParseBool(v)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_PARAMETER", "run_validations must be a boolean")
			return
		}
		opts.RunValidations = &runValidations
	}

	h.process(c, opts)
}

// ExtractSimple handles POST /api/v1/extract-simple
// @Summary Extract identity document fields with default settings
// @Description Classify and extract using the configured default models and validations on
// @Tags extraction
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document image (JPG, PNG, WebP, GIF, or BMP)"
// @Success 200 {object} Response{data=domain.PipelineResult} "Extraction result"
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 429 {object} ErrorResponseBody "Model providers rate limited"
// @Failure 502 {object} ErrorResponseBody "Model inference failed"
// @Router /extract-simple [post]
func (h *ExtractHandler) ExtractSimple(c *gin.Context) {
	h.process(c, pipeline.Options{})
}

func (h *ExtractHandler) process(c *gin.Context, opts pipeline.Options) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file")
		return
	}

	result, err := h.extractionService.Extract(c.Request.Context(), service.ExtractionInput{
		Image:    data,
		Filename: header.Filename,
		Options:  opts,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Models handles GET /api/v1/models
// @Summary List available vision models
// @Description List the models available for classification and extraction with pricing, plus the configured per-stage defaults
// @Tags extraction
// @Produce json
// @Success 200 {object} Response{data=ModelCatalog} "Model catalog"
// @Router /models [get]
func (h *ExtractHandler) Models(c *gin.Context) {
	classification, extraction := h.extractionService.Defaults()
	RespondOK(c, ModelCatalog{
		Models: h.extractionService.Models(),
		Defaults: StageDefaults{
			Classification: classification,
			Extraction:     extraction,
		},
	})
}
