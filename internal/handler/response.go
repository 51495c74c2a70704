package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"veridoc/internal/domain"
	"veridoc/internal/vision"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
// Rate limits are checked before inference failures because the pipeline
// wraps gateway errors, rate limits included, in InferenceError.
func MapDomainError(err error) (status int, code, msg string) {
	var rlErr *vision.RateLimitError
	var infErr *domain.InferenceError

	switch {
	case errors.Is(err, domain.ErrEmptyFile):
		return http.StatusBadRequest, "EMPTY_FILE", "uploaded file is empty"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: jpg, png, webp, gif, bmp"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrUnknownDocumentType):
		return http.StatusBadRequest, "UNKNOWN_DOCUMENT_TYPE", "no schema registered for the requested document type"
	case errors.Is(err, domain.ErrUnknownModel):
		return http.StatusBadRequest, "UNKNOWN_MODEL", "no pricing registered for the requested model"
	case errors.As(err, &rlErr):
		return http.StatusTooManyRequests, "RATE_LIMITED", "model providers are rate limited; retry later"
	case errors.As(err, &infErr):
		return http.StatusBadGateway, "INFERENCE_FAILED", fmt.Sprintf("document inference failed during %s", infErr.Stage)
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)

	var rlErr *vision.RateLimitError
	if errors.As(err, &rlErr) && rlErr.RetryAfter > 0 {
		c.Header("Retry-After", strconv.Itoa(int(rlErr.RetryAfter.Seconds())))
	}

	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
