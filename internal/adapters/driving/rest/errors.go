package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/menumem/internal/core/domain"
	"github.com/custodia-labs/menumem/internal/logger"
)

// statusFor maps a service error to an HTTP status and response body.
func statusFor(err error) (int, ErrorResponse) {
	var (
		extErr   *domain.ExtractionError
		valErr   *domain.ValidationError
		ocrErr   *domain.OCRError
		storeErr *domain.StoreError
	)

	switch {
	case errors.As(err, &extErr):
		details := extErr.Snippet
		if details == "" && extErr.Err != nil {
			details = extErr.Err.Error()
		}
		return http.StatusUnprocessableEntity, ErrorResponse{Error: extErr.Reason, Details: details}
	case errors.As(err, &valErr):
		return http.StatusBadRequest, ErrorResponse{Error: "invalid input", Details: valErr.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrorResponse{Error: "invalid input", Details: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Error: "not found", Details: err.Error()}
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, ErrorResponse{Error: "rate limited", Details: err.Error()}
	case errors.Is(err, domain.ErrLLMUnavailable), errors.Is(err, domain.ErrOCRUnavailable):
		return http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()}
	case errors.As(err, &ocrErr):
		return http.StatusBadGateway, ErrorResponse{Error: "ocr failure", Details: ocrErr.Error()}
	case errors.As(err, &storeErr):
		return http.StatusInternalServerError, ErrorResponse{Error: "store failure", Details: storeErr.Error()}
	case errors.Is(err, domain.ErrNotImplemented):
		return http.StatusNotImplemented, ErrorResponse{Error: err.Error()}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, ErrorResponse{Error: "timeout", Details: err.Error()}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "internal error", Details: err.Error()}
	}
}

func writeError(c *gin.Context, err error) {
	status, body := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("%s %s: %v", c.Request.Method, c.FullPath(), err)
	} else {
		logger.Debug("%s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.AbortWithStatusJSON(status, body)
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
}
