package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/linguaflow-backend/internal/pkg/errs"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func Created(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func Error(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// FromError maps the error taxonomy onto HTTP statuses and stable codes.
func FromError(c *gin.Context, err error) {
	var (
		upstream  *errs.UpstreamFetchError
		translate *errs.TranslationServiceError
		synth     *errs.SynthesisError
		storage   *errs.StorageError
	)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		Error(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, errs.ErrInvalidArgument):
		Error(c, http.StatusBadRequest, "invalid_argument", err)
	case errors.Is(err, errs.ErrEmptyResult):
		Error(c, http.StatusUnprocessableEntity, "empty_result", err)
	case errors.As(err, &upstream):
		Error(c, http.StatusBadGateway, "upstream_fetch_error", err)
	case errors.As(err, &translate):
		Error(c, http.StatusBadGateway, "translation_service_error", err)
	case errors.As(err, &synth):
		Error(c, http.StatusBadGateway, "synthesis_error", err)
	case errors.As(err, &storage):
		Error(c, http.StatusInternalServerError, "storage_error", err)
	default:
		Error(c, http.StatusInternalServerError, "internal", err)
	}
}
