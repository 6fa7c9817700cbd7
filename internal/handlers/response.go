package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iotsphere/iotsphere-backend/internal/datasource"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
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

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// RespondServiceError maps a service-layer error onto the wire. A store
// failure that could not be served from mock data is a 503; everything else
// is treated as a bad request.
func RespondServiceError(c *gin.Context, err error) {
	var storageErr *datasource.StorageError
	if errors.As(err, &storageErr) {
		RespondError(c, http.StatusServiceUnavailable, "storage_unavailable", err)
		return
	}
	RespondError(c, http.StatusBadRequest, "bad_request", err)
}
