package httpserver

import (
	"errors"
	"net/http"

	"storefront/internal/domain"
	"storefront/internal/gateway"
	"storefront/internal/idempotency"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error string `json:"error"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAlreadyExists),
		errors.Is(err, domain.ErrTotalMismatch),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, idempotency.ErrInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrEmptyCart):
		return http.StatusUnprocessableEntity
	case gateway.IsRemote(err):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)
	msg := err.Error()
	switch status {
	case http.StatusInternalServerError:
		msg = "internal error"
	case http.StatusServiceUnavailable:
		msg = "store temporarily unavailable"
	}
	c.JSON(status, errorResponse{Error: msg})
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
}

// respond writes a gateway result and tags where the data came from.
func respond[T any](c *gin.Context, status int, res gateway.Result[T], body any) {
	c.Header("X-Data-Source", string(res.Source))
	c.JSON(status, body)
}
