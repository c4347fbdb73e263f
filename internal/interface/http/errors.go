package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-restaurant-orders/internal/application"
	"github.com/oksasatya/go-restaurant-orders/pkg/helpers"
	"github.com/oksasatya/go-restaurant-orders/pkg/response"
)

// writeError translates an application error into a response. fallback is
// the message used for unexpected failures; their detail is logged, never
// exposed.
func writeError(c *gin.Context, logger *logrus.Logger, err error, fallback string) {
	var notFound *application.ItemNotFoundError
	switch {
	case errors.As(err, &notFound):
		response.Error[any](c, http.StatusNotFound, "menu item not found", gin.H{"menuItem": notFound.Ref})
	case errors.Is(err, application.ErrInvalidRequest):
		response.Error[any](c, http.StatusBadRequest, "invalid request", err.Error())
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, application.ErrUsernameTaken):
		response.Error[any](c, http.StatusConflict, "username already taken", nil)
	case errors.Is(err, application.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, application.ErrUnavailable):
		response.Error[any](c, http.StatusServiceUnavailable, "not available", nil)
	default:
		if logger != nil {
			helpers.LogError(logger, fallback, err, logrus.Fields{
				"request_id": c.GetString("request_id"),
				"path":       c.FullPath(),
			})
		}
		response.Error[any](c, http.StatusInternalServerError, fallback, nil)
	}
}
