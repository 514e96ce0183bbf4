package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

// fail maps a service error to a response: refused operations are 422,
// unknown items 404, anything else means the store let us down.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	var ve *models.ValidationError
	switch {
	case errors.Is(err, models.ErrItemNotFound):
		response.NotFound(w, err.Error())
	case errors.As(err, &ve):
		response.ValidationError(w, ve.Reason.Error(), ve.Fields)
	default:
		logger.WithCtx(r.Context()).Error("request failed", "error", err)
		response.Unavailable(w, "storage unavailable, please retry")
	}
}
