package controllers

import (
	"errors"
	"net/http"

	"laundrypro-backend/services"
	"laundrypro-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler exposes the laundry service over HTTP.
type Handler struct {
	service *services.LaundryService
	logger  *zap.Logger
}

func NewHandler(service *services.LaundryService, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "Laundry backend is running")
}

// respondServiceError maps service errors to HTTP statuses. notFound is only
// passed by lookups; other callers leave it empty. Storage failures are logged
// and reported generically.
func (h *Handler) respondServiceError(c *gin.Context, err error, notFound string) {
	if notFound == "" {
		notFound = "Not found"
	}
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrDuplicatePhone):
		utils.RespondWithError(c, http.StatusConflict, "Customer with this phone number already exists")
	case errors.Is(err, services.ErrReference):
		utils.RespondWithError(c, http.StatusBadRequest, "Referenced customer or ring slot does not exist")
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, notFound)
	default:
		h.logger.Error("request failed",
			zap.String("request_id", c.GetString("requestId")),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}
