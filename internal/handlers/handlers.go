package handlers

import (
	"errors"
	"net/http"

	"github.com/akithw/supermart-golang/internal/models"
	"github.com/akithw/supermart-golang/internal/services"
	"github.com/akithw/supermart-golang/internal/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers holds all dependencies for the HTTP layer.
type Handlers struct {
	Orders        *services.OrderService
	Lines         *services.OrderLineService
	Inventory     *services.InventoryService
	Notifications store.NotificationStore
	Logger        *zap.Logger
}

// fail maps service errors to the response envelope. Taxonomy errors become
// 4xx with their own message; anything else is a generic server error.
func (h *Handlers) fail(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrLineNotFound),
		errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrOrderLocked),
		errors.Is(err, services.ErrProductInUse):
		status = http.StatusConflict
	case errors.Is(err, services.ErrNoCancelRequest),
		errors.Is(err, services.ErrMissingComment),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrValidation):
		status = http.StatusBadRequest
	default:
		h.Logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Server error"))
		return
	}
	c.JSON(status, models.Fail(err.Error(), err.Error()))
}

func userID(c *gin.Context) string {
	return c.GetString("userID")
}
