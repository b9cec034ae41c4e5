package handlers

import (
	"net/http"
	"time"

	"github.com/akithw/supermart-golang/internal/models"
	"github.com/akithw/supermart-golang/internal/services"
	"github.com/gin-gonic/gin"
)

//
// --- Order Handlers ---
//

type CreateOrderInput struct {
	DeliveryAddress string              `json:"deliveryAddress" binding:"required"`
	OrderDate       *time.Time          `json:"orderDate"`
	OrderLines      []services.CartLine `json:"orderLines" binding:"required,min=1,dive"`
}

// CreateOrder is the handler for POST /api/order/create (Customer).
func (h *Handlers) CreateOrder(c *gin.Context) {
	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("Invalid order payload", err.Error()))
		return
	}

	orderDate := time.Now()
	if input.OrderDate != nil {
		orderDate = *input.OrderDate
	}

	order, err := h.Orders.CreateOrder(c.Request.Context(), userID(c), input.DeliveryAddress, orderDate, input.OrderLines)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.OK("Order created successfully", order))
}

// GetAllOrders is the handler for GET /api/order (CSR).
func (h *Handlers) GetAllOrders(c *gin.Context) {
	orders, err := h.Orders.GetAllOrders(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("Received successfully", orders))
}

// GetVendorOrders is the handler for GET /api/order/vendor.
func (h *Handlers) GetVendorOrders(c *gin.Context) {
	orders, err := h.Orders.GetVendorOrders(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	if len(orders) == 0 {
		c.JSON(http.StatusOK, models.Fail("No orders yet", "No orders"))
		return
	}
	c.JSON(http.StatusOK, models.OK("Received successfully", orders))
}

// GetOrderHistory is the handler for GET /api/order/history/:id (Customer).
func (h *Handlers) GetOrderHistory(c *gin.Context) {
	orders, err := h.Orders.GetOrderHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if len(orders) == 0 {
		c.JSON(http.StatusOK, models.Fail("No order history", "No orders"))
		return
	}
	c.JSON(http.StatusOK, models.OK("Received successfully", orders))
}

type UpdateOrderInput struct {
	DeliveryAddress string              `json:"deliveryAddress"`
	OrderLines      []services.LineEdit `json:"orderLines"`
}

// UpdateOrder is the handler for PUT /api/order/:id (Customer). Edits apply
// independently; the response reports per-line outcomes.
func (h *Handlers) UpdateOrder(c *gin.Context) {
	var input UpdateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("Invalid update payload", err.Error()))
		return
	}

	result, err := h.Orders.UpdateOrder(c.Request.Context(), c.Param("id"), input.DeliveryAddress, input.OrderLines)
	if err != nil {
		h.fail(c, err)
		return
	}

	if !result.AllApplied() {
		response := models.Fail("Update failed", result.Errors...)
		response.Data = result
		c.JSON(http.StatusOK, response)
		return
	}
	c.JSON(http.StatusOK, models.OK("Update successful", result))
}

// RequestCancellation is the handler for PUT /api/order/request/:id (Customer).
func (h *Handlers) RequestCancellation(c *gin.Context) {
	if err := h.Orders.RequestCancellation(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("Order cancellation request sent", nil))
}

type CancelOrderInput struct {
	Comments string `json:"comments"`
}

// ApproveCancellation is the handler for PUT /api/order/cancel/:id (CSR).
func (h *Handlers) ApproveCancellation(c *gin.Context) {
	var input CancelOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("Invalid cancel payload", err.Error()))
		return
	}

	if err := h.Orders.ApproveCancellation(c.Request.Context(), c.Param("id"), input.Comments); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("Order cancelled successfully", nil))
}

type OrderStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// SetOrderStatus is the handler for PUT /api/order/status/:id (CSR). Used for
// externally driven transitions such as Dispatched.
func (h *Handlers) SetOrderStatus(c *gin.Context) {
	var input OrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("Invalid status payload", err.Error()))
		return
	}

	if err := h.Orders.SetOrderStatus(c.Request.Context(), c.Param("id"), input.Status); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("Order status updated", nil))
}

// GetCancelRequestedOrders is the handler for GET /api/order/getCancell (CSR).
func (h *Handlers) GetCancelRequestedOrders(c *gin.Context) {
	orders, err := h.Orders.GetCancelRequestedOrders(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if len(orders) == 0 {
		c.JSON(http.StatusOK, models.OK("No orders to be cancelled", nil))
		return
	}
	c.JSON(http.StatusOK, models.OK("Orders to be cancelled", orders))
}
