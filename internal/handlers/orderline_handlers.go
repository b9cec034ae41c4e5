package handlers

import (
	"net/http"

	"github.com/akithw/supermart-golang/internal/models"
	"github.com/gin-gonic/gin"
)

//
// --- Order Line Handlers ---
//

type LineStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// UpdateLineStatus is the handler for PUT /api/orderline/update/status/:id
// (Vendor). Marking a line Delivered recomputes the parent order status.
func (h *Handlers) UpdateLineStatus(c *gin.Context) {
	var input LineStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("Invalid status payload", err.Error()))
		return
	}

	if err := h.Lines.UpdateLineStatus(c.Request.Context(), c.Param("id"), input.Status); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("Order line status updated", nil))
}

// GetVendorLines is the handler for GET /api/orderline/vendor/:vendorNo.
func (h *Handlers) GetVendorLines(c *gin.Context) {
	lines, err := h.Lines.GetVendorLines(c.Request.Context(), c.Param("vendorNo"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if len(lines) == 0 {
		c.JSON(http.StatusOK, models.Fail("No order lines yet", "No order lines"))
		return
	}
	c.JSON(http.StatusOK, models.OK("Received successfully", lines))
}
