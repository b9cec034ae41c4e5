package handlers

import (
	"net/http"

	"github.com/akithw/supermart-golang/internal/models"
	"github.com/gin-gonic/gin"
)

//
// --- Inventory Handlers ---
//

// GetProducts is the handler for GET /api/inventory.
func (h *Handlers) GetProducts(c *gin.Context) {
	products, err := h.Inventory.GetProducts(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("Received successfully", products))
}

// GetProductByID is the handler for GET /api/inventory/:id.
func (h *Handlers) GetProductByID(c *gin.Context) {
	product, err := h.Inventory.GetProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("Received successfully", product))
}

// GetVendorProducts is the handler for GET /api/inventory/vendor. Products
// come back grouped by sub category for the vendor dashboard.
func (h *Handlers) GetVendorProducts(c *gin.Context) {
	groups, err := h.Inventory.GetVendorProductsBySubCategory(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("Received successfully", groups))
}

type StockUpdateInput struct {
	StockCount *int `json:"stockCount" binding:"required"`
}

// UpdateStock is the handler for PUT /api/inventory/stock/update/:id (Vendor).
func (h *Handlers) UpdateStock(c *gin.Context) {
	var input StockUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("Invalid stock payload", err.Error()))
		return
	}

	product, err := h.Inventory.UpdateStock(c.Request.Context(), c.Param("id"), *input.StockCount)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("Stock updated successfully", product))
}

// DeleteProduct is the handler for DELETE /api/inventory/delete/product/:id.
// Refuses while any pending order line still references the product.
func (h *Handlers) DeleteProduct(c *gin.Context) {
	if err := h.Inventory.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("Product deleted successfully", nil))
}
