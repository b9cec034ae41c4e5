package store

import (
	"context"
	"errors"

	"github.com/akithw/supermart-golang/internal/models"
)

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInsufficientStock is returned when a conditional stock decrement
	// would drive stock_count negative.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// LowStockAlert reports a product that dropped to or below its threshold
// while an order was being created. Computed inside the creating transaction
// so the stock value is the one the decrement produced.
type LowStockAlert struct {
	ProductID  string
	Name       string
	VendorID   string
	StockCount int
}

// OrderStore persists order aggregates.
type OrderStore interface {
	// CreateWithLines inserts the order and all its lines in one transaction,
	// decrementing each product's stock conditionally. Any line that would
	// drive stock negative rolls back the whole order.
	CreateWithLines(ctx context.Context, order models.Order, lines []models.OrderLine) ([]LowStockAlert, error)
	GetByID(ctx context.Context, id string) (models.Order, error)
	GetByOrderNo(ctx context.Context, orderNo string) (models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	ListByCustomer(ctx context.Context, customerNo string) ([]models.Order, error)
	ListByOrderNos(ctx context.Context, orderNos []string) ([]models.Order, error)
	ListCancelRequested(ctx context.Context) ([]models.Order, error)
	UpdateDeliveryAddress(ctx context.Context, id, address string) error
	SetCancelRequested(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, status models.OrderStatus) error
	SetStatusByOrderNo(ctx context.Context, orderNo string, status models.OrderStatus) error
	Cancel(ctx context.Context, id, comments string) error
}

// OrderLineStore is dumb line storage; order-level locking is the engine's job.
type OrderLineStore interface {
	GetByID(ctx context.Context, id string) (models.OrderLine, error)
	ListByOrderNo(ctx context.Context, orderNo string) ([]models.OrderLine, error)
	ListByVendor(ctx context.Context, vendorNo string) ([]models.OrderLine, error)
	ListByOrderAndVendor(ctx context.Context, orderNo, vendorNo string) ([]models.OrderLine, error)
	UpdateQty(ctx context.Context, id string, qty int) error
	Remove(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id, status string) error
	CountPendingByProduct(ctx context.Context, productNo string) (int, error)
}

// ProductStore persists inventory.
type ProductStore interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (models.Product, error)
	ListByVendor(ctx context.Context, vendorID string) ([]models.Product, error)
	// SetStock writes an absolute stock value; callers compute the new count.
	SetStock(ctx context.Context, id string, stockCount int) error
	Delete(ctx context.Context, id string) error
}

// NotificationStore is the external notification persistence contract.
type NotificationStore interface {
	Create(ctx context.Context, n models.Notification) error
	ListUnread(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// UserStore resolves users for display enrichment.
type UserStore interface {
	GetByID(ctx context.Context, id string) (models.User, error)
}

// MasterDataStore resolves category/subcategory display names.
type MasterDataStore interface {
	GetCategoryByID(ctx context.Context, id string) (models.Category, error)
	GetSubCategoryByID(ctx context.Context, id string) (models.SubCategory, error)
}
