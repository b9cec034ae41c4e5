package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/akithw/supermart-golang/internal/models"
	"github.com/akithw/supermart-golang/internal/store"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// InventoryService exposes stock views and mutations for vendors, plus the
// guarded product delete.
type InventoryService struct {
	products   store.ProductStore
	lines      store.OrderLineStore
	masterData store.MasterDataStore
	notifier   Notifier
	logger     *zap.Logger
}

func NewInventoryService(
	products store.ProductStore,
	lines store.OrderLineStore,
	masterData store.MasterDataStore,
	notifier Notifier,
	logger *zap.Logger,
) *InventoryService {
	return &InventoryService{
		products:   products,
		lines:      lines,
		masterData: masterData,
		notifier:   notifier,
		logger:     logger,
	}
}

// GetProducts returns every product with its stock level.
func (s *InventoryService) GetProducts(ctx context.Context) ([]models.Product, error) {
	return s.products.GetAll(ctx)
}

// GetProductByID returns one product.
func (s *InventoryService) GetProductByID(ctx context.Context, id string) (models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return product, ErrProductNotFound
		}
		return product, fmt.Errorf("load product: %w", err)
	}
	return product, nil
}

// GetVendorProductsBySubCategory groups a vendor's products by subcategory
// display name.
func (s *InventoryService) GetVendorProductsBySubCategory(ctx context.Context, vendorID string) (map[string][]models.Product, error) {
	products, err := s.products.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list vendor products: %w", err)
	}

	for i := range products {
		products[i].SubCategoryName = "Uncategorized"
		if sub, err := s.masterData.GetSubCategoryByID(ctx, products[i].SubCategory); err == nil {
			products[i].SubCategoryName = sub.Name
		}
	}

	return lo.GroupBy(products, func(p models.Product) string {
		return p.SubCategoryName
	}), nil
}

// UpdateStock writes an absolute stock value; callers compute the new count.
// The low-stock check always re-runs after the write, even when the value
// increased.
func (s *InventoryService) UpdateStock(ctx context.Context, productID string, stockCount int) (models.Product, error) {
	var product models.Product

	if stockCount < 0 {
		return product, fmt.Errorf("%w: stock count cannot be negative", ErrValidation)
	}

	if err := s.products.SetStock(ctx, productID, stockCount); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return product, ErrProductNotFound
		}
		return product, fmt.Errorf("set stock: %w", err)
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return product, fmt.Errorf("reload product: %w", err)
	}
	s.checkLowStock(product)
	return product, nil
}

// DeleteProduct removes a product unless an order line still references it
// with status Pending.
func (s *InventoryService) DeleteProduct(ctx context.Context, productID string) error {
	pending, err := s.lines.CountPendingByProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("count pending lines: %w", err)
	}
	if pending > 0 {
		return ErrProductInUse
	}

	if err := s.products.Delete(ctx, productID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (s *InventoryService) checkLowStock(product models.Product) {
	if product.StockCount > product.LowStockThreshold {
		return
	}
	s.notifier.QueueNotification(
		"Low Stock Alert",
		fmt.Sprintf("Stock for %s is low.\nCurrent stock count: %d", product.Name, product.StockCount),
		product.VendorID,
	)
	s.logger.Info("low stock",
		zap.String("productId", product.ID),
		zap.Int("stockCount", product.StockCount),
	)
}
