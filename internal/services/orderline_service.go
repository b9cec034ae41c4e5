package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/akithw/supermart-golang/internal/models"
	"github.com/akithw/supermart-golang/internal/store"
	"go.uber.org/zap"
)

// OrderLineService updates individual lines and keeps the parent order's
// aggregate status in sync.
type OrderLineService struct {
	lines    store.OrderLineStore
	orders   store.OrderStore
	products store.ProductStore
	users    store.UserStore
	logger   *zap.Logger
}

func NewOrderLineService(
	lines store.OrderLineStore,
	orders store.OrderStore,
	products store.ProductStore,
	users store.UserStore,
	logger *zap.Logger,
) *OrderLineService {
	return &OrderLineService{
		lines:    lines,
		orders:   orders,
		products: products,
		users:    users,
		logger:   logger,
	}
}

// DeriveOrderStatus is the aggregate derivation rule: all lines Delivered
// means Delivered, at least one Delivered means Partially Delivered, and no
// delivered lines leave the order in its prior state.
func DeriveOrderStatus(current models.OrderStatus, lines []models.OrderLine) models.OrderStatus {
	if len(lines) == 0 {
		return current
	}

	delivered := 0
	for _, line := range lines {
		if line.Status == models.LineStatusDelivered {
			delivered++
		}
	}

	switch {
	case delivered == len(lines):
		return models.OrderStatusDelivered
	case delivered > 0:
		return models.OrderStatusPartiallyDelivered
	default:
		return current
	}
}

// UpdateLineStatus sets one line's status, then recomputes and persists the
// parent order's aggregate status. Terminal orders skip the recomputation;
// the line update itself still lands (vendor-side bookkeeping).
func (s *OrderLineService) UpdateLineStatus(ctx context.Context, lineID, newStatus string) error {
	if newStatus == "" {
		return fmt.Errorf("%w: status is required", ErrValidation)
	}

	if err := s.lines.UpdateStatus(ctx, lineID, newStatus); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrLineNotFound
		}
		return fmt.Errorf("update line status: %w", err)
	}

	line, err := s.lines.GetByID(ctx, lineID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrLineNotFound
		}
		return fmt.Errorf("load line: %w", err)
	}

	order, err := s.orders.GetByOrderNo(ctx, line.OrderNo)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("order %s: %w", line.OrderNo, ErrOrderNotFound)
		}
		return fmt.Errorf("load order: %w", err)
	}

	if order.Status.IsTerminal() {
		return nil
	}

	siblings, err := s.lines.ListByOrderNo(ctx, line.OrderNo)
	if err != nil {
		return fmt.Errorf("list sibling lines: %w", err)
	}

	derived := DeriveOrderStatus(order.Status, siblings)
	if derived == order.Status {
		return nil
	}

	if err := s.orders.SetStatusByOrderNo(ctx, line.OrderNo, derived); err != nil {
		return fmt.Errorf("persist aggregate status: %w", err)
	}
	s.logger.Info("order status derived from lines",
		zap.String("orderNo", line.OrderNo),
		zap.String("status", string(derived)),
	)
	return nil
}

// GetVendorLines returns all of a vendor's lines with display names.
func (s *OrderLineService) GetVendorLines(ctx context.Context, vendorNo string) ([]models.OrderLineDisplay, error) {
	lines, err := s.lines.ListByVendor(ctx, vendorNo)
	if err != nil {
		return nil, fmt.Errorf("list vendor lines: %w", err)
	}

	out := make([]models.OrderLineDisplay, 0, len(lines))
	for _, line := range lines {
		display := models.OrderLineDisplay{
			OrderLine:   line,
			ProductName: "Unknown Product",
			VendorName:  "Unknown Vendor",
		}
		if product, err := s.products.GetByID(ctx, line.ProductNo); err == nil {
			display.ProductName = product.Name
		}
		if vendor, err := s.users.GetByID(ctx, line.VendorNo); err == nil {
			display.VendorName = vendor.Name
		}
		out = append(out, display)
	}
	return out, nil
}
