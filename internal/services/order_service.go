package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akithw/supermart-golang/internal/models"
	"github.com/akithw/supermart-golang/internal/store"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Notifier queues fire-and-forget side effects. Enqueueing must never block
// or fail the calling operation.
type Notifier interface {
	QueueNotification(title, message, userID string)
	QueueEmail(to, subject, htmlBody string)
}

// OrderService is the order lifecycle engine: creation, batch edits, the
// cancellation handshake and the order views.
type OrderService struct {
	orders   store.OrderStore
	lines    store.OrderLineStore
	products store.ProductStore
	users    store.UserStore
	notifier Notifier
	orderNos *OrderNumberGenerator
	logger   *zap.Logger
}

func NewOrderService(
	orders store.OrderStore,
	lines store.OrderLineStore,
	products store.ProductStore,
	users store.UserStore,
	notifier Notifier,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:   orders,
		lines:    lines,
		products: products,
		users:    users,
		notifier: notifier,
		orderNos: NewOrderNumberGenerator(),
		logger:   logger,
	}
}

// CartLine is one entry of the checkout cart.
type CartLine struct {
	ProductNo string `json:"productNo" binding:"required"`
	Qty       int    `json:"qty" binding:"required,gt=0"`
}

// CreateOrder persists the order and one line per cart entry, decrementing
// each product's stock. Stock checks are both-or-nothing: a single short line
// rolls back the entire order. Low-stock notifications for affected vendors
// are queued after the order is committed.
func (s *OrderService) CreateOrder(ctx context.Context, customerNo, deliveryAddress string, orderDate time.Time, cart []CartLine) (models.Order, error) {
	var o models.Order

	if len(cart) == 0 {
		return o, fmt.Errorf("%w: order needs at least one line", ErrValidation)
	}

	order := models.Order{
		OrderID:         uuid.NewString(),
		OrderNo:         s.orderNos.Next(),
		CustomerNo:      customerNo,
		DeliveryAddress: deliveryAddress,
		OrderDate:       orderDate,
		Status:          models.OrderStatusPending,
	}

	lines := make([]models.OrderLine, 0, len(cart))
	for _, item := range cart {
		product, err := s.products.GetByID(ctx, item.ProductNo)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return o, fmt.Errorf("product %s: %w", item.ProductNo, ErrProductNotFound)
			}
			return o, fmt.Errorf("load product: %w", err)
		}

		lines = append(lines, models.OrderLine{
			OrderLineNo: uuid.NewString(),
			OrderNo:     order.OrderNo,
			ProductNo:   product.ID,
			VendorNo:    product.VendorID,
			Status:      models.LineStatusPending,
			Qty:         item.Qty,
			UnitPrice:   product.Price,
			Total:       product.Price * float64(item.Qty),
		})
	}

	alerts, err := s.orders.CreateWithLines(ctx, order, lines)
	if err != nil {
		if errors.Is(err, store.ErrInsufficientStock) {
			return o, fmt.Errorf("%w: %s", ErrInsufficientStock, err)
		}
		return o, fmt.Errorf("create order: %w", err)
	}

	for _, alert := range alerts {
		s.notifier.QueueNotification(
			"Low Stock Alert",
			fmt.Sprintf("Stock for %s is low.\nCurrent stock count: %d", alert.Name, alert.StockCount),
			alert.VendorID,
		)
	}

	s.logger.Info("order created",
		zap.String("orderNo", order.OrderNo),
		zap.String("customerNo", customerNo),
		zap.Int("lines", len(lines)),
	)
	return order, nil
}

// LineEdit is one entry of a batch order update: either a removal or a
// quantity change for a single line.
type LineEdit struct {
	OrderLineNo string `json:"orderLineNo" binding:"required"`
	Remove      bool   `json:"remove"`
	Qty         *int   `json:"qty"`
}

// EditOutcome records what happened to a single edit.
type EditOutcome struct {
	OrderLineNo string `json:"orderLineNo"`
	Applied     bool   `json:"applied"`
	Error       string `json:"error,omitempty"`
}

// UpdateResult carries per-item outcomes so callers can tell "all applied"
// from "some applied, some failed". Applied edits stay applied either way.
type UpdateResult struct {
	Outcomes []EditOutcome `json:"outcomes"`
	Errors   []string      `json:"errors,omitempty"`
}

// AllApplied reports whether every edit (and the address change) succeeded.
func (r UpdateResult) AllApplied() bool {
	return len(r.Errors) == 0
}

// UpdateOrder applies line edits and an optional delivery-address change.
// Rejected wholesale when the order is already dispatched; otherwise each
// edit is applied independently and failures are accumulated.
func (s *OrderService) UpdateOrder(ctx context.Context, orderID, deliveryAddress string, edits []LineEdit) (UpdateResult, error) {
	var result UpdateResult

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return result, ErrOrderNotFound
		}
		return result, fmt.Errorf("load order: %w", err)
	}

	if order.Status == models.OrderStatusDispatched {
		return result, ErrOrderLocked
	}

	for _, edit := range edits {
		outcome := EditOutcome{OrderLineNo: edit.OrderLineNo, Applied: true}

		var editErr error
		switch {
		case edit.Remove:
			editErr = s.lines.Remove(ctx, edit.OrderLineNo)
		case edit.Qty != nil:
			if *edit.Qty <= 0 {
				editErr = fmt.Errorf("%w: qty must be positive", ErrValidation)
			} else {
				editErr = s.lines.UpdateQty(ctx, edit.OrderLineNo, *edit.Qty)
			}
		default:
			editErr = fmt.Errorf("%w: edit is neither a removal nor a quantity change", ErrValidation)
		}

		if editErr != nil {
			outcome.Applied = false
			outcome.Error = editErr.Error()
			result.Errors = append(result.Errors, fmt.Sprintf("order line %s: %v", edit.OrderLineNo, editErr))
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	if deliveryAddress != "" && deliveryAddress != order.DeliveryAddress {
		if err := s.orders.UpdateDeliveryAddress(ctx, orderID, deliveryAddress); err != nil {
			result.Errors = append(result.Errors, "delivery address could not be updated")
		}
	}

	return result, nil
}

// RequestCancellation flags the order for CSR review. First half of the
// two-step cancellation handshake.
func (s *OrderService) RequestCancellation(ctx context.Context, orderID string) error {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("load order: %w", err)
	}

	if order.Status == models.OrderStatusDispatched {
		return ErrOrderLocked
	}

	return s.orders.SetCancelRequested(ctx, orderID)
}

// ApproveCancellation is the CSR half of the handshake. Requires a prior
// customer request and a non-empty comment; moves the order to Cancelled and
// queues a cancellation email plus a notification for the customer.
func (s *OrderService) ApproveCancellation(ctx context.Context, orderID, comment string) error {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("load order: %w", err)
	}

	if comment == "" {
		return ErrMissingComment
	}
	if !order.IsCancelRequested {
		return ErrNoCancelRequest
	}
	if !order.Status.CanTransitionTo(models.OrderStatusCancelled) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, models.OrderStatusCancelled)
	}

	if err := s.orders.Cancel(ctx, orderID, comment); err != nil {
		return fmt.Errorf("cancel order: %w", err)
	}

	if customer, err := s.users.GetByID(ctx, order.CustomerNo); err == nil {
		s.notifier.QueueEmail(
			customer.Email,
			"Order cancellation SuperMart",
			fmt.Sprintf("<h1>Your order is cancelled</h1><p>Your order %s has been cancelled as requested.</p>", order.OrderNo),
		)
	} else {
		s.logger.Warn("cancellation email skipped, customer lookup failed",
			zap.String("customerNo", order.CustomerNo), zap.Error(err))
	}

	s.notifier.QueueNotification(
		"Cancellation Alert",
		fmt.Sprintf("Your order %s is cancelled as your request.", order.OrderNo),
		order.CustomerNo,
	)
	return nil
}

// SetOrderStatus applies an externally driven transition (e.g. a CSR marking
// the order Dispatched), validated by the transition table.
func (s *OrderService) SetOrderStatus(ctx context.Context, orderID, newStatus string) error {
	status, err := models.ToOrderStatus(newStatus)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("load order: %w", err)
	}

	if !order.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, status)
	}

	return s.orders.SetStatus(ctx, orderID, status)
}

// GetAllOrders returns every order with its lines and the customer name. CSR view.
func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.OrderDisplay, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return s.buildDisplays(ctx, orders, "", true)
}

// GetOrderHistory returns a customer's orders with lines.
func (s *OrderService) GetOrderHistory(ctx context.Context, customerNo string) ([]models.OrderDisplay, error) {
	orders, err := s.orders.ListByCustomer(ctx, customerNo)
	if err != nil {
		return nil, fmt.Errorf("list customer orders: %w", err)
	}
	return s.buildDisplays(ctx, orders, "", false)
}

// GetVendorOrders returns the orders a vendor participates in, with only that
// vendor's lines attached.
func (s *OrderService) GetVendorOrders(ctx context.Context, vendorNo string) ([]models.OrderDisplay, error) {
	vendorLines, err := s.lines.ListByVendor(ctx, vendorNo)
	if err != nil {
		return nil, fmt.Errorf("list vendor lines: %w", err)
	}

	orderNos := lo.Uniq(lo.Map(vendorLines, func(l models.OrderLine, _ int) string {
		return l.OrderNo
	}))
	orders, err := s.orders.ListByOrderNos(ctx, orderNos)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return s.buildDisplays(ctx, orders, vendorNo, true)
}

// GetCancelRequestedOrders returns orders with a pending cancellation request.
func (s *OrderService) GetCancelRequestedOrders(ctx context.Context) ([]models.OrderDisplay, error) {
	orders, err := s.orders.ListCancelRequested(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cancel requests: %w", err)
	}
	return s.buildDisplays(ctx, orders, "", true)
}

// buildDisplays assembles the order views. When vendorNo is set only that
// vendor's lines are loaded and orders without any such lines are skipped.
func (s *OrderService) buildDisplays(ctx context.Context, orders []models.Order, vendorNo string, withCustomerName bool) ([]models.OrderDisplay, error) {
	displays := make([]models.OrderDisplay, 0, len(orders))
	for _, order := range orders {
		var (
			lines []models.OrderLine
			err   error
		)
		if vendorNo != "" {
			lines, err = s.lines.ListByOrderAndVendor(ctx, order.OrderNo, vendorNo)
		} else {
			lines, err = s.lines.ListByOrderNo(ctx, order.OrderNo)
		}
		if err != nil {
			return nil, fmt.Errorf("list lines for %s: %w", order.OrderNo, err)
		}
		if vendorNo != "" && len(lines) == 0 {
			continue
		}

		display := models.OrderDisplay{
			Order:      order,
			OrderLines: s.displayLines(ctx, lines),
		}
		if withCustomerName {
			display.CustomerName = "Unknown"
			if customer, err := s.users.GetByID(ctx, order.CustomerNo); err == nil {
				display.CustomerName = customer.Name
			}
		}
		displays = append(displays, display)
	}
	return displays, nil
}

func (s *OrderService) displayLines(ctx context.Context, lines []models.OrderLine) []models.OrderLineDisplay {
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
	return out
}
