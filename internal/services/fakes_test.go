package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/akithw/supermart-golang/internal/models"
	"github.com/akithw/supermart-golang/internal/store"
)

// In-memory store implementations for service tests. They honour the same
// contracts as the MySQL stores, including the conditional stock decrement
// and its rollback semantics.

type fakeOrderStore struct {
	mu     sync.Mutex
	orders map[string]models.Order
	lines  *fakeOrderLineStore

	products *fakeProductStore

	createErr error
}

func newFakeOrderStore(lines *fakeOrderLineStore, products *fakeProductStore) *fakeOrderStore {
	return &fakeOrderStore{
		orders:   map[string]models.Order{},
		lines:    lines,
		products: products,
	}
}

func (s *fakeOrderStore) CreateWithLines(_ context.Context, order models.Order, lines []models.OrderLine) ([]store.LowStockAlert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createErr != nil {
		return nil, s.createErr
	}

	// Walk the decrements against a working copy before applying any, so a
	// cart naming the same product twice is checked against the running
	// total, mirroring the transaction's sequential conditional updates.
	remaining := make(map[string]int, len(lines))
	for _, line := range lines {
		p, ok := s.products.items[line.ProductNo]
		if !ok {
			return nil, store.ErrNotFound
		}
		if _, seen := remaining[line.ProductNo]; !seen {
			remaining[line.ProductNo] = p.StockCount
		}
		if remaining[line.ProductNo] < line.Qty {
			return nil, fmt.Errorf("product %s: %w", line.ProductNo, store.ErrInsufficientStock)
		}
		remaining[line.ProductNo] -= line.Qty
	}

	var alerts []store.LowStockAlert
	for _, line := range lines {
		p := s.products.items[line.ProductNo]
		p.StockCount -= line.Qty
		p.IsPartOfPendingOrder = true
		s.products.items[line.ProductNo] = p
		if p.StockCount <= p.LowStockThreshold {
			alerts = append(alerts, store.LowStockAlert{
				ProductID:  p.ID,
				Name:       p.Name,
				VendorID:   p.VendorID,
				StockCount: p.StockCount,
			})
		}
	}

	s.orders[order.OrderID] = order
	for _, line := range lines {
		s.lines.items[line.OrderLineNo] = line
	}
	return alerts, nil
}

func (s *fakeOrderStore) GetByID(_ context.Context, id string) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return models.Order{}, store.ErrNotFound
	}
	return order, nil
}

func (s *fakeOrderStore) GetByOrderNo(_ context.Context, orderNo string) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.orders {
		if order.OrderNo == orderNo {
			return order, nil
		}
	}
	return models.Order{}, store.ErrNotFound
}

func (s *fakeOrderStore) List(_ context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Order, 0, len(s.orders))
	for _, order := range s.orders {
		out = append(out, order)
	}
	return out, nil
}

func (s *fakeOrderStore) ListByCustomer(_ context.Context, customerNo string) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	for _, order := range s.orders {
		if order.CustomerNo == customerNo {
			out = append(out, order)
		}
	}
	return out, nil
}

func (s *fakeOrderStore) ListByOrderNos(_ context.Context, orderNos []string) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	for _, no := range orderNos {
		for _, order := range s.orders {
			if order.OrderNo == no {
				out = append(out, order)
			}
		}
	}
	return out, nil
}

func (s *fakeOrderStore) ListCancelRequested(_ context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	for _, order := range s.orders {
		if order.IsCancelRequested && order.Status != models.OrderStatusCancelled {
			out = append(out, order)
		}
	}
	return out, nil
}

func (s *fakeOrderStore) UpdateDeliveryAddress(_ context.Context, id, address string) error {
	return s.mutate(id, func(o *models.Order) { o.DeliveryAddress = address })
}

func (s *fakeOrderStore) SetCancelRequested(_ context.Context, id string) error {
	return s.mutate(id, func(o *models.Order) { o.IsCancelRequested = true })
}

func (s *fakeOrderStore) SetStatus(_ context.Context, id string, status models.OrderStatus) error {
	return s.mutate(id, func(o *models.Order) { o.Status = status })
}

func (s *fakeOrderStore) SetStatusByOrderNo(ctx context.Context, orderNo string, status models.OrderStatus) error {
	order, err := s.GetByOrderNo(ctx, orderNo)
	if err != nil {
		return err
	}
	return s.SetStatus(ctx, order.OrderID, status)
}

func (s *fakeOrderStore) Cancel(_ context.Context, id, comments string) error {
	return s.mutate(id, func(o *models.Order) {
		o.Status = models.OrderStatusCancelled
		o.Comments = comments
	})
}

func (s *fakeOrderStore) mutate(id string, fn func(*models.Order)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return store.ErrNotFound
	}
	fn(&order)
	s.orders[id] = order
	return nil
}

type fakeOrderLineStore struct {
	mu    sync.Mutex
	items map[string]models.OrderLine
}

func newFakeOrderLineStore() *fakeOrderLineStore {
	return &fakeOrderLineStore{items: map[string]models.OrderLine{}}
}

func (s *fakeOrderLineStore) GetByID(_ context.Context, id string) (models.OrderLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line, ok := s.items[id]
	if !ok {
		return models.OrderLine{}, store.ErrNotFound
	}
	return line, nil
}

func (s *fakeOrderLineStore) ListByOrderNo(_ context.Context, orderNo string) ([]models.OrderLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.OrderLine
	for _, line := range s.items {
		if line.OrderNo == orderNo {
			out = append(out, line)
		}
	}
	return out, nil
}

func (s *fakeOrderLineStore) ListByVendor(_ context.Context, vendorNo string) ([]models.OrderLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.OrderLine
	for _, line := range s.items {
		if line.VendorNo == vendorNo {
			out = append(out, line)
		}
	}
	return out, nil
}

func (s *fakeOrderLineStore) ListByOrderAndVendor(_ context.Context, orderNo, vendorNo string) ([]models.OrderLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.OrderLine
	for _, line := range s.items {
		if line.OrderNo == orderNo && line.VendorNo == vendorNo {
			out = append(out, line)
		}
	}
	return out, nil
}

func (s *fakeOrderLineStore) UpdateQty(_ context.Context, id string, qty int) error {
	return s.mutate(id, func(l *models.OrderLine) {
		l.Qty = qty
		l.Total = l.UnitPrice * float64(qty)
	})
}

func (s *fakeOrderLineStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *fakeOrderLineStore) UpdateStatus(_ context.Context, id, status string) error {
	return s.mutate(id, func(l *models.OrderLine) { l.Status = status })
}

func (s *fakeOrderLineStore) CountPendingByProduct(_ context.Context, productNo string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, line := range s.items {
		if line.ProductNo == productNo && line.Status == models.LineStatusPending {
			count++
		}
	}
	return count, nil
}

func (s *fakeOrderLineStore) mutate(id string, fn func(*models.OrderLine)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	line, ok := s.items[id]
	if !ok {
		return store.ErrNotFound
	}
	fn(&line)
	s.items[id] = line
	return nil
}

type fakeProductStore struct {
	mu    sync.Mutex
	items map[string]models.Product
}

func newFakeProductStore(products ...models.Product) *fakeProductStore {
	s := &fakeProductStore{items: map[string]models.Product{}}
	for _, p := range products {
		s.items[p.ID] = p
	}
	return s
}

func (s *fakeProductStore) GetAll(_ context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, 0, len(s.items))
	for _, p := range s.items {
		out = append(out, p)
	}
	return out, nil
}

func (s *fakeProductStore) GetByID(_ context.Context, id string) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok {
		return models.Product{}, store.ErrNotFound
	}
	return p, nil
}

func (s *fakeProductStore) ListByVendor(_ context.Context, vendorID string) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Product
	for _, p := range s.items {
		if p.VendorID == vendorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeProductStore) SetStock(_ context.Context, id string, stockCount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok {
		return store.ErrNotFound
	}
	p.StockCount = stockCount
	s.items[id] = p
	return nil
}

func (s *fakeProductStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

type fakeUserStore struct {
	users map[string]models.User
}

func newFakeUserStore(users ...models.User) *fakeUserStore {
	s := &fakeUserStore{users: map[string]models.User{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) GetByID(_ context.Context, id string) (models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return u, nil
}

type fakeMasterDataStore struct {
	subCategories map[string]models.SubCategory
}

func (s *fakeMasterDataStore) GetCategoryByID(_ context.Context, id string) (models.Category, error) {
	return models.Category{}, store.ErrNotFound
}

func (s *fakeMasterDataStore) GetSubCategoryByID(_ context.Context, id string) (models.SubCategory, error) {
	sub, ok := s.subCategories[id]
	if !ok {
		return models.SubCategory{}, store.ErrNotFound
	}
	return sub, nil
}

// recordingNotifier captures queued side effects synchronously.
type recordingNotifier struct {
	mu            sync.Mutex
	notifications []models.Notification
	emails        []recordedEmail
}

type recordedEmail struct {
	to, subject, body string
}

func (n *recordingNotifier) QueueNotification(title, message, userID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = append(n.notifications, models.Notification{
		Title:   title,
		Message: message,
		UserID:  userID,
	})
}

func (n *recordingNotifier) QueueEmail(to, subject, htmlBody string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.emails = append(n.emails, recordedEmail{to: to, subject: subject, body: htmlBody})
}
