package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/akithw/supermart-golang/internal/models"
)

type mysqlOrderStore struct {
	db *sql.DB
}

// NewOrderStore returns a MySQL-backed OrderStore.
func NewOrderStore(db *sql.DB) OrderStore {
	return &mysqlOrderStore{db: db}
}

const orderColumns = "id, order_no, customer_no, delivery_address, order_date, status, is_cancel_requested, comments"

func (s *mysqlOrderStore) CreateWithLines(ctx context.Context, order models.Order, lines []models.OrderLine) ([]LowStockAlert, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() // safety net, no-op after Commit

	orderQuery := `
		INSERT INTO orders (id, order_no, customer_no, delivery_address, order_date, status, is_cancel_requested, comments)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = tx.ExecContext(ctx, orderQuery,
		order.OrderID, order.OrderNo, order.CustomerNo, order.DeliveryAddress,
		order.OrderDate, string(order.Status), order.IsCancelRequested, nullIfEmpty(order.Comments),
	)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	lineQuery := `
		INSERT INTO order_lines (id, order_no, product_no, vendor_no, status, qty, unit_price, total)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	// Decrement only when enough stock remains; zero rows affected means the
	// line would drive stock negative and the whole order rolls back.
	stockQuery := `
		UPDATE products
		SET stock_count = stock_count - ?, is_part_of_pending_order = 1
		WHERE id = ? AND stock_count >= ?`

	var alerts []LowStockAlert
	for _, line := range lines {
		if _, err := tx.ExecContext(ctx, lineQuery,
			line.OrderLineNo, line.OrderNo, line.ProductNo, line.VendorNo,
			line.Status, line.Qty, line.UnitPrice, line.Total,
		); err != nil {
			return nil, fmt.Errorf("insert order line: %w", err)
		}

		result, err := tx.ExecContext(ctx, stockQuery, line.Qty, line.ProductNo, line.Qty)
		if err != nil {
			return nil, fmt.Errorf("decrement stock: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("decrement stock rows: %w", err)
		}
		if affected == 0 {
			return nil, fmt.Errorf("product %s: %w", line.ProductNo, ErrInsufficientStock)
		}

		// Re-read with the just-written value; later lines for the same
		// product see the running total.
		var alert LowStockAlert
		var threshold int
		err = tx.QueryRowContext(ctx,
			"SELECT id, name, vendor_id, stock_count, low_stock_threshold FROM products WHERE id = ?",
			line.ProductNo,
		).Scan(&alert.ProductID, &alert.Name, &alert.VendorID, &alert.StockCount, &threshold)
		if err != nil {
			return nil, fmt.Errorf("reload product: %w", err)
		}
		if alert.StockCount <= threshold {
			alerts = append(alerts, alert)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return alerts, nil
}

func (s *mysqlOrderStore) GetByID(ctx context.Context, id string) (models.Order, error) {
	return s.getOne(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = ?", id)
}

func (s *mysqlOrderStore) GetByOrderNo(ctx context.Context, orderNo string) (models.Order, error) {
	return s.getOne(ctx, "SELECT "+orderColumns+" FROM orders WHERE order_no = ?", orderNo)
}

func (s *mysqlOrderStore) getOne(ctx context.Context, query string, arg any) (models.Order, error) {
	var o models.Order
	var status string
	var comments sql.NullString

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&o.OrderID, &o.OrderNo, &o.CustomerNo, &o.DeliveryAddress,
		&o.OrderDate, &status, &o.IsCancelRequested, &comments,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return o, ErrNotFound
		}
		return o, fmt.Errorf("query order: %w", err)
	}

	o.Status, err = models.ToOrderStatus(status)
	if err != nil {
		return o, err
	}
	o.Comments = comments.String
	return o, nil
}

func (s *mysqlOrderStore) List(ctx context.Context) ([]models.Order, error) {
	return s.list(ctx, "SELECT "+orderColumns+" FROM orders ORDER BY order_date DESC")
}

func (s *mysqlOrderStore) ListByCustomer(ctx context.Context, customerNo string) ([]models.Order, error) {
	return s.list(ctx, "SELECT "+orderColumns+" FROM orders WHERE customer_no = ? ORDER BY order_date DESC", customerNo)
}

func (s *mysqlOrderStore) ListByOrderNos(ctx context.Context, orderNos []string) ([]models.Order, error) {
	if len(orderNos) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(orderNos)), ",")
	args := make([]any, len(orderNos))
	for i, no := range orderNos {
		args[i] = no
	}
	return s.list(ctx, "SELECT "+orderColumns+" FROM orders WHERE order_no IN ("+placeholders+") ORDER BY order_date DESC", args...)
}

func (s *mysqlOrderStore) ListCancelRequested(ctx context.Context) ([]models.Order, error) {
	return s.list(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE is_cancel_requested = 1 AND status <> ? ORDER BY order_date DESC",
		string(models.OrderStatusCancelled))
}

func (s *mysqlOrderStore) list(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		var status string
		var comments sql.NullString
		if err := rows.Scan(
			&o.OrderID, &o.OrderNo, &o.CustomerNo, &o.DeliveryAddress,
			&o.OrderDate, &status, &o.IsCancelRequested, &comments,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Status, err = models.ToOrderStatus(status)
		if err != nil {
			return nil, err
		}
		o.Comments = comments.String
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (s *mysqlOrderStore) UpdateDeliveryAddress(ctx context.Context, id, address string) error {
	return s.exec(ctx, "UPDATE orders SET delivery_address = ? WHERE id = ?", address, id)
}

func (s *mysqlOrderStore) SetCancelRequested(ctx context.Context, id string) error {
	return s.exec(ctx, "UPDATE orders SET is_cancel_requested = 1 WHERE id = ?", id)
}

func (s *mysqlOrderStore) SetStatus(ctx context.Context, id string, status models.OrderStatus) error {
	return s.exec(ctx, "UPDATE orders SET status = ? WHERE id = ?", string(status), id)
}

func (s *mysqlOrderStore) SetStatusByOrderNo(ctx context.Context, orderNo string, status models.OrderStatus) error {
	return s.exec(ctx, "UPDATE orders SET status = ? WHERE order_no = ?", string(status), orderNo)
}

func (s *mysqlOrderStore) Cancel(ctx context.Context, id, comments string) error {
	return s.exec(ctx, "UPDATE orders SET status = ?, comments = ? WHERE id = ?",
		string(models.OrderStatusCancelled), comments, id)
}

func (s *mysqlOrderStore) exec(ctx context.Context, query string, args ...any) error {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		// MySQL reports 0 for no-op updates too; treat a missing row and an
		// unchanged row the same way only after verifying existence.
		var exists int
		if err := s.db.QueryRowContext(ctx, "SELECT 1 FROM orders WHERE id = ? OR order_no = ?", args[len(args)-1], args[len(args)-1]).Scan(&exists); err != nil {
			return ErrNotFound
		}
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
