package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/akithw/supermart-golang/internal/models"
)

type mysqlOrderLineStore struct {
	db *sql.DB
}

// NewOrderLineStore returns a MySQL-backed OrderLineStore.
func NewOrderLineStore(db *sql.DB) OrderLineStore {
	return &mysqlOrderLineStore{db: db}
}

const lineColumns = "id, order_no, product_no, vendor_no, status, qty, unit_price, total"

func (s *mysqlOrderLineStore) GetByID(ctx context.Context, id string) (models.OrderLine, error) {
	var l models.OrderLine
	err := s.db.QueryRowContext(ctx,
		"SELECT "+lineColumns+" FROM order_lines WHERE id = ?", id,
	).Scan(&l.OrderLineNo, &l.OrderNo, &l.ProductNo, &l.VendorNo, &l.Status, &l.Qty, &l.UnitPrice, &l.Total)
	if err != nil {
		if err == sql.ErrNoRows {
			return l, ErrNotFound
		}
		return l, fmt.Errorf("query order line: %w", err)
	}
	return l, nil
}

func (s *mysqlOrderLineStore) ListByOrderNo(ctx context.Context, orderNo string) ([]models.OrderLine, error) {
	return s.list(ctx, "SELECT "+lineColumns+" FROM order_lines WHERE order_no = ?", orderNo)
}

func (s *mysqlOrderLineStore) ListByVendor(ctx context.Context, vendorNo string) ([]models.OrderLine, error) {
	return s.list(ctx, "SELECT "+lineColumns+" FROM order_lines WHERE vendor_no = ?", vendorNo)
}

func (s *mysqlOrderLineStore) ListByOrderAndVendor(ctx context.Context, orderNo, vendorNo string) ([]models.OrderLine, error) {
	return s.list(ctx, "SELECT "+lineColumns+" FROM order_lines WHERE order_no = ? AND vendor_no = ?", orderNo, vendorNo)
}

func (s *mysqlOrderLineStore) list(ctx context.Context, query string, args ...any) ([]models.OrderLine, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query order lines: %w", err)
	}
	defer rows.Close()

	var lines []models.OrderLine
	for rows.Next() {
		var l models.OrderLine
		if err := rows.Scan(&l.OrderLineNo, &l.OrderNo, &l.ProductNo, &l.VendorNo, &l.Status, &l.Qty, &l.UnitPrice, &l.Total); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (s *mysqlOrderLineStore) UpdateQty(ctx context.Context, id string, qty int) error {
	return s.exec(ctx, "UPDATE order_lines SET qty = ?, total = unit_price * ? WHERE id = ?", qty, qty, id)
}

func (s *mysqlOrderLineStore) Remove(ctx context.Context, id string) error {
	return s.exec(ctx, "DELETE FROM order_lines WHERE id = ?", id)
}

func (s *mysqlOrderLineStore) UpdateStatus(ctx context.Context, id, status string) error {
	return s.exec(ctx, "UPDATE order_lines SET status = ? WHERE id = ?", status, id)
}

func (s *mysqlOrderLineStore) CountPendingByProduct(ctx context.Context, productNo string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM order_lines WHERE product_no = ? AND status = ?",
		productNo, models.LineStatusPending,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count pending lines: %w", err)
	}
	return count, nil
}

func (s *mysqlOrderLineStore) exec(ctx context.Context, query string, args ...any) error {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		var exists int
		if err := s.db.QueryRowContext(ctx, "SELECT 1 FROM order_lines WHERE id = ?", args[len(args)-1]).Scan(&exists); err != nil {
			return ErrNotFound
		}
	}
	return nil
}
