package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/akithw/supermart-golang/internal/models"
)

type mysqlProductStore struct {
	db *sql.DB
}

// NewProductStore returns a MySQL-backed ProductStore.
func NewProductStore(db *sql.DB) ProductStore {
	return &mysqlProductStore{db: db}
}

const productColumns = "id, name, description, category_id, sub_category_id, price, images, active, stock_count, vendor_id, low_stock_threshold, is_part_of_pending_order"

func (s *mysqlProductStore) GetAll(ctx context.Context) ([]models.Product, error) {
	return s.list(ctx, "SELECT "+productColumns+" FROM products")
}

func (s *mysqlProductStore) GetByID(ctx context.Context, id string) (models.Product, error) {
	rows, err := s.list(ctx, "SELECT "+productColumns+" FROM products WHERE id = ?", id)
	if err != nil {
		return models.Product{}, err
	}
	if len(rows) == 0 {
		return models.Product{}, ErrNotFound
	}
	return rows[0], nil
}

func (s *mysqlProductStore) ListByVendor(ctx context.Context, vendorID string) ([]models.Product, error) {
	return s.list(ctx, "SELECT "+productColumns+" FROM products WHERE vendor_id = ?", vendorID)
}

func (s *mysqlProductStore) list(ctx context.Context, query string, args ...any) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		var images []byte
		var description sql.NullString
		if err := rows.Scan(
			&p.ID, &p.Name, &description, &p.Category, &p.SubCategory,
			&p.Price, &images, &p.Active, &p.StockCount, &p.VendorID,
			&p.LowStockThreshold, &p.IsPartOfPendingOrder,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.Description = description.String
		p.Images = []string{}
		if len(images) > 0 {
			_ = json.Unmarshal(images, &p.Images)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *mysqlProductStore) SetStock(ctx context.Context, id string, stockCount int) error {
	result, err := s.db.ExecContext(ctx, "UPDATE products SET stock_count = ? WHERE id = ?", stockCount, id)
	if err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		var exists int
		if err := s.db.QueryRowContext(ctx, "SELECT 1 FROM products WHERE id = ?", id).Scan(&exists); err != nil {
			return ErrNotFound
		}
	}
	return nil
}

func (s *mysqlProductStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
