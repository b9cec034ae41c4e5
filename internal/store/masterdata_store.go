package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/akithw/supermart-golang/internal/models"
)

type mysqlMasterDataStore struct {
	db *sql.DB
}

// NewMasterDataStore returns a MySQL-backed MasterDataStore.
func NewMasterDataStore(db *sql.DB) MasterDataStore {
	return &mysqlMasterDataStore{db: db}
}

func (s *mysqlMasterDataStore) GetCategoryByID(ctx context.Context, id string) (models.Category, error) {
	var c models.Category
	err := s.db.QueryRowContext(ctx, "SELECT id, name FROM categories WHERE id = ?", id).Scan(&c.ID, &c.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return c, ErrNotFound
		}
		return c, fmt.Errorf("query category: %w", err)
	}
	return c, nil
}

func (s *mysqlMasterDataStore) GetSubCategoryByID(ctx context.Context, id string) (models.SubCategory, error) {
	var sc models.SubCategory
	err := s.db.QueryRowContext(ctx, "SELECT id, name, category_id FROM sub_categories WHERE id = ?", id).Scan(&sc.ID, &sc.Name, &sc.CategoryID)
	if err != nil {
		if err == sql.ErrNoRows {
			return sc, ErrNotFound
		}
		return sc, fmt.Errorf("query sub category: %w", err)
	}
	return sc, nil
}
