package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/akithw/supermart-golang/internal/models"
)

type mysqlUserStore struct {
	db *sql.DB
}

// NewUserStore returns a MySQL-backed UserStore. Lookup only; account
// management belongs to the identity service.
func NewUserStore(db *sql.DB) UserStore {
	return &mysqlUserStore{db: db}
}

func (s *mysqlUserStore) GetByID(ctx context.Context, id string) (models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, role FROM users WHERE id = ?", id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Role)
	if err != nil {
		if err == sql.ErrNoRows {
			return u, ErrNotFound
		}
		return u, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}
