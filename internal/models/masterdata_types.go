package models

// Category and SubCategory are master data, lookup-only from this service.

type Category struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type SubCategory struct {
	ID         string `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	CategoryID string `json:"categoryId" db:"category_id"`
}
