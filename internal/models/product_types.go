package models

// Product is the model for the 'products' table.
type Product struct {
	ID                   string   `json:"id" db:"id"`
	Name                 string   `json:"name" db:"name"`
	Description          string   `json:"description" db:"description"`
	Category             string   `json:"category" db:"category_id"`
	SubCategory          string   `json:"subCategory" db:"sub_category_id"`
	Price                float64  `json:"price" db:"price"`
	Images               []string `json:"images" db:"images"` // stored as a JSON column
	Active               bool     `json:"active" db:"active"`
	StockCount           int      `json:"stockCount" db:"stock_count"`
	VendorID             string   `json:"vendorId" db:"vendor_id"`
	LowStockThreshold    int      `json:"lowStockThreshold" db:"low_stock_threshold"`
	IsPartOfPendingOrder bool     `json:"isPartOfPendingOrder" db:"is_part_of_pending_order"`

	// SubCategoryName is resolved from master data for display only.
	SubCategoryName string `json:"subCategoryName,omitempty" db:"-"`
}

// DefaultLowStockThreshold is applied when a product does not set its own.
const DefaultLowStockThreshold = 10
