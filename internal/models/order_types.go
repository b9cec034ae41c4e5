package models

import "time"

// Order is the model for the 'orders' table. One row per customer checkout.
type Order struct {
	OrderID           string      `json:"orderId" db:"id"`
	OrderNo           string      `json:"orderNo" db:"order_no"`
	CustomerNo        string      `json:"customerNo" db:"customer_no"`
	DeliveryAddress   string      `json:"deliveryAddress" db:"delivery_address"`
	OrderDate         time.Time   `json:"orderDate" db:"order_date"`
	Status            OrderStatus `json:"status" db:"status"`
	IsCancelRequested bool        `json:"isCancelRequested" db:"is_cancel_requested"`
	Comments          string      `json:"comments,omitempty" db:"comments"`
}

// OrderLine is the model for the 'order_lines' table. Each line belongs to
// exactly one order and is fulfilled by exactly one vendor.
type OrderLine struct {
	OrderLineNo string  `json:"orderLineNo" db:"id"`
	ProductNo   string  `json:"productNo" db:"product_no"`
	OrderNo     string  `json:"orderNo" db:"order_no"`
	VendorNo    string  `json:"vendorNo" db:"vendor_no"`
	Status      string  `json:"status" db:"status"`
	Qty         int     `json:"qty" db:"qty"`
	UnitPrice   float64 `json:"unitPrice" db:"unit_price"`
	Total       float64 `json:"total" db:"total"`
}

// OrderLineDisplay enriches a line with product and vendor names for views.
type OrderLineDisplay struct {
	OrderLine
	ProductName string `json:"productName"`
	VendorName  string `json:"vendorName"`
}

// OrderDisplay is the order view returned to CSRs, vendors and customers.
type OrderDisplay struct {
	Order
	CustomerName string             `json:"customerName,omitempty"`
	OrderLines   []OrderLineDisplay `json:"orderLines"`
}
