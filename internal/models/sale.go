package models

import "time"

// Sale is the immutable header written once per committed checkout.
type Sale struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

// SaleLine snapshots name and price at checkout time so the historical
// record survives later product edits or deletions.
type SaleLine struct {
	ID        int64   `json:"id"`
	SaleID    int64   `json:"sale_id"`
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int64   `json:"quantity"`
}

type SaleDetail struct {
	Sale  Sale       `json:"sale"`
	Lines []SaleLine `json:"lines"`
}

type CheckoutResponse struct {
	SaleID int64 `json:"sale_id"`
}

type ProductSales struct {
	Name      string `json:"name"`
	TotalSold int64  `json:"total_sold"`
}
