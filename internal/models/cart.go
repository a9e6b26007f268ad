package models

// CartLine is one (session, product) row; repeated adds increment Quantity
// rather than inserting a second line.
type CartLine struct {
	ID        int64  `json:"id"`
	SessionID string `json:"session_id"`
	ProductID int64  `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// CartItem is a cart line joined with the product fields the storefront
// renders. Price here is advisory; checkout re-reads it inside the
// transaction.
type CartItem struct {
	ProductID int64   `json:"product_id"`
	Quantity  int64   `json:"quantity"`
	Name      string  `json:"name"`
	ImageURL  string  `json:"image_url"`
	Price     float64 `json:"price"`
}

type AddCartItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int64 `json:"quantity" validate:"required,min=1,max=1000000000"`
}

type RemoveCartItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}
