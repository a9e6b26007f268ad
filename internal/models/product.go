package models

import "time"

type Season string

const (
	SeasonRegular Season = "regular"
	SeasonHoliday Season = "holiday"
)

const (
	MaxProductPrice    float64 = 10_000_000
	MaxProductQuantity int64   = 1_000_000_000
)

type Product struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"image_url"`
	Price     float64   `json:"price"`
	Quantity  int64     `json:"quantity"`
	Season    Season    `json:"season"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateProductRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=200"`
	ImageURL string  `json:"image_url" validate:"required,url"`
	Price    float64 `json:"price" validate:"required,gt=0,lte=10000000"`
	Quantity *int64  `json:"quantity" validate:"required,gte=0,lte=1000000000"`
	Season   Season  `json:"season" validate:"required,oneof=regular holiday"`
}

// Product edits are full replacements, matching the admin form.
type UpdateProductRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=200"`
	ImageURL string  `json:"image_url" validate:"required,url"`
	Price    float64 `json:"price" validate:"required,gt=0,lte=10000000"`
	Quantity *int64  `json:"quantity" validate:"required,gte=0,lte=1000000000"`
	Season   Season  `json:"season" validate:"required,oneof=regular holiday"`
}
