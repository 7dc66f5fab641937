package models

import "github.com/shopspring/decimal"

func init() {
	// The remote store speaks JSON numbers for prices.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a catalog item. Inside a cart, Quantity is the number of units held.
type Product struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Images      []string        `json:"images"`
	Quantity    int             `json:"quantity"`
}

// ProductInput is the body sent to create a product; the store assigns the id.
type ProductInput struct {
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Images      []string        `json:"images"`
	Quantity    int             `json:"quantity"`
}

// ProductPatch is a partial update; nil fields are not sent.
type ProductPatch struct {
	Title       *string          `json:"title,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty" validate:"omitempty,gte=0"`
	Category    *string          `json:"category,omitempty"`
	Description *string          `json:"description,omitempty"`
	Images      []string         `json:"images,omitempty"`
	Quantity    *int             `json:"quantity,omitempty"`
}

// ProductCollection is a full listing response from the store.
type ProductCollection struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

// Ack acknowledges a successful delete.
type Ack struct {
	Success bool `json:"success"`
}
