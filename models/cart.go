package models

import (
	"encoding/json"
	"time"
)

// Cart is a shopping cart held by the remote store. Products are line items
// carrying their in-cart quantity; at most one line item per product id.
type Cart struct {
	ID       int       `json:"id"`
	UserID   int       `json:"userId"`
	Date     string    `json:"date"`
	Products []Product `json:"products"`
}

// CartInput is the body sent to create a cart.
type CartInput struct {
	UserID   int       `json:"userId"`
	Date     string    `json:"date"`
	Products []Product `json:"products"`
}

// CartPatch is a partial cart update. A non-nil Products slice is always sent,
// even when empty, so removing the last item reaches the store. A patch with
// every field set is a full replace.
type CartPatch struct {
	ID       *int
	UserID   *int
	Date     *string
	Products []Product
}

func (p CartPatch) MarshalJSON() ([]byte, error) {
	body := struct {
		ID       *int       `json:"id,omitempty"`
		UserID   *int       `json:"userId,omitempty"`
		Date     *string    `json:"date,omitempty"`
		Products *[]Product `json:"products,omitempty"`
	}{
		ID:     p.ID,
		UserID: p.UserID,
		Date:   p.Date,
	}
	if p.Products != nil {
		body.Products = &p.Products
	}
	return json.Marshal(body)
}

func (p *CartPatch) UnmarshalJSON(data []byte) error {
	var body struct {
		ID       *int       `json:"id"`
		UserID   *int       `json:"userId"`
		Date     *string    `json:"date"`
		Products *[]Product `json:"products"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}
	p.ID = body.ID
	p.UserID = body.UserID
	p.Date = body.Date
	p.Products = nil
	if body.Products != nil {
		p.Products = *body.Products
		if p.Products == nil {
			p.Products = []Product{}
		}
	}
	return nil
}

// CartCollection is a full cart listing response from the store.
type CartCollection struct {
	Carts []Cart `json:"carts"`
	Total int    `json:"total"`
	Skip  int    `json:"skip"`
	Limit int    `json:"limit"`
}

// CartItemRequest is the inbound add-to-cart body.
type CartItemRequest struct {
	ID       int `json:"id" validate:"gte=0"`
	Quantity int `json:"quantity" validate:"gte=0"`
}

// LineItem builds the product line item added to a cart. Catalog fields are
// left blank; the store fills them in.
func (r CartItemRequest) LineItem() Product {
	return Product{
		ID:       r.ID,
		Images:   []string{},
		Quantity: r.Quantity,
	}
}

// Cart event types.
const (
	CartEventItemAdded   = "cart.item_added"
	CartEventItemRemoved = "cart.item_removed"
	CartEventCleared     = "cart.cleared"
)

// CartEvent is published after a successful cart mutation.
type CartEvent struct {
	EventType string    `json:"event_type"`
	CartID    int       `json:"cart_id"`
	UserID    int       `json:"user_id"`
	ProductID int       `json:"product_id,omitempty"`
	Quantity  int       `json:"quantity,omitempty"`
	ItemCount int       `json:"item_count"`
	Timestamp time.Time `json:"timestamp"`
}

// ISODate formats t the way cart dates are stored: UTC, millisecond precision.
func ISODate(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
