package model

import (
	"slices"

	"github.com/tuanvumaihuynh/storefront/pkg/money"
)

// CartItem is a cart line. Name, ImageURL, Price and Stock are a snapshot of
// the product taken on the first add.
type CartItem struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	ImageURL string      `json:"imageUrl"`
	Price    money.Money `json:"price"`
	Quantity int64       `json:"quantity"`
	Total    money.Money `json:"total"`
	Stock    int         `json:"stock"`
}

type Cart struct {
	Items       []CartItem  `json:"items"`
	Subtotal    money.Money `json:"subtotal"`
	Tax         money.Money `json:"tax"`
	DeliveryFee money.Money `json:"deliveryFee"`
	Total       money.Money `json:"total"`
}

// NewCart returns an empty cart with every amount at 0.00.
func NewCart() Cart {
	return Cart{Items: []CartItem{}}
}

// FindItem returns the index of the line for productID, or -1.
func (c Cart) FindItem(productID string) int {
	return slices.IndexFunc(c.Items, func(item CartItem) bool {
		return item.ID == productID
	})
}

// Clone returns a deep copy of c.
func (c Cart) Clone() Cart {
	c.Items = slices.Clone(c.Items)
	if c.Items == nil {
		c.Items = []CartItem{}
	}
	return c
}
