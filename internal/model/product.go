package model

import (
	"slices"

	"github.com/tuanvumaihuynh/storefront/pkg/money"
)

type Tag struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type Product struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	ImageURL string      `json:"imageUrl"`
	Price    money.Money `json:"price"`
	Stock    int         `json:"stock"`
	Tags     []string    `json:"tags"`
}

// HasAnyTag reports whether the product carries at least one of tags.
func (p Product) HasAnyTag(tags []string) bool {
	for _, tag := range p.Tags {
		if slices.Contains(tags, tag) {
			return true
		}
	}
	return false
}

// InStock reports whether the product can be added to a cart.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// Clone returns a copy that shares no memory with p.
func (p Product) Clone() Product {
	p.Tags = slices.Clone(p.Tags)
	return p
}
