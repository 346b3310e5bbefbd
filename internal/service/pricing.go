package service

import (
	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/storefront/internal/model"
	"github.com/tuanvumaihuynh/storefront/pkg/money"
)

var (
	TaxRate     = decimal.RequireFromString("0.10")
	DeliveryFee = money.MustParse("50.00")
)

// recalculate derives the cart amounts from the line totals. Every term is
// rounded before it is summed into the grand total.
func recalculate(cart *model.Cart) {
	subtotal := money.Zero
	for _, item := range cart.Items {
		subtotal = subtotal.Add(item.Total)
	}

	cart.Subtotal = subtotal
	cart.Tax = subtotal.MulRate(TaxRate)
	cart.DeliveryFee = DeliveryFee
	cart.Total = money.Sum(cart.Subtotal, cart.Tax, cart.DeliveryFee)
}
