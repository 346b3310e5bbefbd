package event

import (
	"context"
	"log/slog"

	"github.com/tuanvumaihuynh/storefront/pkg/money"
)

const TopicCartItemAdded = "cart.item_added"

type CartItemAddedEvent struct {
	ProductID    string      `json:"product_id"`
	Quantity     int64       `json:"quantity"`
	LineQuantity int64       `json:"line_quantity"`
	LineTotal    money.Money `json:"line_total"`
	ItemCount    int         `json:"item_count"`
	Subtotal     money.Money `json:"subtotal"`
	Total        money.Money `json:"total"`
}

func (s *Service) handleCartItemAddedEvent(ctx context.Context, ev CartItemAddedEvent) error {
	s.logger.InfoContext(ctx, "handling cart item added event",
		slog.String("product_id", ev.ProductID),
		slog.Int64("quantity", ev.Quantity),
		slog.Int("item_count", ev.ItemCount),
		slog.String("total", ev.Total.String()),
	)
	return nil
}
