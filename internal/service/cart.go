package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/tuanvumaihuynh/storefront/internal/apperr"
	"github.com/tuanvumaihuynh/storefront/internal/config"
	"github.com/tuanvumaihuynh/storefront/internal/event"
	"github.com/tuanvumaihuynh/storefront/internal/model"
	"github.com/tuanvumaihuynh/storefront/internal/repository"
	"github.com/tuanvumaihuynh/storefront/pkg/outbox"
	"github.com/tuanvumaihuynh/storefront/pkg/validator"
)

type AddToCartParams struct {
	ProductID string `validate:"required"`
	Quantity  int64  `validate:"gte=1"`
}

type CartService interface {
	AddToCart(ctx context.Context, params AddToCartParams) error
	GetCart(ctx context.Context) (model.Cart, error)
	// GetTotalItemCount counts distinct lines, not units.
	GetTotalItemCount(ctx context.Context) (int, error)
}

type cartService struct {
	cfg         config.Cart
	validator   validator.Validator
	catalogRepo repository.CatalogRepository
	cartRepo    repository.CartRepository

	// outboxMsgRepo is nil when cart events are disabled.
	outboxMsgRepo repository.OutboxMsgRepository
}

func NewCartService(
	cfg config.Cart,
	validator validator.Validator,
	catalogRepo repository.CatalogRepository,
	cartRepo repository.CartRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) CartService {
	return &cartService{
		cfg:           cfg,
		validator:     validator,
		catalogRepo:   catalogRepo,
		cartRepo:      cartRepo,
		outboxMsgRepo: outboxMsgRepo,
	}
}

func (s *cartService) AddToCart(ctx context.Context, params AddToCartParams) error {
	if err := s.validator.Validate(params); err != nil {
		return apperr.InvalidPayloadErr.WrapParent(err)
	}

	product, err := s.catalogRepo.GetProduct(ctx, params.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return apperr.ProductIDNotFoundErr.WrapParent(err)
		}
		return fmt.Errorf("catalog repository get product: %w", err)
	}

	if !product.InStock() {
		return apperr.OutOfStockErr
	}

	lineTotal := product.Price.Mul(params.Quantity)

	if err := s.cartRepo.Update(ctx, func(cart *model.Cart) error {
		var line model.CartItem
		if i := cart.FindItem(product.ID); i >= 0 {
			item := &cart.Items[i]
			if item.Quantity > math.MaxInt64-params.Quantity {
				return apperr.InvalidPayloadErr.WrapParent(
					fmt.Errorf("quantity overflow for product %s", product.ID))
			}
			item.Quantity += params.Quantity
			if s.cfg.RecomputeMergedTotal {
				item.Total = item.Price.Mul(item.Quantity)
			}
			line = *item
		} else {
			line = model.CartItem{
				ID:       product.ID,
				Name:     product.Name,
				ImageURL: product.ImageURL,
				Price:    product.Price,
				Quantity: params.Quantity,
				Total:    lineTotal,
				Stock:    product.Stock,
			}
			cart.Items = append(cart.Items, line)
		}

		recalculate(cart)

		if err := s.recordItemAdded(ctx, params.Quantity, line, *cart); err != nil {
			return fmt.Errorf("record cart item added: %w", err)
		}

		return nil
	}); err != nil {
		return fmt.Errorf("cart repository update: %w", err)
	}

	return nil
}

func (s *cartService) recordItemAdded(ctx context.Context, added int64, line model.CartItem, cart model.Cart) error {
	if s.outboxMsgRepo == nil {
		return nil
	}

	ev := event.CartItemAddedEvent{
		ProductID:    line.ID,
		Quantity:     added,
		LineQuantity: line.Quantity,
		LineTotal:    line.Total,
		ItemCount:    len(cart.Items),
		Subtotal:     cart.Subtotal,
		Total:        cart.Total,
	}

	evBytes, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	partitionKey := line.ID
	if err := s.outboxMsgRepo.CreateOutboxMsg(ctx, repository.CreateOutboxMsgParams{
		Topic:        event.TopicCartItemAdded,
		Headers:      outbox.BuildHeaders(ctx),
		Payload:      evBytes,
		PartitionKey: &partitionKey,
	}); err != nil {
		return fmt.Errorf("outbox msg repository create outbox msg: %w", err)
	}

	return nil
}

func (s *cartService) GetCart(ctx context.Context) (model.Cart, error) {
	return s.cartRepo.GetCart(ctx), nil
}

func (s *cartService) GetTotalItemCount(ctx context.Context) (int, error) {
	return s.cartRepo.CountItems(ctx), nil
}
