package repository

import (
	"context"
	"sync"

	"github.com/tuanvumaihuynh/storefront/internal/model"
)

// CartUpdateFunc mutates a working copy of the cart. Returning an error
// discards every change it made.
type CartUpdateFunc func(cart *model.Cart) error

type CartRepository interface {
	GetCart(ctx context.Context) model.Cart
	CountItems(ctx context.Context) int

	// Update runs fn under the write lock against a copy of the cart and
	// commits the copy only if fn succeeds.
	Update(ctx context.Context, fn CartUpdateFunc) error
}

var _ CartRepository = (*cartRepository)(nil)

// cartRepository holds the single process-wide cart.
type cartRepository struct {
	mu   sync.RWMutex
	cart model.Cart
}

func NewCartRepository() CartRepository {
	return &cartRepository{
		cart: model.NewCart(),
	}
}

func (r *cartRepository) GetCart(_ context.Context) model.Cart {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.cart.Clone()
}

func (r *cartRepository) CountItems(_ context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.cart.Items)
}

func (r *cartRepository) Update(ctx context.Context, fn CartUpdateFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	working := r.cart.Clone()
	if err := fn(&working); err != nil {
		return err
	}

	r.cart = working
	return nil
}
