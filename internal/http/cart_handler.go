package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/storefront/internal/apperr"
	"github.com/tuanvumaihuynh/storefront/internal/service"
)

const maxAddToCartBodyBytes = 1 << 16

type cartHandler struct {
	cartSvc service.CartService
}

func newCartHandler(cartSvc service.CartService) *cartHandler {
	return &cartHandler{
		cartSvc: cartSvc,
	}
}

type addToCartRequest struct {
	ID       *string         `json:"id"`
	Quantity json.RawMessage `json:"quantity"`
}

type messageResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type totalItemsResponse struct {
	TotalItems int `json:"totalItems"`
}

func (h *cartHandler) AddToCart(w http.ResponseWriter, r *http.Request) error {
	params, err := decodeAddToCartRequest(http.MaxBytesReader(w, r.Body, maxAddToCartBodyBytes))
	if err != nil {
		return apperr.InvalidPayloadErr.WrapParent(err)
	}

	if err := h.cartSvc.AddToCart(r.Context(), params); err != nil {
		return fmt.Errorf("cart service add to cart: %w", err)
	}

	return writeJSON(w, http.StatusOK, messageResponse{Error: false, Message: "success"})
}

func (h *cartHandler) GetCart(w http.ResponseWriter, r *http.Request) error {
	cart, err := h.cartSvc.GetCart(r.Context())
	if err != nil {
		return fmt.Errorf("cart service get cart: %w", err)
	}

	return writeJSON(w, http.StatusOK, cart)
}

func (h *cartHandler) GetTotalItems(w http.ResponseWriter, r *http.Request) error {
	count, err := h.cartSvc.GetTotalItemCount(r.Context())
	if err != nil {
		return fmt.Errorf("cart service get total item count: %w", err)
	}

	return writeJSON(w, http.StatusOK, totalItemsResponse{TotalItems: count})
}

// decodeAddToCartRequest requires id to be a JSON string and quantity a JSON
// number with an integral value, so 2 and 2.0 are accepted while "2" is not.
// Range checks are left to the cart service.
func decodeAddToCartRequest(body io.Reader) (service.AddToCartParams, error) {
	dec := json.NewDecoder(body)

	var req addToCartRequest
	if err := dec.Decode(&req); err != nil {
		return service.AddToCartParams{}, fmt.Errorf("decode body: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return service.AddToCartParams{}, errors.New("unexpected data after body")
	}

	if req.ID == nil {
		return service.AddToCartParams{}, errors.New("id is required")
	}

	quantity, err := parseQuantity(req.Quantity)
	if err != nil {
		return service.AddToCartParams{}, err
	}

	return service.AddToCartParams{
		ProductID: *req.ID,
		Quantity:  quantity,
	}, nil
}

// maxQuantityExponent bounds the decimal exponent checked before any
// big-number work on a quantity.
const maxQuantityExponent = 18

// parseQuantity never echoes the raw value back; it is client controlled.
func parseQuantity(raw json.RawMessage) (int64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, errors.New("quantity is required")
	}
	if raw[0] != '-' && (raw[0] < '0' || raw[0] > '9') {
		return 0, errors.New("quantity must be a number")
	}

	if n, err := strconv.ParseInt(string(raw), 10, 64); err == nil {
		return n, nil
	}

	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return 0, errors.New("quantity is not a valid number")
	}
	if exp := d.Exponent(); exp < -maxQuantityExponent || exp > maxQuantityExponent {
		return 0, errors.New("quantity out of range")
	}
	if !d.IsInteger() {
		return 0, errors.New("quantity must be a whole number")
	}
	if !d.BigInt().IsInt64() {
		return 0, errors.New("quantity out of range")
	}

	return d.IntPart(), nil
}
