package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/tuanvumaihuynh/storefront/internal/apperr"
	"github.com/tuanvumaihuynh/storefront/internal/service"
)

type catalogHandler struct {
	catalogSvc service.CatalogService
}

func newCatalogHandler(catalogSvc service.CatalogService) *catalogHandler {
	return &catalogHandler{
		catalogSvc: catalogSvc,
	}
}

func (h *catalogHandler) ListTags(w http.ResponseWriter, r *http.Request) error {
	tags, err := h.catalogSvc.ListTags(r.Context())
	if err != nil {
		return fmt.Errorf("catalog service list tags: %w", err)
	}

	return writeJSON(w, http.StatusOK, tags)
}

// ListProducts filters by the optional tags query, a comma-separated list.
func (h *catalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) error {
	var tags []string
	if err := runtime.BindQueryParameter("form", false, false, "tags", r.URL.Query(), &tags); err != nil {
		return apperr.ValidationErr.WrapParent(err)
	}

	products, err := h.catalogSvc.ListProducts(r.Context(), service.ListProductsParams{Tags: tags})
	if err != nil {
		return fmt.Errorf("catalog service list products: %w", err)
	}

	return writeJSON(w, http.StatusOK, products)
}

func (h *catalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) error {
	product, err := h.catalogSvc.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return fmt.Errorf("catalog service get product: %w", err)
	}

	return writeJSON(w, http.StatusOK, product)
}
