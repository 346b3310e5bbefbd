package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tuanvumaihuynh/storefront/internal/apperr"
	"github.com/tuanvumaihuynh/storefront/internal/model"
	"github.com/tuanvumaihuynh/storefront/internal/repository"
)

type ListProductsParams struct {
	// Tags keeps products carrying at least one of these tags. Blank entries
	// are ignored and an empty filter lists every product.
	Tags []string
}

type CatalogService interface {
	ListTags(ctx context.Context) ([]model.Tag, error)
	ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error)
	GetProduct(ctx context.Context, id string) (model.Product, error)
}

type catalogService struct {
	catalogRepo repository.CatalogRepository
}

func NewCatalogService(catalogRepo repository.CatalogRepository) CatalogService {
	return &catalogService{
		catalogRepo: catalogRepo,
	}
}

func (s *catalogService) ListTags(ctx context.Context) ([]model.Tag, error) {
	return s.catalogRepo.ListTags(ctx), nil
}

func (s *catalogService) ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error) {
	products := s.catalogRepo.ListProducts(ctx)

	filter := normalizeTags(params.Tags)
	if len(filter) == 0 {
		return products, nil
	}

	filtered := make([]model.Product, 0, len(products))
	for _, product := range products {
		if product.HasAnyTag(filter) {
			filtered = append(filtered, product)
		}
	}

	return filtered, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (model.Product, error) {
	product, err := s.catalogRepo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return model.Product{}, apperr.ProductNotFoundErr.WrapParent(err)
		}
		return model.Product{}, fmt.Errorf("catalog repository get product: %w", err)
	}

	return product, nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
