package repository

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/tuanvumaihuynh/storefront/internal/model"
	"github.com/tuanvumaihuynh/storefront/pkg/money"
)

//go:embed seed/catalog.yml
var defaultCatalogSeed []byte

var ErrProductNotFound = errors.New("product not found")

type CatalogRepository interface {
	ListTags(ctx context.Context) []model.Tag
	ListProducts(ctx context.Context) []model.Product
	GetProduct(ctx context.Context, id string) (model.Product, error)
}

var _ CatalogRepository = (*catalogRepository)(nil)

// catalogRepository is immutable after construction, so reads take no lock.
type catalogRepository struct {
	tags     []model.Tag
	products []model.Product
	byID     map[string]int
}

type catalogSeed struct {
	Tags     []tagSeed     `yaml:"tags"`
	Products []productSeed `yaml:"products"`
}

type tagSeed struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

type productSeed struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	ImageURL string   `yaml:"imageUrl"`
	Price    string   `yaml:"price"`
	Stock    int      `yaml:"stock"`
	Tags     []string `yaml:"tags"`
}

// NewDefaultCatalogRepository loads the catalog embedded in the binary.
func NewDefaultCatalogRepository() (CatalogRepository, error) {
	return NewCatalogRepository(bytes.NewReader(defaultCatalogSeed))
}

// NewCatalogRepositoryFromFile loads a YAML catalog from path.
func NewCatalogRepositoryFromFile(path string) (CatalogRepository, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	return NewCatalogRepository(f)
}

// NewCatalogRepository decodes and validates a YAML catalog.
func NewCatalogRepository(r io.Reader) (CatalogRepository, error) {
	var seed catalogSeed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	repo := &catalogRepository{
		tags:     make([]model.Tag, 0, len(seed.Tags)),
		products: make([]model.Product, 0, len(seed.Products)),
		byID:     make(map[string]int, len(seed.Products)),
	}

	var errs []error
	tagIDs := make(map[string]struct{}, len(seed.Tags))
	for i, t := range seed.Tags {
		if t.ID == "" {
			errs = append(errs, fmt.Errorf("tag %d: empty id", i))
			continue
		}
		if _, dup := tagIDs[t.ID]; dup {
			errs = append(errs, fmt.Errorf("tag %q: duplicate id", t.ID))
			continue
		}
		tagIDs[t.ID] = struct{}{}
		repo.tags = append(repo.tags, model.Tag{ID: t.ID, Label: t.Label})
	}

	for i, p := range seed.Products {
		product, err := seedToProduct(p, tagIDs)
		if err != nil {
			errs = append(errs, fmt.Errorf("product %d: %w", i, err))
			continue
		}
		if _, dup := repo.byID[product.ID]; dup {
			errs = append(errs, fmt.Errorf("product %q: duplicate id", product.ID))
			continue
		}
		repo.byID[product.ID] = len(repo.products)
		repo.products = append(repo.products, product)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	return repo, nil
}

func seedToProduct(p productSeed, tagIDs map[string]struct{}) (model.Product, error) {
	if p.ID == "" {
		return model.Product{}, errors.New("empty id")
	}

	price, err := money.Parse(p.Price)
	if err != nil {
		return model.Product{}, fmt.Errorf("product %q: %w", p.ID, err)
	}
	if price.IsNegative() {
		return model.Product{}, fmt.Errorf("product %q: negative price %s", p.ID, price)
	}
	if p.Stock < 0 {
		return model.Product{}, fmt.Errorf("product %q: negative stock %d", p.ID, p.Stock)
	}

	tags := make([]string, 0, len(p.Tags))
	for _, tag := range p.Tags {
		if _, ok := tagIDs[tag]; !ok {
			return model.Product{}, fmt.Errorf("product %q: unknown tag %q", p.ID, tag)
		}
		if !slices.Contains(tags, tag) {
			tags = append(tags, tag)
		}
	}

	return model.Product{
		ID:       p.ID,
		Name:     p.Name,
		ImageURL: p.ImageURL,
		Price:    price,
		Stock:    p.Stock,
		Tags:     tags,
	}, nil
}

func (r *catalogRepository) ListTags(_ context.Context) []model.Tag {
	return slices.Clone(r.tags)
}

func (r *catalogRepository) ListProducts(_ context.Context) []model.Product {
	products := make([]model.Product, len(r.products))
	for i, p := range r.products {
		products[i] = p.Clone()
	}
	return products
}

func (r *catalogRepository) GetProduct(_ context.Context, id string) (model.Product, error) {
	i, ok := r.byID[id]
	if !ok {
		return model.Product{}, fmt.Errorf("get product %q: %w", id, ErrProductNotFound)
	}
	return r.products[i].Clone(), nil
}
