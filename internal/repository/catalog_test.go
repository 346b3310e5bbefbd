package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/storefront/internal/repository"
)

const testCatalog = `
tags:
  - id: a
    label: Tag A
  - id: b
    label: Tag B
products:
  - id: p1
    name: Product One
    imageUrl: /p1.jpg
    price: "10.00"
    stock: 5
    tags: [a]
  - id: p2
    name: Product Two
    imageUrl: /p2.jpg
    price: "3.5"
    stock: 0
    tags: [a, b, a]
`

func TestNewCatalogRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Should load tags and products in definition order", func(t *testing.T) {
		repo, err := repository.NewCatalogRepository(strings.NewReader(testCatalog))
		require.NoError(t, err)

		tags := repo.ListTags(ctx)
		require.Len(t, tags, 2)
		assert.Equal(t, "a", tags[0].ID)
		assert.Equal(t, "Tag B", tags[1].Label)

		products := repo.ListProducts(ctx)
		require.Len(t, products, 2)
		assert.Equal(t, "p1", products[0].ID)
		assert.Equal(t, "3.50", products[1].Price.String())
		assert.Equal(t, []string{"a", "b"}, products[1].Tags)
	})

	t.Run("Should not leak internal slices", func(t *testing.T) {
		repo, err := repository.NewCatalogRepository(strings.NewReader(testCatalog))
		require.NoError(t, err)

		products := repo.ListProducts(ctx)
		products[0].Tags[0] = "mutated"
		products[0].Name = "mutated"

		again, err := repo.GetProduct(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "Product One", again.Name)
		assert.Equal(t, []string{"a"}, again.Tags)
	})

	t.Run("Should return ErrProductNotFound for unknown id", func(t *testing.T) {
		repo, err := repository.NewCatalogRepository(strings.NewReader(testCatalog))
		require.NoError(t, err)

		_, err = repo.GetProduct(ctx, "nope")
		assert.ErrorIs(t, err, repository.ErrProductNotFound)
	})

	invalid := []struct {
		name string
		yaml string
	}{
		{name: "duplicate product", yaml: "products:\n  - {id: x, price: \"1\"}\n  - {id: x, price: \"1\"}\n"},
		{name: "unknown tag", yaml: "products:\n  - {id: x, price: \"1\", tags: [ghost]}\n"},
		{name: "negative stock", yaml: "products:\n  - {id: x, price: \"1\", stock: -1}\n"},
		{name: "bad price", yaml: "products:\n  - {id: x, price: \"abc\"}\n"},
		{name: "negative price", yaml: "products:\n  - {id: x, price: \"-1\"}\n"},
		{name: "empty tag id", yaml: "tags:\n  - {label: nothing}\n"},
		{name: "unknown field", yaml: "products:\n  - {id: x, price: \"1\", colour: red}\n"},
	}
	for _, tt := range invalid {
		t.Run("Should reject "+tt.name, func(t *testing.T) {
			_, err := repository.NewCatalogRepository(strings.NewReader(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestNewDefaultCatalogRepository(t *testing.T) {
	repo, err := repository.NewDefaultCatalogRepository()
	require.NoError(t, err)

	assert.NotEmpty(t, repo.ListTags(context.Background()))
	assert.NotEmpty(t, repo.ListProducts(context.Background()))
}

func TestNewCatalogRepositoryFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yml")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o600))

	repo, err := repository.NewCatalogRepositoryFromFile(path)
	require.NoError(t, err)
	assert.Len(t, repo.ListProducts(context.Background()), 2)

	_, err = repository.NewCatalogRepositoryFromFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
