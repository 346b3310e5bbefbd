package service_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/storefront/internal/repository"
)

const testCatalog = `
tags:
  - {id: makanan, label: Makanan}
  - {id: minuman, label: Minuman}
  - {id: snack, label: Snack}
products:
  - {id: p1, name: Nasi Goreng, imageUrl: /p1.jpg, price: "10.00", stock: 5, tags: [makanan]}
  - {id: p2, name: Es Teh, imageUrl: /p2.jpg, price: "3.45", stock: 10, tags: [minuman]}
  - {id: p3, name: Keripik, imageUrl: /p3.jpg, price: "7.50", stock: 0, tags: [snack, makanan]}
  - {id: p4, name: Air Mineral, imageUrl: /p4.jpg, price: "1.99", stock: 3, tags: []}
`

func newTestCatalogRepo(t *testing.T) repository.CatalogRepository {
	t.Helper()
	repo, err := repository.NewCatalogRepository(strings.NewReader(testCatalog))
	require.NoError(t, err)
	return repo
}
