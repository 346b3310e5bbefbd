package apicontract_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apicontract "github.com/tuanvumaihuynh/storefront/api-contract"
)

func TestLoad(t *testing.T) {
	doc, err := apicontract.Load(context.Background())
	require.NoError(t, err)

	routes := map[string]string{
		"/product-tags":      http.MethodGet,
		"/products":          http.MethodGet,
		"/products/{id}":     http.MethodGet,
		"/carts":             http.MethodGet,
		"/carts/add-to-cart": http.MethodPost,
		"/carts/total-items": http.MethodGet,
	}
	for path, method := range routes {
		item := doc.Paths.Find(path)
		require.NotNil(t, item, path)
		assert.NotNil(t, item.GetOperation(method), "%s %s", method, path)
	}
}
