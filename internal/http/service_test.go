package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/storefront/internal/config"
	storehttp "github.com/tuanvumaihuynh/storefront/internal/http"
	"github.com/tuanvumaihuynh/storefront/internal/log"
	"github.com/tuanvumaihuynh/storefront/internal/repository"
	"github.com/tuanvumaihuynh/storefront/internal/service"
	"github.com/tuanvumaihuynh/storefront/pkg/validator"
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

func newTestHandler(t *testing.T, cfg config.HTTP) http.Handler {
	t.Helper()

	catalogRepo, err := repository.NewCatalogRepository(strings.NewReader(testCatalog))
	require.NoError(t, err)

	catalogSvc := service.NewCatalogService(catalogRepo)
	cartSvc := service.NewCartService(
		config.Cart{},
		validator.MustNewDefaultValidator(),
		catalogRepo,
		repository.NewCartRepository(),
		nil,
	)

	return storehttp.New(cfg, log.Discard(), catalogSvc, cartSvc).Handler()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func productIDs(t *testing.T, body []byte) []string {
	t.Helper()

	var products []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &products))

	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestCatalogRoutes(t *testing.T) {
	h := newTestHandler(t, config.HTTP{})

	t.Run("Should list tags", func(t *testing.T) {
		resp := do(t, h, http.MethodGet, "/product-tags", "")

		require.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `[
			{"id":"makanan","label":"Makanan"},
			{"id":"minuman","label":"Minuman"},
			{"id":"snack","label":"Snack"}
		]`, resp.Body.String())
	})

	t.Run("Should filter products by tags", func(t *testing.T) {
		cases := map[string][]string{
			"/products":                      {"p1", "p2", "p3", "p4"},
			"/products?tags=":                {"p1", "p2", "p3", "p4"},
			"/products?tags=minuman":         {"p2"},
			"/products?tags=snack,minuman":   {"p2", "p3"},
			"/products?tags=%20minuman%20,,": {"p2"},
			"/products?tags=unknown":         {},
		}

		for target, want := range cases {
			resp := do(t, h, http.MethodGet, target, "")

			require.Equal(t, http.StatusOK, resp.Code, target)
			assert.Equal(t, want, productIDs(t, resp.Body.Bytes()), target)
		}
	})

	t.Run("Should reject repeated tags query", func(t *testing.T) {
		resp := do(t, h, http.MethodGet, "/products?tags=makanan&tags=snack", "")

		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.JSONEq(t, `{"error":true,"message":"invalid payload"}`, resp.Body.String())
	})

	t.Run("Should render product with price as string", func(t *testing.T) {
		resp := do(t, h, http.MethodGet, "/products/p2", "")

		require.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `{
			"id":"p2","name":"Es Teh","imageUrl":"/p2.jpg",
			"price":"3.45","stock":10,"tags":["minuman"]
		}`, resp.Body.String())
	})

	t.Run("Should return not found for unknown product", func(t *testing.T) {
		resp := do(t, h, http.MethodGet, "/products/nope", "")

		assert.Equal(t, http.StatusNotFound, resp.Code)
		assert.JSONEq(t, `{"error":true,"message":"not found"}`, resp.Body.String())
	})
}

func TestCartRoutes(t *testing.T) {
	t.Run("Should start with an empty cart", func(t *testing.T) {
		h := newTestHandler(t, config.HTTP{})

		resp := do(t, h, http.MethodGet, "/carts", "")

		require.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `{
			"items":[],"subtotal":"0.00","tax":"0.00","deliveryFee":"0.00","total":"0.00"
		}`, resp.Body.String())

		resp = do(t, h, http.MethodGet, "/carts/total-items", "")
		assert.JSONEq(t, `{"totalItems":0}`, resp.Body.String())
	})

	t.Run("Should add to cart and price it", func(t *testing.T) {
		h := newTestHandler(t, config.HTTP{})

		resp := do(t, h, http.MethodPost, "/carts/add-to-cart", `{"id":"p1","quantity":2}`)
		require.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `{"error":false,"message":"success"}`, resp.Body.String())

		resp = do(t, h, http.MethodGet, "/carts", "")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `{
			"items":[{
				"id":"p1","name":"Nasi Goreng","imageUrl":"/p1.jpg",
				"price":"10.00","quantity":2,"total":"20.00","stock":5
			}],
			"subtotal":"20.00","tax":"2.00","deliveryFee":"50.00","total":"72.00"
		}`, resp.Body.String())
	})

	t.Run("Should count distinct lines", func(t *testing.T) {
		h := newTestHandler(t, config.HTTP{})

		for _, body := range []string{
			`{"id":"p1","quantity":1}`,
			`{"id":"p1","quantity":2.0}`,
			`{"id":"p2","quantity":1}`,
		} {
			resp := do(t, h, http.MethodPost, "/carts/add-to-cart", body)
			require.Equal(t, http.StatusOK, resp.Code, body)
		}

		resp := do(t, h, http.MethodGet, "/carts/total-items", "")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `{"totalItems":2}`, resp.Body.String())
	})

	t.Run("Should reject invalid payloads", func(t *testing.T) {
		h := newTestHandler(t, config.HTTP{})

		for _, body := range []string{
			`not json`,
			`{}`,
			`{"id":"p1"}`,
			`{"quantity":1}`,
			`{"id":"p1","quantity":null}`,
			`{"id":"p1","quantity":"2"}`,
			`{"id":"p1","quantity":1.5}`,
			`{"id":"p1","quantity":0}`,
			`{"id":"p1","quantity":-3}`,
			`{"id":"","quantity":1}`,
			`{"id":"p1","quantity":99999999999999999999}`,
			`{"id":"p1","quantity":1e19}`,
			`{"id":"p1","quantity":1e20000000}`,
			`{"id":"p1","quantity":0e-20000000}`,
			`{"id":"p1","quantity":1}garbage`,
			`{"id":"p1","quantity":1}{}`,
		} {
			resp := do(t, h, http.MethodPost, "/carts/add-to-cart", body)

			assert.Equal(t, http.StatusUnprocessableEntity, resp.Code, body)
			assert.JSONEq(t, `{"error":true,"message":"invalid payload"}`, resp.Body.String(), body)
		}

		resp := do(t, h, http.MethodGet, "/carts/total-items", "")
		assert.JSONEq(t, `{"totalItems":0}`, resp.Body.String())
	})

	t.Run("Should return not found for unknown product id", func(t *testing.T) {
		h := newTestHandler(t, config.HTTP{})

		resp := do(t, h, http.MethodPost, "/carts/add-to-cart", `{"id":"nope","quantity":1}`)

		assert.Equal(t, http.StatusNotFound, resp.Code)
		assert.JSONEq(t, `{"error":true,"message":"product id not found"}`, resp.Body.String())
	})

	t.Run("Should reject out of stock product", func(t *testing.T) {
		h := newTestHandler(t, config.HTTP{})

		resp := do(t, h, http.MethodPost, "/carts/add-to-cart", `{"id":"p3","quantity":1}`)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
		assert.JSONEq(t, `{"error":true,"message":"Stok habis."}`, resp.Body.String())
	})
}

func TestServiceExtras(t *testing.T) {
	t.Run("Should expose metrics", func(t *testing.T) {
		h := newTestHandler(t, config.HTTP{})
		do(t, h, http.MethodGet, "/products/p1", "")

		resp := do(t, h, http.MethodGet, "/metrics", "")

		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `storefront_http_requests_total{code="200",method="GET",route="/products/{id}"} 1`)
	})

	t.Run("Should serve static files", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>storefront</h1>"), 0o600))
		h := newTestHandler(t, config.HTTP{StaticDir: dir})

		resp := do(t, h, http.MethodGet, "/", "")
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), "storefront")

		resp = do(t, h, http.MethodGet, "/products/p1", "")
		assert.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("Should serve swagger docs when enabled", func(t *testing.T) {
		h := newTestHandler(t, config.HTTP{Swagger: true})

		resp := do(t, h, http.MethodGet, "/docs", "")
		assert.Equal(t, http.StatusOK, resp.Code)
	})
}
