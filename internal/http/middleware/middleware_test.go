package middleware_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/storefront/internal/config"
	"github.com/tuanvumaihuynh/storefront/internal/http/metric"
	"github.com/tuanvumaihuynh/storefront/internal/http/middleware"
	"github.com/tuanvumaihuynh/storefront/internal/log"
	"github.com/tuanvumaihuynh/storefront/pkg/correlationid"
)

func TestCorrelationID(t *testing.T) {
	var seen string
	h := middleware.CorrelationID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen, _ = correlationid.FromContext(r.Context())
	}))

	t.Run("Should reuse incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(correlationid.Header, "abc")
		resp := httptest.NewRecorder()

		h.ServeHTTP(resp, req)

		assert.Equal(t, "abc", seen)
		assert.Equal(t, "abc", resp.Header().Get(correlationid.Header))
	})

	t.Run("Should generate id when missing or too long", func(t *testing.T) {
		for _, incoming := range []string{"", strings.Repeat("x", 500)} {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(correlationid.Header, incoming)
			resp := httptest.NewRecorder()

			h.ServeHTTP(resp, req)

			assert.NotEmpty(t, seen)
			assert.NotEqual(t, incoming, seen)
			assert.Equal(t, seen, resp.Header().Get(correlationid.Header))
		}
	})
}

func TestRecoverer(t *testing.T) {
	var buf bytes.Buffer
	h := middleware.Recoverer(log.New(&buf, config.Log{}))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/carts", nil)
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.JSONEq(t, `{"error":true,"message":"internal server error"}`, resp.Body.String())
	assert.Contains(t, buf.String(), "kaboom")
}

func TestMetrics(t *testing.T) {
	m := metric.New()
	r := chi.NewRouter()
	r.Use(middleware.Metrics(m))
	r.Get("/products/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b", "c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products/"+id, nil))
	}

	assert.InDelta(t, 3, testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodGet, "/products/{id}", "404")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.InflightRequests), 0)
}

func TestCors(t *testing.T) {
	h := middleware.Cors([]string{"*"})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/carts/add-to-cart", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp := httptest.NewRecorder()

	h.ServeHTTP(resp, req)

	assert.Equal(t, "*", resp.Header().Get("Access-Control-Allow-Origin"))
}
