package http

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuantity(t *testing.T) {
	t.Run("Should accept integral numbers", func(t *testing.T) {
		cases := map[string]int64{
			"2":                   2,
			"2.0":                 2,
			"20e-1":               2,
			"1e18":                1_000_000_000_000_000_000,
			"-3":                  -3,
			"9223372036854775807": 9223372036854775807,
		}
		for raw, want := range cases {
			got, err := parseQuantity(json.RawMessage(raw))
			require.NoError(t, err, raw)
			assert.Equal(t, want, got, raw)
		}
	})

	t.Run("Should reject huge exponents quickly without echoing them", func(t *testing.T) {
		for _, raw := range []string{
			"1e20000000",
			"1e2000000",
			"0e-20000000",
			"1e19",
			"1.5",
			`"2"`,
			"true",
			"null",
			strings.Repeat("9", 4096),
		} {
			start := time.Now()
			_, err := parseQuantity(json.RawMessage(raw))

			require.Error(t, err, raw)
			assert.Less(t, time.Since(start), 100*time.Millisecond, raw)
			assert.Less(t, len(err.Error()), 64, raw)
		}
	})
}

func TestDecodeAddToCartRequest_TrailingData(t *testing.T) {
	_, err := decodeAddToCartRequest(strings.NewReader(`{"id":"p1","quantity":1}garbage`))
	require.Error(t, err)

	params, err := decodeAddToCartRequest(strings.NewReader("{\"id\":\"p1\",\"quantity\":1}\n"))
	require.NoError(t, err)
	assert.Equal(t, "p1", params.ProductID)
	assert.Equal(t, int64(1), params.Quantity)
}
