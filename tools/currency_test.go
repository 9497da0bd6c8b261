package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shahidain/air-ticket-booking-ai-agent/cache"
	"github.com/stretchr/testify/assert"
)

// mockRatesServer mocks the exchange-rate API for a USD base
func mockRatesServer(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/USD":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"result": "success",
				"rates": map[string]float64{
					"INR": 80.0,
					"EUR": 0.90,
				},
			})
		case "/XXX":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"result": "error",
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestConverterRate(t *testing.T) {
	ts := mockRatesServer(t)
	defer ts.Close()

	conv := NewConverter(ts.URL, cache.New())

	rate, err := conv.Rate(context.Background(), "USD", "INR")
	assert.NoError(t, err)
	assert.Equal(t, 80.0, rate)
}

func TestConverterRateSameCurrency(t *testing.T) {
	conv := NewConverter("http://unused", cache.New())

	rate, err := conv.Rate(context.Background(), "inr", "INR")
	assert.NoError(t, err)
	assert.Equal(t, 1.0, rate)
}

func TestConverterRateUsesCache(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(map[string]interface{}{
			"result": "success",
			"rates":  map[string]float64{"INR": 80.0},
		})
	}))
	defer ts.Close()

	conv := NewConverter(ts.URL, cache.New())

	_, err := conv.Rate(context.Background(), "USD", "INR")
	assert.NoError(t, err)
	_, err = conv.Rate(context.Background(), "USD", "INR")
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestConverterFallbackWhenAPIDown(t *testing.T) {
	// Unreachable server forces the static fallback table
	conv := NewConverter("http://127.0.0.1:1", cache.New())

	rate, err := conv.Rate(context.Background(), "USD", "INR")
	assert.NoError(t, err)
	assert.Equal(t, fallbackRates["INR"], rate)

	// Cross rate derived through USD
	rate, err = conv.Rate(context.Background(), "EUR", "GBP")
	assert.NoError(t, err)
	assert.InDelta(t, fallbackRates["GBP"]/fallbackRates["EUR"], rate, 0.0001)

	_, err = conv.Rate(context.Background(), "USD", "XYZ")
	assert.Error(t, err)
}

func TestConverterConvertRounds(t *testing.T) {
	ts := mockRatesServer(t)
	defer ts.Close()

	conv := NewConverter(ts.URL, cache.New())

	got, err := conv.Convert(context.Background(), 123.456, "USD", "EUR")
	assert.NoError(t, err)
	assert.Equal(t, 111.11, got)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.234))
	assert.Equal(t, 1.24, Round2(1.235))
	assert.Equal(t, 100.0, Round2(100.0))
	assert.Equal(t, 0.0, Round2(0.0049))
}

func TestFormatPrice(t *testing.T) {
	out := FormatPrice(1234.56, "USD")
	assert.Contains(t, out, "USD")

	// Unknown code falls back to a plain rendering
	out = FormatPrice(99.9, "???")
	assert.Contains(t, out, "99.90")
}
