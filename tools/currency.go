package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/shahidain/air-ticket-booking-ai-agent/cache"
	"github.com/shahidain/air-ticket-booking-ai-agent/log"
)

// rateCacheTTL is how long fetched exchange rates stay valid
const rateCacheTTL = time.Hour

// fallbackRates are USD-based rates used when the rate API is unreachable
var fallbackRates = map[string]float64{
	"USD": 1.0,
	"EUR": 0.92,
	"GBP": 0.79,
	"INR": 83.12,
	"JPY": 149.50,
	"CNY": 7.24,
	"AED": 3.67,
	"CAD": 1.36,
	"AUD": 1.52,
	"SGD": 1.34,
	"CHF": 0.88,
	"NZD": 1.64,
	"HKD": 7.82,
	"KRW": 1330.0,
	"THB": 35.60,
	"MYR": 4.70,
	"BRL": 4.97,
	"MXN": 17.10,
	"ZAR": 18.60,
}

// ratesResponse is the payload shape of the exchange-rate API
type ratesResponse struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

// Converter fetches and caches exchange rates. A nil lookup failure falls
// back to the static rate table so conversion keeps working offline.
type Converter struct {
	BaseURL    string
	HTTPClient *http.Client
	Cache      *cache.SimpleCache
}

// NewConverter creates a Converter backed by the given cache instance
func NewConverter(baseURL string, c *cache.SimpleCache) *Converter {
	return &Converter{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
		Cache:      c,
	}
}

// fetchRates loads the rate table for a base currency from the API
func (c *Converter) fetchRates(ctx context.Context, base string) (map[string]float64, error) {
	url := fmt.Sprintf("%s/%s", c.BaseURL, base)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("exchange rate request failed: %s", resp.Status)
	}

	var payload ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if payload.Result != "success" || len(payload.Rates) == 0 {
		return nil, fmt.Errorf("exchange rate API returned unusable data")
	}

	return payload.Rates, nil
}

// Rate returns the exchange rate from one currency to another
func (c *Converter) Rate(ctx context.Context, from, to string) (float64, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	if from == to {
		return 1, nil
	}

	key := cache.Key("rates", from)
	if cached, ok := c.Cache.Get(key); ok {
		if rates, ok := cached.(map[string]float64); ok {
			if rate, ok := rates[to]; ok {
				return rate, nil
			}
		}
	}

	rates, err := c.fetchRates(ctx, from)
	if err != nil {
		log.Warnf(ctx, "Falling back to static exchange rates: %v", err)
		return fallbackRate(from, to)
	}
	c.Cache.Set(key, rates, rateCacheTTL)

	rate, ok := rates[to]
	if !ok {
		return fallbackRate(from, to)
	}
	return rate, nil
}

// Convert converts an amount between currencies, rounded to 2 decimals
func (c *Converter) Convert(ctx context.Context, amount float64, from, to string) (float64, error) {
	rate, err := c.Rate(ctx, from, to)
	if err != nil {
		return 0, err
	}
	return Round2(amount * rate), nil
}

// fallbackRate derives a cross rate from the USD-based static table
func fallbackRate(from, to string) (float64, error) {
	fromRate, okFrom := fallbackRates[from]
	toRate, okTo := fallbackRates[to]
	if !okFrom || !okTo {
		return 0, fmt.Errorf("no exchange rate available for %s to %s", from, to)
	}
	return toRate / fromRate, nil
}

// Round2 rounds to two decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatPrice renders an amount with its localized currency symbol and
// the ISO code, e.g. "US$1,234.56 USD".
func FormatPrice(amount float64, code string) string {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return fmt.Sprintf("%.2f %s", amount, strings.ToUpper(code))
	}

	p := message.NewPrinter(language.English)
	return p.Sprintf("%v %s", currency.Symbol(unit.Amount(amount)), unit)
}
