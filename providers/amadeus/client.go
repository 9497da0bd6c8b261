// Package amadeus is the flight-data provider: flight offer search over
// the Amadeus self-service API plus a simulated booking operation.
package amadeus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shahidain/air-ticket-booking-ai-agent/cache"
	"github.com/shahidain/air-ticket-booking-ai-agent/log"
)

const (
	BaseURLTest       = "https://test.api.amadeus.com"
	BaseURLProduction = "https://api.amadeus.com"
)

// AuthToken represents the OAuth2 token response
type AuthToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
	Expiry      time.Time
}

// Client is the Amadeus API client
type Client struct {
	APIKey     string
	APISecret  string
	BaseURL    string
	HTTPClient *http.Client
	Token      *AuthToken
	Cache      *cache.SimpleCache
	Now        func() time.Time
}

// NewClient creates a new Amadeus client
func NewClient(apiKey, apiSecret string, isProduction bool, timeout int) (*Client, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("amadeus API key and secret are required")
	}

	baseURL := BaseURLTest
	if isProduction {
		baseURL = BaseURLProduction
	}

	return &Client{
		APIKey:     apiKey,
		APISecret:  apiSecret,
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
		Cache:      cache.New(),
		Now:        time.Now,
	}, nil
}

// Authenticate fetches a fresh OAuth2 client-credentials token
func (c *Client) Authenticate() error {
	data := url.Values{}
	data.Set("grant_type", "client_credentials")
	data.Set("client_id", c.APIKey)
	data.Set("client_secret", c.APISecret)

	req, err := http.NewRequest(http.MethodPost, c.BaseURL+"/v1/security/oauth2/token", bytes.NewBufferString(data.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("authentication failed: %s", resp.Status)
	}

	var token AuthToken
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return err
	}

	// Subtract 10 seconds so we refresh before the provider-side expiry
	token.Expiry = c.Now().Add(time.Duration(token.ExpiresIn)*time.Second - 10*time.Second)
	c.Token = &token

	return nil
}

// doRequest performs an authenticated HTTP request
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body interface{}) (*http.Response, error) {
	if c.Token == nil || c.Now().After(c.Token.Expiry) {
		if err := c.Authenticate(); err != nil {
			return nil, fmt.Errorf("failed to refresh token: %w", err)
		}
	}

	var reqBody []byte
	var err error
	if body != nil {
		reqBody, err = json.Marshal(body)
		if err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+endpoint, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.Token.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		log.Errorf(ctx, "Amadeus API request failed: %v", err)
		return nil, err
	}

	return resp, nil
}

// AirportCity returns the city name served by an airport IATA code,
// falling back to the code itself when the lookup fails.
func (c *Client) AirportCity(ctx context.Context, iataCode string) string {
	key := cache.Key("airport-city", iataCode)
	if cached, ok := c.Cache.Get(key); ok {
		if city, ok := cached.(string); ok {
			return city
		}
	}

	data := url.Values{}
	data.Set("keyword", iataCode)
	data.Set("subType", "AIRPORT")

	endpoint := fmt.Sprintf("/v1/reference-data/locations?%s", data.Encode())
	resp, err := c.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.Warnf(ctx, "Could not fetch city for %s: %v", iataCode, err)
		return iataCode
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warnf(ctx, "Location lookup for %s returned %s", iataCode, resp.Status)
		return iataCode
	}

	var result struct {
		Data []struct {
			Address struct {
				CityName string `json:"cityName"`
			} `json:"address"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil || len(result.Data) == 0 {
		return iataCode
	}

	city := result.Data[0].Address.CityName
	c.Cache.Set(key, city, 24*time.Hour)
	return city
}
