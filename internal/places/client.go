// Package places is a typed client for the upstream mapping provider's
// autocomplete, place-details, and reverse-geocoding endpoints.
//
// The API server never hands the provider key to browsers; the handler
// layer proxies client queries through this package and reshapes the
// responses. One outbound call per invocation, no retries; a single
// upstream failure is a single client-visible failure.
package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// DefaultBaseURL is the production upstream host. Tests point the client at
// an httptest server instead.
const DefaultBaseURL = "https://maps.googleapis.com"

// Upstream status strings with specific client-facing semantics.
const (
	StatusOK             = "OK"
	StatusZeroResults    = "ZERO_RESULTS"
	StatusRequestDenied  = "REQUEST_DENIED"
	StatusInvalidRequest = "INVALID_REQUEST"
)

// detailsFields is the fixed field set requested from the place-details
// endpoint. Note formatted_phone_number, not phone_number; the upstream
// rejects the latter.
const detailsFields = "name,formatted_address,rating,user_ratings_total,opening_hours," +
	"formatted_phone_number,international_phone_number,website,photos,geometry,types," +
	"price_level,reviews"

// ErrNotConfigured is returned when no upstream API key is available.
// Handlers map this to HTTP 500 configuration-missing.
var ErrNotConfigured = errors.New("places: no API key configured")

// UpstreamError is a semantic rejection from the upstream provider: the
// HTTP exchange succeeded but the payload's status field was not OK.
// Handlers inspect Status to distinguish authorization failures
// (REQUEST_DENIED) and identifier-namespace mismatches (INVALID_REQUEST)
// from generic rejections.
type UpstreamError struct {
	Status  string
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("places: upstream %s: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("places: upstream %s", e.Status)
}

// Prediction is one autocomplete suggestion, shaped as the frontend
// search box consumes it.
type Prediction struct {
	PlaceID              string               `json:"place_id"`
	Description          string               `json:"description"`
	StructuredFormatting StructuredFormatting `json:"structured_formatting"`
}

// StructuredFormatting splits a prediction into primary and secondary text.
type StructuredFormatting struct {
	MainText      string `json:"main_text"`
	SecondaryText string `json:"secondary_text"`
}

// NearbyResult is the best reverse-geocode match for a coordinate.
// Geometry and AddressComponents are passed through untyped; their shape
// belongs to the upstream provider.
type NearbyResult struct {
	PlaceID           string   `json:"place_id"`
	FormattedAddress  string   `json:"formatted_address"`
	Geometry          any      `json:"geometry"`
	Types             []string `json:"types"`
	AddressComponents any      `json:"address_components"`
}

// Client calls the upstream mapping provider.
// A zero-key Client is valid and fails every call with ErrNotConfigured,
// which lets the server boot without a key and degrade only this surface.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// NewClient constructs a Client. A nil httpClient falls back to
// http.DefaultClient; an empty baseURL falls back to DefaultBaseURL.
func NewClient(apiKey string, httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{httpClient: httpClient, apiKey: apiKey, baseURL: baseURL}
}

// Search forwards a text query to the autocomplete endpoint.
// ZERO_RESULTS is a success with an empty slice, never an error.
// Any other non-OK status is an *UpstreamError.
func (c *Client) Search(ctx context.Context, query string) ([]Prediction, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	params := url.Values{
		"input": {query},
		"key":   {c.apiKey},
		"types": {"establishment|geocode"},
	}

	var body struct {
		Status       string       `json:"status"`
		ErrorMessage string       `json:"error_message"`
		Predictions  []Prediction `json:"predictions"`
	}
	if err := c.get(ctx, "/maps/api/place/autocomplete/json", params, &body); err != nil {
		return nil, err
	}

	if body.Status != StatusOK && body.Status != StatusZeroResults {
		return nil, &UpstreamError{Status: body.Status, Message: body.ErrorMessage}
	}
	if body.Predictions == nil {
		return []Prediction{}, nil
	}
	return body.Predictions, nil
}

// Details looks up a place by identifier with the fixed field set.
// The result is an open bag of optional fields; the upstream owns its
// schema, so nothing beyond JSON-ness is assumed here.
//
// An INVALID_REQUEST UpstreamError commonly means the identifier came from
// the geocoding namespace rather than the places one; callers fall back to
// coordinates instead of treating it as a hard failure.
func (c *Client) Details(ctx context.Context, placeID string) (map[string]any, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	params := url.Values{
		"place_id": {placeID},
		"fields":   {detailsFields},
		"key":      {c.apiKey},
	}

	var body struct {
		Status       string         `json:"status"`
		ErrorMessage string         `json:"error_message"`
		Result       map[string]any `json:"result"`
	}
	if err := c.get(ctx, "/maps/api/place/details/json", params, &body); err != nil {
		return nil, err
	}

	if body.Status != StatusOK {
		return nil, &UpstreamError{Status: body.Status, Message: body.ErrorMessage}
	}
	return body.Result, nil
}

// Nearby reverse-geocodes a coordinate and returns the single best match,
// or an empty slice when nothing resolves. Only REQUEST_DENIED is an
// error; any other non-OK status degrades to "no match".
func (c *Client) Nearby(ctx context.Context, lat, lng float64) ([]NearbyResult, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	params := url.Values{
		"latlng": {strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)},
		"key":    {c.apiKey},
	}

	var body struct {
		Status       string         `json:"status"`
		ErrorMessage string         `json:"error_message"`
		Results      []NearbyResult `json:"results"`
	}
	if err := c.get(ctx, "/maps/api/geocode/json", params, &body); err != nil {
		return nil, err
	}

	if body.Status == StatusRequestDenied {
		return nil, &UpstreamError{Status: body.Status, Message: body.ErrorMessage}
	}
	if body.Status != StatusOK || len(body.Results) == 0 {
		return []NearbyResult{}, nil
	}
	return body.Results[:1], nil
}

// get performs one GET against the upstream and decodes the JSON payload.
// Transport failures, non-2xx responses, and malformed JSON all come back
// as plain errors; handlers map those to 500 unexpected-failure.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("places: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("places: upstream request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("places: upstream HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("places: decode response: %w", err)
	}
	return nil
}
