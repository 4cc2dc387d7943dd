package postcodes_client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ianmeigh/property-direct-backend/internal/contextkeys"
	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
	"github.com/ianmeigh/property-direct-backend/internal/core/port"
)

const (
	errPostcodeNotFound = "postcode not found"
	errInvalidPostcode  = "invalid postcode"
	errResourceNotFound = "resource not found"

	maxBodyBytes = 1 << 20
)

// PostcodesIOClient implements port.GeocoderPort against postcodes.io.
// It makes exactly one request per call; there is no caching or retry.
type PostcodesIOClient struct {
	baseURL    string // e.g. "https://api.postcodes.io"
	httpClient *http.Client
}

func NewPostcodesIOClient(baseURL string, timeout time.Duration) (*PostcodesIOClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("postcodes client: base URL cannot be empty")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("postcodes client: invalid base URL: %w", err)
	}
	return &PostcodesIOClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *PostcodesIOClient) doRequest(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

// Resolve sends the postcode exactly as provided. Unknown or malformed
// postcodes map to domain.ErrPostcodeInvalid; anything that prevents an
// answer, including postcodes.io's "Resource not found", maps to
// domain.ErrServiceUnavailable.
func (c *PostcodesIOClient) Resolve(ctx context.Context, postcode string) (domain.Point, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "PostcodesIOClient",
		"method":    "Resolve",
		"postcode":  postcode,
	})

	if strings.TrimSpace(postcode) == "" {
		return domain.Point{}, domain.ErrPostcodeInvalid
	}

	endpoint := c.baseURL + "/postcodes/" + url.PathEscape(postcode)
	resp, err := c.doRequest(ctx, http.MethodGet, endpoint)
	if err != nil {
		clientLogger.Error("Failed to perform request to postcodes.io", err, nil)
		return domain.Point{}, domain.ErrServiceUnavailable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		clientLogger.Error("Failed to read response from postcodes.io", err, nil)
		return domain.Point{}, domain.ErrServiceUnavailable
	}

	var payload lookupResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		clientLogger.Error("Failed to decode response from postcodes.io", err, port.Fields{"status_code": resp.StatusCode})
		return domain.Point{}, domain.ErrServiceUnavailable
	}
	if payload.Status == 0 {
		payload.Status = resp.StatusCode
	}

	if payload.Status != http.StatusOK {
		switch strings.ToLower(strings.TrimSpace(payload.Error)) {
		case errPostcodeNotFound, errInvalidPostcode:
			clientLogger.Info("Postcode rejected by postcodes.io", port.Fields{"reason": payload.Error})
			return domain.Point{}, domain.ErrPostcodeInvalid
		case errResourceNotFound:
			clientLogger.Warn("postcodes.io reported a missing resource", nil)
			return domain.Point{}, domain.ErrServiceUnavailable
		}
		clientLogger.Warn("Unexpected response from postcodes.io", port.Fields{
			"status_code": payload.Status,
			"error":       payload.Error,
		})
		return domain.Point{}, domain.ErrServiceUnavailable
	}

	// Terminated and non-geographic postcodes resolve without coordinates.
	if payload.Result == nil || payload.Result.Latitude == nil || payload.Result.Longitude == nil {
		clientLogger.Info("Postcode has no coordinates", nil)
		return domain.Point{}, domain.ErrPostcodeInvalid
	}

	point := domain.Point{Latitude: *payload.Result.Latitude, Longitude: *payload.Result.Longitude}
	clientLogger.Debug("Postcode resolved.", port.Fields{"latitude": point.Latitude, "longitude": point.Longitude})
	return point, nil
}
