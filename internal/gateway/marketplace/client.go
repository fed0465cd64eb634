package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"grocery-shopper/internal/apperr"
	"grocery-shopper/internal/domain"
)

const maxBodyBytes = 1 << 20

// Client is a marketplace gateway backed by the HTTP JSON API.
type Client struct {
	base  *url.URL
	token string
	http  *http.Client
	newID func() string
}

// NewClient creates a marketplace client for baseURL.
// timeout bounds every single request; zero means no client-side limit.
func NewClient(baseURL, token string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("marketplace: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("marketplace: unsupported scheme %q", u.Scheme)
	}
	return &Client{
		base:  u,
		token: token,
		http:  &http.Client{Timeout: timeout},
		newID: uuid.NewString,
	}, nil
}

// GetOrder fetches an order with all of its items.
func (c *Client) GetOrder(ctx context.Context, orderID string) (domain.Order, error) {
	var dto orderDTO
	if err := c.do(ctx, http.MethodGet, []string{"orders", orderID}, nil, &dto); err != nil {
		return domain.Order{}, err
	}
	return parseOrder(dto)
}

// SubmitActualWeight records the weight measured by the driver.
// The backend decides the variance outcome; the answer is authoritative.
func (c *Client) SubmitActualWeight(ctx context.Context, orderID, itemID string, weight decimal.Decimal, note string) (domain.WeightSubmission, error) {
	req := submitWeightRequest{Weight: json.Number(weight.String()), Note: note}
	var resp submitWeightResponse
	path := []string{"orders", orderID, "items", itemID, "actual-weight"}
	if err := c.do(ctx, http.MethodPost, path, req, &resp); err != nil {
		return domain.WeightSubmission{}, err
	}
	return parseSubmission(resp, weight)
}

// UpdateFoundQuantity sets how many units of a unit-based item were found.
func (c *Client) UpdateFoundQuantity(ctx context.Context, itemID string, found decimal.Decimal, notes string) error {
	req := foundQuantityRequest{FoundQuantity: json.Number(found.String()), Notes: notes}
	return c.do(ctx, http.MethodPut, []string{"order-items", itemID, "found-quantity"}, req, nil)
}

// GetUserPreferences fetches the committed variance preferences of a user.
func (c *Client) GetUserPreferences(ctx context.Context, userID string) (domain.Preferences, error) {
	var dto preferencesDTO
	if err := c.do(ctx, http.MethodGet, []string{"users", userID, "preferences"}, nil, &dto); err != nil {
		return domain.Preferences{}, err
	}
	return parsePreferences(dto)
}

// UpdateUserPreferences stores prefs and returns the values echoed by the backend.
func (c *Client) UpdateUserPreferences(ctx context.Context, userID string, prefs domain.Preferences) (domain.Preferences, error) {
	var dto preferencesDTO
	if err := c.do(ctx, http.MethodPut, []string{"users", userID, "preferences"}, preferencesToDTO(prefs), &dto); err != nil {
		return domain.Preferences{}, err
	}
	return parsePreferences(dto)
}

// UpdateOrderStatus moves the order to status.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	req := orderStatusRequest{Status: string(status)}
	return c.do(ctx, http.MethodPatch, []string{"orders", orderID, "status"}, req, nil)
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method string, segments []string, in, out any) error {
	for _, s := range segments {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("marketplace: %s: empty path segment", method)
		}
	}
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	target := c.base.JoinPath(escaped...)
	path := "/" + strings.Join(segments, "/")

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marketplace: %s %s: encode: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return fmt.Errorf("marketplace: %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("X-Request-ID", c.newID())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("marketplace: %s %s: %w: %w", method, path, apperr.ErrUpstream, err)
	}
	defer resp.Body.Close()

	limited := io.LimitReader(resp.Body, maxBodyBytes)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(method, path, resp.StatusCode, limited)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, limited)
		return nil
	}
	if err := json.NewDecoder(limited).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return malformed("%s %s: empty body", method, path)
		}
		return malformed("%s %s: %v", method, path, err)
	}
	return nil
}

func statusError(method, path string, code int, body io.Reader) error {
	se := &StatusError{Method: method, Path: path, Code: code}
	raw, _ := io.ReadAll(body)
	var eb errorBody
	if json.Unmarshal(raw, &eb) == nil {
		se.Message = eb.Error
		if se.Message == "" {
			se.Message = eb.Message
		}
	}
	if se.Message == "" {
		se.Message = strings.TrimSpace(string(raw))
	}
	return se
}
