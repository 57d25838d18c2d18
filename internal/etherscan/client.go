// Package etherscan implements the chain-data client for the three bulk
// wallet feeds: outbound transactions, ERC-20 transfer events and inbound
// native-asset internal transfers.
package etherscan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kimpers/tokentax-scripts/internal/domain"
)

// Default configuration values.
const (
	DefaultBaseURL     = "https://api.etherscan.io/api"
	DefaultTimeout     = 30 * time.Second
	DefaultMaxRetries  = 3
	DefaultRetryDelay  = 1 * time.Second
	DefaultMaxDelay    = 10 * time.Second
	DefaultBackoffMult = 2.0
	DefaultPageSize    = 10000
	DefaultMaxPages    = 100
)

// errNoRows marks the API's "No transactions found" response, which is an
// empty result rather than a failure.
var errNoRows = errors.New("no transactions found")

// Client queries the Etherscan account API over HTTP.
type Client struct {
	baseURL     string
	apiKey      string
	client      *http.Client
	maxRetries  int
	retryDelay  time.Duration
	maxDelay    time.Duration
	backoffMult float64
	pageSize    int
	maxPages    int
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithTimeout sets HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithMaxRetries sets maximum retry attempts per request.
func WithMaxRetries(n int) ClientOption {
	return func(c *Client) {
		c.maxRetries = n
	}
}

// WithRetryDelay sets initial retry delay.
func WithRetryDelay(d time.Duration) ClientOption {
	return func(c *Client) {
		c.retryDelay = d
	}
}

// WithMaxDelay sets maximum retry delay.
func WithMaxDelay(d time.Duration) ClientOption {
	return func(c *Client) {
		c.maxDelay = d
	}
}

// WithHTTPClient sets custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// WithPageSize sets the per-request result window.
func WithPageSize(n int) ClientOption {
	return func(c *Client) {
		c.pageSize = n
	}
}

// WithMaxPages caps pagination per feed.
func WithMaxPages(n int) ClientOption {
	return func(c *Client) {
		c.maxPages = n
	}
}

// NewClient creates a new Etherscan account-API client.
func NewClient(baseURL, apiKey string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		client:      &http.Client{Timeout: DefaultTimeout},
		maxRetries:  DefaultMaxRetries,
		retryDelay:  DefaultRetryDelay,
		maxDelay:    DefaultMaxDelay,
		backoffMult: DefaultBackoffMult,
		pageSize:    DefaultPageSize,
		maxPages:    DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// listParams builds the query for one page of an account list action.
func (c *Client) listParams(action, address string, page int) url.Values {
	params := url.Values{}
	params.Set("module", "account")
	params.Set("action", action)
	params.Set("address", address)
	params.Set("startblock", "0")
	params.Set("endblock", "999999999")
	params.Set("page", strconv.Itoa(page))
	params.Set("offset", strconv.Itoa(c.pageSize))
	params.Set("sort", "asc")
	params.Set("apikey", c.apiKey)
	return params
}

// call performs one API request with retries and exponential backoff.
// Rate-limited responses (HTTP 429 or the API's NOTOK status) are retried;
// a "No transactions found" status returns errNoRows.
func (c *Client) call(ctx context.Context, params url.Values, result interface{}) error {
	delay := c.retryDelay
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			// Exponential backoff
			delay = time.Duration(float64(delay) * c.backoffMult)
			if delay > c.maxDelay {
				delay = c.maxDelay
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("http request: %w", err)
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response: %w", err)
			continue
		}

		// Handle rate limiting
		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("rate limited (429)")
			continue
		}

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
			continue
		}

		var apiResp apiResponse
		if err := json.Unmarshal(respBody, &apiResp); err != nil {
			lastErr = fmt.Errorf("unmarshal response: %w", err)
			continue
		}

		if apiResp.Status != "1" {
			if apiResp.Message == "No transactions found" {
				return errNoRows
			}
			// Rate limiting surfaces as status 0 with a string result.
			lastErr = fmt.Errorf("api error: %s: %s", apiResp.Message, string(apiResp.Result))
			continue
		}

		if err := json.Unmarshal(apiResp.Result, result); err != nil {
			return fmt.Errorf("unmarshal result: %w", err)
		}

		return nil
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// NormalTransactions retrieves the wallet's outbound transaction list
// (txlist action), paginating up to the configured page cap.
func (c *Client) NormalTransactions(ctx context.Context, address string) ([]domain.NormalTransaction, error) {
	var txs []domain.NormalTransaction
	for page := 1; page <= c.maxPages; page++ {
		var rows []normalTxRow
		err := c.call(ctx, c.listParams("txlist", address, page), &rows)
		if errors.Is(err, errNoRows) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("txlist page %d: %w", page, err)
		}
		for _, row := range rows {
			tx, err := row.toDomain()
			if err != nil {
				return nil, fmt.Errorf("txlist row %s: %w", row.Hash, err)
			}
			txs = append(txs, tx)
		}
		if len(rows) < c.pageSize {
			break
		}
	}
	return txs, nil
}

// TokenTransfers retrieves the wallet's ERC-20 transfer event list
// (tokentx action), inbound and outbound.
func (c *Client) TokenTransfers(ctx context.Context, address string) ([]domain.TokenTransferEvent, error) {
	var transfers []domain.TokenTransferEvent
	for page := 1; page <= c.maxPages; page++ {
		var rows []tokenTxRow
		err := c.call(ctx, c.listParams("tokentx", address, page), &rows)
		if errors.Is(err, errNoRows) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("tokentx page %d: %w", page, err)
		}
		for _, row := range rows {
			transfer, err := row.toDomain()
			if err != nil {
				return nil, fmt.Errorf("tokentx row %s: %w", row.Hash, err)
			}
			transfers = append(transfers, transfer)
		}
		if len(rows) < c.pageSize {
			break
		}
	}
	return transfers, nil
}

// InternalTransfers retrieves the wallet's inbound native-asset
// internal-transfer list (txlistinternal action).
func (c *Client) InternalTransfers(ctx context.Context, address string) ([]domain.InternalTransfer, error) {
	var transfers []domain.InternalTransfer
	for page := 1; page <= c.maxPages; page++ {
		var rows []internalTxRow
		err := c.call(ctx, c.listParams("txlistinternal", address, page), &rows)
		if errors.Is(err, errNoRows) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("txlistinternal page %d: %w", page, err)
		}
		for _, row := range rows {
			transfer, err := row.toDomain()
			if err != nil {
				return nil, fmt.Errorf("txlistinternal row %s: %w", row.Hash, err)
			}
			transfers = append(transfers, transfer)
		}
		if len(rows) < c.pageSize {
			break
		}
	}
	return transfers, nil
}
