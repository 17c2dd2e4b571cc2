package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ayababa270/ecommerce-Baba-Charaf/common/auth"
	"github.com/ayababa270/ecommerce-Baba-Charaf/common/breaker"
)

// Good is the inventory service's wire representation of a catalog entry.
type Good struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	PricePerItem float64 `json:"price_per_item"`
	Description  string  `json:"description"`
	CountInStock int     `json:"count_in_stock"`
}

// InventoryClient communicates with the inventory service via HTTP. All
// calls run under the client's circuit breaker; while the breaker is open
// they fail with breaker.ErrOpen without touching the network.
type InventoryClient struct {
	baseURL    string
	httpClient *http.Client
	breaker    *breaker.Breaker
}

// NewInventoryClient creates a new InventoryClient guarded by br.
func NewInventoryClient(baseURL string, br *breaker.Breaker) *InventoryClient {
	return &InventoryClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		breaker: br,
	}
}

// GetGood fetches one catalog entry by name.
func (c *InventoryClient) GetGood(ctx context.Context, name, credential string) (*Good, error) {
	reqURL := fmt.Sprintf("%s/goods/%s", c.baseURL, url.PathEscape(name))

	var good Good
	err := c.breaker.Do(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return err
		}
		forwardCredential(req, credential)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("inventory service request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("good %q: %w", name, ErrNotFound)
		}
		if resp.StatusCode != http.StatusOK {
			return &StatusError{Service: "inventory", StatusCode: resp.StatusCode, Message: errorBody(resp)}
		}
		return json.NewDecoder(resp.Body).Decode(&good)
	})
	if err != nil {
		return nil, err
	}
	return &good, nil
}

// ListGoods fetches the full catalog.
func (c *InventoryClient) ListGoods(ctx context.Context, credential string) ([]Good, error) {
	reqURL := fmt.Sprintf("%s/goods", c.baseURL)

	var goods []Good
	err := c.breaker.Do(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return err
		}
		forwardCredential(req, credential)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("inventory service request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return &StatusError{Service: "inventory", StatusCode: resp.StatusCode, Message: errorBody(resp)}
		}
		return json.NewDecoder(resp.Body).Decode(&goods)
	})
	if err != nil {
		return nil, err
	}
	return goods, nil
}

// DecreaseStock decrements the good's stock by one and returns the new
// count. A 400 means the store rejected the decrement because the good is
// already out of stock.
func (c *InventoryClient) DecreaseStock(ctx context.Context, name, credential string) (int, error) {
	reqURL := fmt.Sprintf("%s/decrease_stock/%s", c.baseURL, url.PathEscape(name))

	var result struct {
		CountInStock int `json:"count_in_stock"`
	}
	err := c.breaker.Do(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, nil)
		if err != nil {
			return err
		}
		forwardCredential(req, credential)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("inventory service request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("good %q: %w", name, ErrNotFound)
		}
		if resp.StatusCode != http.StatusOK {
			return &StatusError{Service: "inventory", StatusCode: resp.StatusCode, Message: errorBody(resp)}
		}
		return json.NewDecoder(resp.Body).Decode(&result)
	})
	if err != nil {
		return 0, err
	}
	return result.CountInStock, nil
}

// forwardCredential attaches the caller's identity credential as-is; the
// downstream service verifies it against the shared trust root.
func forwardCredential(req *http.Request, credential string) {
	if credential == "" {
		return
	}
	req.AddCookie(&http.Cookie{Name: auth.TokenCookieName, Value: credential})
}

// errorBody extracts the downstream {"error": ...} message, if any.
func errorBody(resp *http.Response) string {
	var payload map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ""
	}
	return payload["error"]
}
