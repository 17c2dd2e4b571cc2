package clients

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrGoodNotFound reports that the inventory service has no such good.
var ErrGoodNotFound = errors.New("good not found")

// InventoryClient checks good existence against the inventory service.
type InventoryClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewInventoryClient(baseURL string) *InventoryClient {
	return &InventoryClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// GoodExists verifies that a catalog entry with the given name exists.
func (c *InventoryClient) GoodExists(ctx context.Context, name string) error {
	reqURL := fmt.Sprintf("%s/goods/%s", c.baseURL, url.PathEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("inventory service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrGoodNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("inventory service returned %d", resp.StatusCode)
	}
	return nil
}
