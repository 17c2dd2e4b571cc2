package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ayababa270/ecommerce-Baba-Charaf/common/breaker"
)

// Customer is the customer service's wire representation, reduced to the
// fields the sale flow needs.
type Customer struct {
	Username string  `json:"username"`
	Wallet   float64 `json:"wallet"`
}

type walletRequest struct {
	Amount float64 `json:"amount"`
}

type walletResponse struct {
	NewBalance float64 `json:"new_balance"`
}

// CustomerClient communicates with the customer service via HTTP, guarded by
// its own circuit breaker so a degraded customer service cannot fast-fail
// inventory calls (and vice versa).
type CustomerClient struct {
	baseURL    string
	httpClient *http.Client
	breaker    *breaker.Breaker
}

// NewCustomerClient creates a new CustomerClient guarded by br.
func NewCustomerClient(baseURL string, br *breaker.Breaker) *CustomerClient {
	return &CustomerClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		breaker: br,
	}
}

// GetByUsername fetches a customer record.
func (c *CustomerClient) GetByUsername(ctx context.Context, username, credential string) (*Customer, error) {
	reqURL := fmt.Sprintf("%s/get_customer_by_username/%s", c.baseURL, url.PathEscape(username))

	var customer Customer
	err := c.breaker.Do(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return err
		}
		forwardCredential(req, credential)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("customer service request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("customer %q: %w", username, ErrNotFound)
		}
		if resp.StatusCode != http.StatusOK {
			return &StatusError{Service: "customers", StatusCode: resp.StatusCode, Message: errorBody(resp)}
		}
		return json.NewDecoder(resp.Body).Decode(&customer)
	})
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// DeductWallet debits the credential's owner by amount and returns the new
// balance. The customer service re-validates the balance atomically; a 400
// here is authoritative even if an earlier read suggested sufficient funds.
func (c *CustomerClient) DeductWallet(ctx context.Context, credential string, amount float64) (float64, error) {
	return c.walletCall(ctx, "/deduct_wallet", credential, amount)
}

// CreditWallet credits the credential's owner by amount. Used as the
// compensating action when a later sale step fails.
func (c *CustomerClient) CreditWallet(ctx context.Context, credential string, amount float64) (float64, error) {
	return c.walletCall(ctx, "/credit_wallet", credential, amount)
}

func (c *CustomerClient) walletCall(ctx context.Context, path, credential string, amount float64) (float64, error) {
	body, err := json.Marshal(walletRequest{Amount: amount})
	if err != nil {
		return 0, err
	}
	reqURL := c.baseURL + path

	var result walletResponse
	err = c.breaker.Do(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		forwardCredential(req, credential)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("customer service request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("customer: %w", ErrNotFound)
		}
		if resp.StatusCode != http.StatusOK {
			return &StatusError{Service: "customers", StatusCode: resp.StatusCode, Message: errorBody(resp)}
		}
		return json.NewDecoder(resp.Body).Decode(&result)
	})
	if err != nil {
		return 0, err
	}
	return result.NewBalance, nil
}
