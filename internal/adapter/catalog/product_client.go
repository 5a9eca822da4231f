package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/tn0901/shop-api/internal/security"
	"github.com/tn0901/shop-api/internal/usecase"
)

// TokenSource supplies a bearer token for outgoing calls made outside any
// inbound request (startup seeding); requests that came in through the authz
// middleware forward the caller's own token instead.
type TokenSource interface {
	Token() (string, error)
}

// ProductClient talks to product-api over HTTP/JSON. A 404 maps to
// ErrProductNotFound; anything else that keeps us from a decoded 200 maps to
// ErrInventoryUnavailable with the cause attached.
type ProductClient struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	tokens     TokenSource // optional
}

func NewProductClient(baseURL string, timeout time.Duration, tokens TokenSource) *ProductClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ProductClient{
		baseURL: baseURL,
		timeout: timeout,
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
			},
		},
	}
}

type productDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

func (c *ProductClient) GetByID(ctx context.Context, id string) (*usecase.ProductInfo, error) {
	var dto productDTO
	status, err := c.get(ctx, c.baseURL+"/api/products/"+id, &dto)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrInventoryUnavailable, err)
	}
	switch {
	case status == http.StatusNotFound:
		return nil, usecase.ErrProductNotFound
	case status != http.StatusOK:
		return nil, fmt.Errorf("%w: product service status %d", usecase.ErrInventoryUnavailable, status)
	}
	return &usecase.ProductInfo{
		ID:       dto.ID,
		Name:     dto.Name,
		Price:    dto.Price,
		Quantity: dto.Quantity,
	}, nil
}

func (c *ProductClient) GetAll(ctx context.Context) ([]usecase.ProductInfo, error) {
	var dtos []productDTO
	status, err := c.get(ctx, c.baseURL+"/api/products", &dtos)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrInventoryUnavailable, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: product service status %d", usecase.ErrInventoryUnavailable, status)
	}
	out := make([]usecase.ProductInfo, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, usecase.ProductInfo{ID: d.ID, Name: d.Name, Price: d.Price, Quantity: d.Quantity})
	}
	return out, nil
}

// get performs the call and decodes a 2xx body into v. Non-2xx statuses are
// returned to the caller undecoded.
func (c *ProductClient) get(ctx context.Context, url string, v any) (int, error) {
	// per-call timeout if the caller didn't set a deadline
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %v", err)
	}
	req.Header.Set("Accept", "application/json")

	// product-api guards its catalog routes; forward the caller's bearer
	// token, or fall back to a service token of our own
	if tok := security.TokenFromCtx(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	} else if c.tokens != nil {
		tok, err := c.tokens.Token()
		if err != nil {
			return 0, fmt.Errorf("service token: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %v", err)
	}
	return resp.StatusCode, nil
}

var _ usecase.ProductGateway = (*ProductClient)(nil)
