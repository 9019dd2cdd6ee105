package cartview

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

	"cupstory/pkg/api"
	"cupstory/pkg/cart"
)

var (
	// ErrNotSignedIn is returned without any call when the session has no owner.
	ErrNotSignedIn = errors.New("not signed in")
	// ErrTransport wraps network failures and unreadable responses.
	ErrTransport = errors.New("cannot reach server")
	// ErrServerFault is returned for non-2xx replies and success:false bodies.
	ErrServerFault = errors.New("server fault")
)

// CartAPI is the server side of the cart as seen by the view.
type CartAPI interface {
	Get(ctx context.Context, owner string) ([]cart.Line, error)
	Add(ctx context.Context, owner string, line cart.Line) (cart.Cart, error)
	Clear(ctx context.Context, owner string) error
}

// Client calls the cart endpoints over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a Client for the API rooted at baseURL. A nil hc uses
// http.DefaultClient.
func NewClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// Get fetches the owner's lines.
func (c *Client) Get(ctx context.Context, owner string) ([]cart.Line, error) {
	var out api.LinesResponse
	if err := c.do(ctx, http.MethodGet, "/api/cart?email="+url.QueryEscape(owner), nil, &out); err != nil {
		return nil, err
	}
	if out.Cart == nil {
		out.Cart = []cart.Line{}
	}
	return out.Cart, nil
}

// Add posts one line and returns the updated cart.
func (c *Client) Add(ctx context.Context, owner string, line cart.Line) (cart.Cart, error) {
	var out api.CartResponse
	if err := c.do(ctx, http.MethodPost, "/api/cart/add", api.AddRequest{Email: owner, Item: line}, &out); err != nil {
		return cart.Cart{}, err
	}
	return out.Cart, nil
}

// Clear empties the owner's cart.
func (c *Client) Clear(ctx context.Context, owner string) error {
	return c.do(ctx, http.MethodPost, "/api/cart/clear", api.OwnerRequest{Email: owner}, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrTransport, err)
	}
	var status api.StatusResponse
	if err := json.Unmarshal(raw, &status); err != nil {
		return fmt.Errorf("%w: decode body: %v", ErrTransport, err)
	}
	if resp.StatusCode/100 != 2 || !status.Success {
		return fmt.Errorf("%w: %d %s", ErrServerFault, resp.StatusCode, status.Message)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode body: %v", ErrTransport, err)
	}
	return nil
}
