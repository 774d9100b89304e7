package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ariefcatur/go-restaurant-orders/internal/payment"
)

const linkPath = "/api/payments/vnpay/"

// Client talks to the payment backend that signs gateway redirect URLs.
type Client struct {
	base string
	hc   *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		hc:   &http.Client{Timeout: timeout},
	}
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) CreatePaymentLink(ctx context.Context, orderID string) (payment.Link, error) {
	endpoint := c.base + linkPath + url.PathEscape(orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return payment.Link{}, &payment.GatewayError{Message: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return payment.Link{}, &payment.GatewayError{Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return payment.Link{}, &payment.GatewayError{StatusCode: resp.StatusCode, Message: "read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return payment.Link{}, &payment.GatewayError{StatusCode: resp.StatusCode, Message: upstreamMessage(resp.StatusCode, body)}
	}

	var link payment.Link
	if err := json.Unmarshal(body, &link); err != nil {
		return payment.Link{}, &payment.GatewayError{StatusCode: resp.StatusCode, Message: "decode response", Err: err}
	}
	return link, nil
}

func upstreamMessage(status int, body []byte) string {
	var eb errorBody
	if json.Unmarshal(body, &eb) == nil {
		if eb.Message != "" {
			return eb.Message
		}
		if eb.Error != "" {
			return eb.Error
		}
	}
	if s := strings.TrimSpace(string(body)); s != "" && len(s) <= 200 {
		return s
	}
	return fmt.Sprintf("unexpected status %s", http.StatusText(status))
}
