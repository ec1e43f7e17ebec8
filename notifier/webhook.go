package notifier

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"inventara/utils"
)

// WebhookSender POST pesan sebagai JSON ke gateway push eksternal.
type WebhookSender struct {
	url     string
	client  *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[struct{}]
}

type WebhookOption func(*WebhookSender)

func WithHTTPClient(c *http.Client) WebhookOption {
	return func(w *WebhookSender) { w.client = c }
}

// NewWebhookSender membatasi pengiriman perSecond pesan per detik.
func NewWebhookSender(url string, perSecond int, opts ...WebhookOption) *WebhookSender {
	if perSecond <= 0 {
		perSecond = 20
	}
	w := &WebhookSender{
		url:     url,
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(perSecond), perSecond),
		breaker: utils.NewBreaker("push-webhook"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *WebhookSender) Send(ctx context.Context, msg Message) error {
	if err := w.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit push: %w", err)
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	_, err = w.breaker.Execute(func() (struct{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
		if err != nil {
			return struct{}{}, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := w.client.Do(req)
		if err != nil {
			return struct{}{}, err
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)

		if resp.StatusCode >= 300 {
			return struct{}{}, fmt.Errorf("push webhook membalas %d", resp.StatusCode)
		}
		return struct{}{}, nil
	})
	return err
}
