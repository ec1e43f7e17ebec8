package jobs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"inventara/utils"
)

// StatusPinger melakukan GET ke URL status (mis. healthcheck eksternal)
// sebelum setiap run, lewat circuit breaker "status-ping".
type StatusPinger struct {
	url     string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[struct{}]
}

func NewStatusPinger(url string, client *http.Client) *StatusPinger {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &StatusPinger{
		url:     url,
		client:  client,
		breaker: utils.NewBreaker("status-ping"),
	}
}

func (p *StatusPinger) Ping(ctx context.Context) error {
	_, err := p.breaker.Execute(func() (struct{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
		if err != nil {
			return struct{}{}, err
		}
		resp, err := p.client.Do(req)
		if err != nil {
			return struct{}{}, err
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)

		if resp.StatusCode >= 300 {
			return struct{}{}, fmt.Errorf("status ping membalas %d", resp.StatusCode)
		}
		return struct{}{}, nil
	})
	return err
}
