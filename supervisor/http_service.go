package supervisor

import (
	"context"
	"fmt"
	"time"

	"inventara/logging"
)

// Server dipenuhi oleh *fiber.App.
type Server interface {
	Listen(addr string) error
	ShutdownWithContext(ctx context.Context) error
}

// HTTPService membungkus fiber app sebagai suture.Service.
type HTTPService struct {
	server          Server
	addr            string
	shutdownTimeout time.Duration
}

func NewHTTPService(server Server, addr string, shutdownTimeout time.Duration) *HTTPService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPService{server: server, addr: addr, shutdownTimeout: shutdownTimeout}
}

func (h *HTTPService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", h.addr).Msg("server jalan")
		errCh <- h.server.Listen(h.addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server gagal: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
		defer cancel()
		if err := h.server.ShutdownWithContext(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown gagal: %w", err)
		}
		<-errCh
		return ctx.Err()
	}
}

func (h *HTTPService) String() string {
	return "http-server"
}
