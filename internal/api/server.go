package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Server is the supervised HTTP listener for the API handler.
type Server struct {
	address string
	handler http.Handler
}

func NewServer(address string, handler http.Handler) Server {
	return Server{
		address: address,
		handler: handler,
	}
}

func (s Server) String() string {
	return fmt.Sprintf("api.Server(%s)", s.address)
}

func (s Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errC := make(chan error, 1)
	go func() { errC <- srv.ListenAndServe() }()

	select {
	case err := <-errC:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	<-errC

	return ctx.Err()
}
