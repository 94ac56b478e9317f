// Package mockapi is an in-process stand-in for the fake-data REST service, used to exercise the
// scenario suite without network access.
//
// In Lenient mode it answers the way the public service does, including the deviations from
// REST conventions that the suite reports as known issues. In Strict mode it answers the way
// the suite expects, so a run against it should pass with no failures.
package mockapi

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

const readHeaderTimeout = time.Second * 10

// Server is a running mock service.
type Server struct {
	server  *http.Server
	baseURL string
}

// Start listens on addr, such as "localhost:0" for any free port, and serves handler in the
// background. The listener is ready when Start returns.
func Start(addr string, handler http.Handler) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("mock service could not listen on %s: %w", addr, err)
	}
	s := &Server{
		server: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		baseURL: "http://" + listener.Addr().String(),
	}
	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic(err)
		}
	}()
	return s, nil
}

// URL returns the base URL of the service.
func (s *Server) URL() string {
	return s.baseURL
}

// Close stops the server immediately.
func (s *Server) Close() error {
	return s.server.Close()
}
