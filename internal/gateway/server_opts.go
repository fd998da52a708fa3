package gateway

import "time"

type ServerOpt func(*Server)

// WithAddr sets the listen address
func WithAddr(addr string) ServerOpt {
	return func(s *Server) {
		s.addr = addr
	}
}

// WithQueueSize sets how many outbound frames may wait per client before the
// client is dropped as too slow
func WithQueueSize(n int) ServerOpt {
	return func(s *Server) {
		s.queueSize = n
	}
}

// WithIdleTimeout sets how long a client may stay silent
func WithIdleTimeout(d time.Duration) ServerOpt {
	return func(s *Server) {
		s.idleTimeout = d
	}
}

// WithAllowedOrigins restricts the Origin headers accepted on upgrade
func WithAllowedOrigins(origins []string) ServerOpt {
	return func(s *Server) {
		s.allowedOrigins = origins
	}
}

// WithReady delays listening until ready is closed
func WithReady(ready <-chan struct{}) ServerOpt {
	return func(s *Server) {
		s.ready = ready
	}
}
