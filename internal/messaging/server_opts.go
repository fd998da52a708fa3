package messaging

import "time"

type NatsServerOpt func(*NatsServer)

// WithStartTimeout bounds how long Connect waits for the broker to accept
// connections.
func WithStartTimeout(d time.Duration) NatsServerOpt {
	return func(n *NatsServer) {
		n.startupTimeout = d
	}
}

// WithHost binds the broker to host instead of loopback.
func WithHost(host string) NatsServerOpt {
	return func(n *NatsServer) {
		n.host = host
	}
}

// WithPort fixes the broker port. By default a free port is picked.
func WithPort(port int) NatsServerOpt {
	return func(n *NatsServer) {
		n.port = port
	}
}

// WithMaxPayload caps the size of one broadcast frame. Area snapshots carry
// every event on the calendar, so large calendars may need more than the
// broker default.
func WithMaxPayload(bytes int32) NatsServerOpt {
	return func(n *NatsServer) {
		n.maxPayload = bytes
	}
}
