package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-town/internal/gateway"
)

type GatewayConfig struct {
	Addr           string   `json:"addr"`
	QueueSize      int      `json:"queue_size"`
	IdleTimeout    string   `json:"idle_timeout"`
	AllowedOrigins []string `json:"allowed_origins,omitempty"`
}

func (g *GatewayConfig) validate() error {
	el := errors.NewErrorList()

	if g.Addr == "" {
		el.Add(fmt.Errorf("gateway addr is required"))
	}
	if g.QueueSize < 0 {
		el.Add(fmt.Errorf("queue_size must not be negative"))
	}
	if g.IdleTimeout != "" {
		d, err := time.ParseDuration(g.IdleTimeout)
		if err != nil {
			el.Add(fmt.Errorf("parsing idle_timeout: %w", err))
		} else if d <= 0 {
			el.Add(fmt.Errorf("idle_timeout must be positive"))
		}
	}

	return el.Err()
}

func (g *GatewayConfig) buildGateway(t gateway.Town, sub gateway.Subscriber, ready <-chan struct{}) (*gateway.Server, error) {
	opts := []gateway.ServerOpt{
		gateway.WithAddr(g.Addr),
		gateway.WithReady(ready),
	}
	if g.QueueSize > 0 {
		opts = append(opts, gateway.WithQueueSize(g.QueueSize))
	}
	if g.IdleTimeout != "" {
		d, err := time.ParseDuration(g.IdleTimeout)
		if err != nil {
			return nil, fmt.Errorf("parsing idle_timeout: %w", err)
		}
		opts = append(opts, gateway.WithIdleTimeout(d))
	}
	if len(g.AllowedOrigins) > 0 {
		opts = append(opts, gateway.WithAllowedOrigins(g.AllowedOrigins))
	}

	return gateway.NewServer(t, sub, opts...), nil
}
