package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

type Config struct {
	Town           string        `json:"town"`
	ResyncInterval string        `json:"resync_interval"`
	Storage        StorageConfig `json:"storage"`
	Nats           NatsConfig    `json:"nats"`
	Gateway        GatewayConfig `json:"gateway"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.Town == "" {
		el.Add(fmt.Errorf("town is required"))
	}

	if c.ResyncInterval != "" {
		d, err := time.ParseDuration(c.ResyncInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing resync_interval: %w", err))
		} else if d < time.Second {
			el.Add(fmt.Errorf("resync_interval must be at least 1 second"))
		}
	}

	el.Add(c.Storage.validate())
	el.Add(c.Nats.validate())
	el.Add(c.Gateway.validate())

	return el.Err()
}
