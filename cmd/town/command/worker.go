package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-service"
	"github.com/pixil98/go-town/internal/driver"
	"github.com/pixil98/go-town/internal/messaging"
	"github.com/pixil98/go-town/internal/town"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	townMap, err := cfg.Storage.LoadTownMap(cfg.Town)
	if err != nil {
		return nil, err
	}

	// Setup the broadcast channel
	natsServer, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	emitter := messaging.NewNatsEmitter(natsServer, cfg.Town)

	tw, err := town.NewTown(cfg.Town, townMap, emitter)
	if err != nil {
		return nil, fmt.Errorf("creating town: %w", err)
	}

	gw, err := cfg.Gateway.buildGateway(tw, natsServer, natsServer.Ready())
	if err != nil {
		return nil, fmt.Errorf("creating gateway: %w", err)
	}

	var driverOpts []driver.DriverOpt
	if cfg.ResyncInterval != "" {
		d, err := time.ParseDuration(cfg.ResyncInterval)
		if err != nil {
			return nil, fmt.Errorf("parsing resync_interval: %w", err)
		}
		driverOpts = append(driverOpts, driver.WithTickLength(d))
	}

	return service.WorkerList{
		"nats":    natsServer,
		"gateway": gw,
		"driver":  driver.NewDriver(map[string]driver.Manager{"resync:" + cfg.Town: tw}, driverOpts...),
	}, nil
}
