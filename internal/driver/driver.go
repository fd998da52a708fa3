package driver

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/pixil98/go-errors"
)

const (
	DefaultTickLength = time.Second * 30
)

// Manager is anything that needs periodic work.
type Manager interface {
	Tick(context.Context) error
}

// Driver runs periodic work, such as a town's resync broadcast, on a fixed
// interval. A failing manager is logged and retried on the next tick; it
// never stops the others.
type Driver struct {
	tickLength time.Duration
	names      []string
	managers   map[string]Manager
}

// NewDriver ticks each manager under its name, in name order.
func NewDriver(managers map[string]Manager, opts ...DriverOpt) *Driver {
	d := &Driver{
		tickLength: DefaultTickLength,
		managers:   managers,
	}
	for name := range managers {
		d.names = append(d.names, name)
	}
	sort.Strings(d.names)

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *Driver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	slog.InfoContext(ctx, "driver started", "tick", d.tickLength.String(), "managers", d.names)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := d.Tick(ctx); err != nil {
				slog.WarnContext(ctx, "tick incomplete", "error", err)
			}
		}
	}
}

// Tick runs every manager once. Each manager gets at most one tick length;
// a manager still running then sees its context cancelled.
func (d *Driver) Tick(ctx context.Context) error {
	el := errors.NewErrorList()

	for _, name := range d.names {
		el.Add(d.tickOne(ctx, name))
	}

	return el.Err()
}

func (d *Driver) tickOne(ctx context.Context, name string) error {
	ctx, cancel := context.WithTimeout(ctx, d.tickLength)
	defer cancel()

	start := time.Now()
	err := d.managers[name].Tick(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "manager tick failed", "manager", name, "error", err)
		return fmt.Errorf("%s: %w", name, err)
	}

	slog.DebugContext(ctx, "manager ticked", "manager", name, "took", time.Since(start))
	return nil
}
