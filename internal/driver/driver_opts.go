package driver

import "time"

type DriverOpt func(*Driver)

// WithTickLength sets the interval between ticks. It also bounds how long a
// single manager may run per tick.
func WithTickLength(tickLength time.Duration) DriverOpt {
	return func(d *Driver) {
		d.tickLength = tickLength
	}
}
