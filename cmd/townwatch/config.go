package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pixil98/go-errors"
)

type config struct {
	URL            string        `env:"TOWNWATCH_URL" envDefault:"ws://127.0.0.1:8081/ws"`
	User           string        `env:"TOWNWATCH_USER" envDefault:"townwatch"`
	Area           string        `env:"TOWNWATCH_AREA"`
	SelectCalendar string        `env:"TOWNWATCH_SELECT_CALENDAR"`
	DialTimeout    time.Duration `env:"TOWNWATCH_DIAL_TIMEOUT" envDefault:"10s"`
	LogLevel       slog.Level    `env:"TOWNWATCH_LOG_LEVEL" envDefault:"INFO"`
}

func loadConfig() (config, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c config) validate() error {
	el := errors.NewErrorList()

	if c.URL == "" {
		el.Add(fmt.Errorf("TOWNWATCH_URL is required"))
	}
	if c.User == "" {
		el.Add(fmt.Errorf("TOWNWATCH_USER is required"))
	}
	if c.SelectCalendar != "" && c.Area == "" {
		el.Add(fmt.Errorf("TOWNWATCH_SELECT_CALENDAR needs TOWNWATCH_AREA"))
	}
	if c.DialTimeout <= 0 {
		el.Add(fmt.Errorf("TOWNWATCH_DIAL_TIMEOUT must be positive"))
	}

	return el.Err()
}
