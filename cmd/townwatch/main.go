// Command townwatch joins a town and logs every change to its calendar
// areas as the mirrors see them.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pixil98/go-town/internal/calendar"
	"github.com/pixil98/go-town/internal/client"
	"github.com/pixil98/go-town/internal/mirror"
)

func main() {
	if err := run(); err != nil {
		slog.Error("townwatch failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dialCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	sess, err := client.Dial(dialCtx, cfg.URL, cfg.User, client.WithAreaAdded(watchArea(cfg.Area)))
	cancel()
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close() }()

	slog.Info("joined town", "town", sess.TownId(), "user", sess.UserId(), "areas", len(sess.AreaIds()))

	if cfg.SelectCalendar != "" {
		err := sess.Update(cfg.Area, func(c *mirror.CalendarAreaController) {
			c.SelectCalendar(cfg.SelectCalendar)
		})
		if err != nil {
			return fmt.Errorf("selecting calendar: %w", err)
		}
	}

	return sess.Run(ctx)
}

// watchArea returns a hook that logs changes to every mirrored area, or only
// to areaId when it is set.
func watchArea(areaId string) func(*mirror.CalendarAreaController) {
	return func(c *mirror.CalendarAreaController) {
		if areaId != "" && c.Id() != areaId {
			return
		}

		id := c.Id()
		slog.Info("watching area", "area", id, "calendar", describeName(c.CalendarName()), "events", len(c.Events()))

		c.OnCalendarNameChange(func(name *string) {
			slog.Info("calendar changed", "area", id, "calendar", describeName(name))
		})
		c.OnEventsChange(func(events []calendar.Event) {
			slog.Info("events changed", "area", id, "count", len(events))
			for _, e := range events {
				slog.Debug("event", "area", id, "id", e.Id, "title", e.Title, "start", e.Start, "end", e.End)
			}
		})
	}
}

func describeName(name *string) string {
	if name == nil {
		return "(none)"
	}
	return *name
}
