package command

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-testutil"
	"github.com/pixil98/go-town/internal/town"
)

const testMap = `{"version":1,"id":"main-street","spec":{"name":"Main Street","objects":[
  {"id":1,"name":"cal-1","type":"CalendarArea","x":0,"y":0,"width":10,"height":10,"visible":true}
]}}`

func writeTestMaps(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main-street.json"), []byte(testMap), 0644); err != nil {
		t.Fatalf("failed to write test map: %v", err)
	}
	return dir
}

func validConfig(mapsPath string) Config {
	return Config{
		Town:           "main-street",
		ResyncInterval: "30s",
		Storage:        StorageConfig{Maps: AssetConfig[*town.TownMap]{Path: mapsPath}},
		Gateway:        GatewayConfig{Addr: ":0"},
	}
}

func TestConfig_Validate(t *testing.T) {
	maps := writeTestMaps(t)

	tests := map[string]struct {
		mutate func(c *Config)
		expErr string
	}{
		"valid":             {mutate: func(c *Config) {}},
		"missing town":      {mutate: func(c *Config) { c.Town = "" }, expErr: "town is required"},
		"bad resync":        {mutate: func(c *Config) { c.ResyncInterval = "soon" }, expErr: "parsing resync_interval"},
		"short resync":      {mutate: func(c *Config) { c.ResyncInterval = "10ms" }, expErr: "at least 1 second"},
		"missing maps path": {mutate: func(c *Config) { c.Storage.Maps.Path = "" }, expErr: "maps: path is required"},
		"invalid maps path": {mutate: func(c *Config) { c.Storage.Maps.Path = "/does/not/exist" }, expErr: "maps: invalid path"},
		"bad nats timeout":  {mutate: func(c *Config) { c.Nats.StartTimeout = "never" }, expErr: "parsing start_timeout"},
		"bad nats port":     {mutate: func(c *Config) { c.Nats.Port = 70000 }, expErr: "port must be between"},
		"negative payload":  {mutate: func(c *Config) { c.Nats.MaxPayload = -1 }, expErr: "max_payload"},
		"missing addr":      {mutate: func(c *Config) { c.Gateway.Addr = "" }, expErr: "gateway addr is required"},
		"negative queue":    {mutate: func(c *Config) { c.Gateway.QueueSize = -1 }, expErr: "queue_size"},
		"bad idle timeout":  {mutate: func(c *Config) { c.Gateway.IdleTimeout = "0s" }, expErr: "idle_timeout must be positive"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig(maps)
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.expErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestStorageConfig_LoadTownMap(t *testing.T) {
	maps := writeTestMaps(t)
	cfg := StorageConfig{Maps: AssetConfig[*town.TownMap]{Path: maps}}

	m, err := cfg.LoadTownMap("main-street")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "name", m.Name, "Main Street")

	_, err = cfg.LoadTownMap("harbor")
	testutil.AssertErrorContains(t, err, "town map \"harbor\" not found")
}

func TestBuildWorkers(t *testing.T) {
	cfg := validConfig(writeTestMaps(t))

	workers, err := BuildWorkers(&cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "workers", len(workers), 3)
	for _, name := range []string{"nats", "gateway", "driver"} {
		if _, ok := workers[name]; !ok {
			t.Errorf("missing worker %q", name)
		}
	}
}

func TestBuildWorkers_KeepsInstalledLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	installed := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(installed)

	cfg := validConfig(writeTestMaps(t))
	if _, err := BuildWorkers(&cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if slog.Default().Handler() != installed.Handler() {
		t.Error("BuildWorkers replaced the default logger")
	}
	testutil.AssertEqual(t, "debug enabled", slog.Default().Enabled(context.Background(), slog.LevelDebug), true)
}

func TestBuildWorkers_UnknownTown(t *testing.T) {
	cfg := validConfig(writeTestMaps(t))
	cfg.Town = "harbor"

	_, err := BuildWorkers(&cfg)
	testutil.AssertErrorContains(t, err, "not found")
}

func TestBuildWorkers_WrongConfigType(t *testing.T) {
	_, err := BuildWorkers("nope")
	testutil.AssertErrorContains(t, err, "unable to cast config")
}
