package main

import (
	"log/slog"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "url", cfg.URL, "ws://127.0.0.1:8081/ws")
	testutil.AssertEqual(t, "user", cfg.User, "townwatch")
	testutil.AssertEqual(t, "dial timeout", cfg.DialTimeout, 10*time.Second)
	testutil.AssertEqual(t, "log level", cfg.LogLevel, slog.LevelInfo)
}

func TestLoadConfig(t *testing.T) {
	tests := map[string]struct {
		env    map[string]string
		expErr string
	}{
		"area and calendar": {
			env: map[string]string{"TOWNWATCH_AREA": "cal-1", "TOWNWATCH_SELECT_CALENDAR": "Team"},
		},
		"debug logging": {
			env: map[string]string{"TOWNWATCH_LOG_LEVEL": "DEBUG"},
		},
		"calendar without area": {
			env:    map[string]string{"TOWNWATCH_SELECT_CALENDAR": "Team"},
			expErr: "needs TOWNWATCH_AREA",
		},
		"bad timeout": {
			env:    map[string]string{"TOWNWATCH_DIAL_TIMEOUT": "soon"},
			expErr: "parse env:",
		},
		"zero timeout": {
			env:    map[string]string{"TOWNWATCH_DIAL_TIMEOUT": "0s"},
			expErr: "must be positive",
		},
		"bad log level": {
			env:    map[string]string{"TOWNWATCH_LOG_LEVEL": "loud"},
			expErr: "parse env:",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := loadConfig()
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

func TestDescribeName(t *testing.T) {
	name := "Team"
	testutil.AssertEqual(t, "absent", describeName(nil), "(none)")
	testutil.AssertEqual(t, "present", describeName(&name), "Team")
}
