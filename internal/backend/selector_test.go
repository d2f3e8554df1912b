package backend

import (
	"testing"

	"refdata/internal/config"
)

func TestDetect_ExplicitModeWins(t *testing.T) {
	cfg := config.Config{BackendMode: "remote", LocalDBPath: "/tmp/refdata.db"}
	if got := Detect(cfg); got != ModeRemote {
		t.Fatalf("expected remote, got %s", got)
	}

	cfg = config.Config{BackendMode: "local"}
	if got := Detect(cfg); got != ModeLocal {
		t.Fatalf("expected local, got %s", got)
	}
}

func TestDetect_LocalPathSelectsLocal(t *testing.T) {
	cfg := config.Config{LocalDBPath: "/tmp/refdata.db"}
	if got := Detect(cfg); got != ModeLocal {
		t.Fatalf("expected local, got %s", got)
	}
}

func TestDetect_FallsBackToRemote(t *testing.T) {
	if got := Detect(config.Config{}); got != ModeRemote {
		t.Fatalf("expected remote fallback, got %s", got)
	}
	// Unrecognized override degrades to the default probing, not an error.
	if got := Detect(config.Config{BackendMode: "carrier-pigeon"}); got != ModeRemote {
		t.Fatalf("expected remote for unknown mode, got %s", got)
	}
}

func TestDetect_FromEnv(t *testing.T) {
	t.Setenv("REFDATA_BACKEND", "")
	t.Setenv("REFDATA_DB", "/var/lib/refdata/refdata.db")
	if got := Detect(config.FromEnv()); got != ModeLocal {
		t.Fatalf("expected local from env, got %s", got)
	}

	t.Setenv("REFDATA_BACKEND", "remote")
	if got := Detect(config.FromEnv()); got != ModeRemote {
		t.Fatalf("expected remote override from env, got %s", got)
	}
}
