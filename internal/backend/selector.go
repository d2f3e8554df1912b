package backend

import (
	"github.com/rs/zerolog"

	"refdata/internal/config"
)

// Mode identifies which transport the process routes through.
type Mode int

const (
	ModeRemote Mode = iota
	ModeLocal
)

func (m Mode) String() string {
	if m == ModeLocal {
		return "local"
	}
	return "remote"
}

// Detect resolves the backend mode from process-wide configuration. It is a
// pure function of startup state: an explicit REFDATA_BACKEND wins,
// otherwise a configured local database path selects the embedded store.
// There is no error case; anything else resolves Remote.
func Detect(cfg config.Config) Mode {
	switch cfg.BackendMode {
	case "local":
		return ModeLocal
	case "remote":
		return ModeRemote
	}
	if cfg.LocalDBPath != "" {
		return ModeLocal
	}
	return ModeRemote
}

// New opens the backend Detect selects. Selection happens once here; no
// caller branches on the mode afterwards.
func New(cfg config.Config, logger zerolog.Logger) (Backend, error) {
	mode := Detect(cfg)
	logger.Info().Str("mode", mode.String()).Msg("backend resolved")

	if mode == ModeLocal {
		return OpenLocal(cfg.LocalDBPath)
	}
	return NewRemote(cfg.RemoteBaseURL, logger), nil
}
