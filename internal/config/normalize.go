package config

import "github.com/google/uuid"

// Normalize fills derived fields: every window gets a stable UUID so the
// HTTP API and bus events can address it. Reports whether the config changed
// and should be written back.
func Normalize(cfg Config) (Config, bool) {
	changed := false
	for i := range cfg.Windows {
		if cfg.Windows[i].UUID == "" {
			cfg.Windows[i].UUID = uuid.NewString()
			changed = true
		}
		if cfg.Windows[i].Width == 0 {
			cfg.Windows[i].Width = 800
			changed = true
		}
		if cfg.Windows[i].Height == 0 {
			cfg.Windows[i].Height = 600
			changed = true
		}
	}
	return cfg, changed
}
