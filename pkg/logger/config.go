package logger

import "log/slog"

// Config holds logger configuration loaded from the environment
type Config struct {
	Env     string     `env:"APP_ENV" envDefault:"development"`
	Service string     `env:"APP_NAME" envDefault:"sessiond"`
	Level   slog.Level `env:"LOG_LEVEL"` // overrides the environment preset when set
	Format  Format     `env:"LOG_FORMAT"`
}

// NewFromConfig creates a logger from the environment preset, then applies the
// explicit level and format from cfg and finally opts.
func NewFromConfig(cfg Config, opts ...Option) *slog.Logger {
	configOpts := []Option{WithEnvironment(cfg.Env, cfg.Service)}

	if cfg.Level != 0 {
		configOpts = append(configOpts, WithLevel(cfg.Level))
	}
	if cfg.Format != "" {
		configOpts = append(configOpts, WithFormat(cfg.Format))
	}

	return New(append(configOpts, opts...)...)
}
