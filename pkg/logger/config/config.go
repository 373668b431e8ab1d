package config

import "fmt"

const (
	DEBUG_LEVEL = iota
	INFO_LEVEL
	WARN_LEVEL
	ERROR_LEVEL
)

type Configuration struct {
	Level      int
	TimeFormat string
}

func (cfg Configuration) Validate() error {
	if cfg.Level < DEBUG_LEVEL || cfg.Level > ERROR_LEVEL {
		return fmt.Errorf("unknown log level: %d", cfg.Level)
	}
	if cfg.TimeFormat == "" {
		return fmt.Errorf("log time format must not be empty")
	}
	return nil
}
