package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Paths        []string // .gsa, .txt and .mic files, or a directory
	SettingsPath string   // optional HCL settings file

	// OutDir overrides the output base directory of the settings file.
	OutDir string
	// DeadStores overrides the settings file when non-nil.
	DeadStores *bool

	DryRun    bool
	NoColor   bool
	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.Paths) == 0 {
		return nil, errors.New("at least one input path is required")
	}
	return &cfg, nil
}
