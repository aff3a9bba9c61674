package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Report  ReportConfig  `toml:"report"`
	UI      UIConfig      `toml:"ui"`
}

type LoggingConfig struct {
	Level   string        `toml:"level"`
	DevFile DevFileConfig `toml:"dev_file"`
}

type DevFileConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type ReportConfig struct {
	OutDir      string `toml:"out_dir"`
	ChartWidth  int    `toml:"chart_width"`
	ChartHeight int    `toml:"chart_height"`
}

type UIConfig struct {
	ShowHelpBar   bool `toml:"show_help_bar"`
	ShowStatsLine bool `toml:"show_stats_line"`
}

func Default(reportDir string) Config {
	return Config{
		Logging: LoggingConfig{
			Level: "info",
			DevFile: DevFileConfig{
				Enabled: true,
				Dir:     "",
			},
		},
		Report: ReportConfig{
			OutDir:      reportDir,
			ChartWidth:  1024,
			ChartHeight: 512,
		},
		UI: UIConfig{
			ShowHelpBar:   true,
			ShowStatsLine: true,
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	switch strings.TrimSpace(strings.ToLower(c.Logging.Level)) {
	case "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}

	if strings.TrimSpace(c.Report.OutDir) == "" {
		return errors.New("report.out_dir is required")
	}
	if c.Report.ChartWidth <= 0 {
		return fmt.Errorf("report.chart_width must be > 0, got %d", c.Report.ChartWidth)
	}
	if c.Report.ChartHeight <= 0 {
		return fmt.Errorf("report.chart_height must be > 0, got %d", c.Report.ChartHeight)
	}

	return nil
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
