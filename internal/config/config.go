// Package config loads and validates the service configuration.
// Values come from an optional YAML file overlaid by environment
// variables (ESTEIRA_ prefix); portal credentials are environment-only.
// The aggregation rules (exclusion list, team-to-supervisor map,
// monthly goal) are part of this immutable configuration and get
// injected into the aggregator rather than read as process globals.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the complete application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Portal  PortalConfig  `yaml:"portal"`
	Scrape  ScrapeConfig  `yaml:"scrape"`
	Paths   PathsConfig   `yaml:"paths"`
	Ranking RankingConfig `yaml:"ranking"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// PipelineTimeout bounds one full extraction plus aggregation run.
	PipelineTimeout time.Duration `yaml:"pipeline_timeout"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

// PortalConfig locates the back office and carries the login
// credentials. Credentials are supplied through the environment only.
type PortalConfig struct {
	URL       string `yaml:"url" validate:"required,url"`
	FilterURL string `yaml:"filter_url" validate:"required,url"`
	Username  string `yaml:"-" validate:"required"`
	Password  string `yaml:"-" validate:"required"`
	Headless  bool   `yaml:"headless"`
}

// ScrapeConfig holds the interaction timings. Bounded waits convert to
// fatal errors on expiry; fixed delays are worst-effort settles.
type ScrapeConfig struct {
	// WidgetTimeout bounds every widget-state poll (menu open, label
	// text confirmed).
	WidgetTimeout time.Duration `yaml:"widget_timeout"`
	// SettleDelay paces successive option clicks inside a multi-select.
	SettleDelay time.Duration `yaml:"settle_delay"`
	// DownloadWait is the fixed delay after triggering an export before
	// the download directory is inspected. No completion event exists.
	DownloadWait time.Duration `yaml:"download_wait"`
	// NavTimeout bounds page loads and the post-login redirect.
	NavTimeout time.Duration `yaml:"nav_timeout"`
}

// PathsConfig contains filesystem locations.
type PathsConfig struct {
	// DataDir holds per-scenario export folders and the ranking
	// artifacts.
	DataDir string `yaml:"data_dir" validate:"required"`
}

// ColumnsConfig names the export columns consumed by the aggregation.
type ColumnsConfig struct {
	Agent string `yaml:"agent" validate:"required"`
	Team  string `yaml:"team" validate:"required"`
	Value string `yaml:"value" validate:"required"`
}

// RankingConfig carries the fixed aggregation rules.
type RankingConfig struct {
	Columns         ColumnsConfig     `yaml:"columns"`
	Exclusions      []string          `yaml:"exclusions"`
	TeamSupervisors map[string]string `yaml:"team_supervisors"`
	MonthlyGoal     float64           `yaml:"monthly_goal" validate:"gte=0"`
}

// Load builds the configuration: defaults, then config.yaml if present,
// then environment variables, then validation.
func Load() (*Config, error) {
	cfg := Default()

	if path := findConfigFile(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process("ESTEIRA", cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks structural constraints on the configuration and on
// the fixed scenario list.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	for _, s := range Scenarios() {
		if err := v.Struct(s); err != nil {
			return fmt.Errorf("scenario %q invalid: %w", s.Name, err)
		}
	}
	return nil
}

// ExportDir returns the download folder for one scenario category.
func (c *Config) ExportDir(folder string) string {
	return filepath.Join(c.Paths.DataDir, folder)
}

// ExportPath returns the deterministic file path of a scenario export.
func (c *Config) ExportPath(folder, scenarioName string) string {
	return filepath.Join(c.Paths.DataDir, folder, scenarioName+".csv")
}

// ArtifactPath returns the path of a report family's persisted ranking.
func (c *Config) ArtifactPath(family string) string {
	return filepath.Join(c.Paths.DataDir, "ranking_"+family+".json")
}

// Default returns the configuration used when neither file nor
// environment overrides a value.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			PipelineTimeout: 30 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "both",
			FilePath: "logs/app.log",
		},
		Portal: PortalConfig{
			Headless: true,
		},
		Scrape: ScrapeConfig{
			WidgetTimeout: 5 * time.Second,
			SettleDelay:   200 * time.Millisecond,
			DownloadWait:  15 * time.Second,
			NavTimeout:    45 * time.Second,
		},
		Paths: PathsConfig{
			DataDir: "data",
		},
		Ranking: RankingConfig{
			Columns: ColumnsConfig{
				Agent: "Agente",
				Team:  "Equipe",
				Value: "Valor Contrato",
			},
			Exclusions: []string{"JOCI KELLY MENDES DE SOUZA"},
			TeamSupervisors: map[string]string{
				"ROBSON PAULINO JUNIOR": "DIEGO JIMINEZ RIBEIRO",
				"Robson Paulino Junior": "NAUALLY CHRYSTHINNA SANTOS FABRI",
				"FABIO PAES COELHO":     "GUILHERME NEVES DE ALMEIDA",
				"KAROL FERNANDA FORTES": "KAROL FERNANDA FORTES",
			},
			MonthlyGoal: 450000,
		},
	}
}

func findConfigFile() string {
	for _, location := range []string{"config.yaml", "configs/config.yaml"} {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}
