// Package config loads application settings from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/guillerg01/date-checker/internal/citas"
	"github.com/guillerg01/date-checker/internal/dates"
)

// Config holds every tunable of the application. All fields can be set in
// the YAML file or overridden through the environment; secrets are expected
// to arrive via environment variables in deployments.
type Config struct {
	Listen   string `yaml:"listen"`
	DataDir  string `yaml:"data_dir"`
	LogLevel string `yaml:"log_level"`

	TargetURL    string `yaml:"target_url"`
	CutoffDate   string `yaml:"cutoff_date"`
	PollSchedule string `yaml:"poll_schedule"`
	DedupeAlerts bool   `yaml:"dedupe_alerts"`

	AlertRecipient     string `yaml:"alert_recipient"`
	Web3FormsAccessKey string `yaml:"web3forms_access_key"`
	AlertFromName      string `yaml:"alert_from_name"`
	AlertFromEmail     string `yaml:"alert_from_email"`

	BookingBaseURL   string `yaml:"booking_base_url"`
	BookingPublicKey string `yaml:"booking_public_key"`
	BookingServiceID string `yaml:"booking_service_id"`
	BookingAgendaID  string `yaml:"booking_agenda_id"`
	DefaultStartDate string `yaml:"default_start_date"`
	DefaultEndDate   string `yaml:"default_end_date"`
}

// Load reads the YAML file at path, applies environment overrides and fills
// in defaults. A missing file is not an error; the environment and defaults
// are enough to run.
func Load(path string) (*Config, error) {
	cfg := &Config{DedupeAlerts: true}

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	envOverride(&cfg.Listen, "LISTEN_ADDR")
	envOverride(&cfg.DataDir, "DATA_DIR")
	envOverride(&cfg.LogLevel, "LOG_LEVEL")
	envOverride(&cfg.TargetURL, "TARGET_URL")
	envOverride(&cfg.CutoffDate, "CUTOFF_DATE")
	envOverride(&cfg.PollSchedule, "POLL_SCHEDULE")
	envOverrideBool(&cfg.DedupeAlerts, "DEDUPE_ALERTS")
	envOverride(&cfg.AlertRecipient, "ALERT_RECIPIENT")
	envOverride(&cfg.Web3FormsAccessKey, "WEB3FORMS_ACCESS_KEY")
	envOverride(&cfg.AlertFromName, "ALERT_FROM_NAME")
	envOverride(&cfg.AlertFromEmail, "ALERT_FROM_EMAIL")
	envOverride(&cfg.BookingBaseURL, "BOOKING_BASE_URL")
	envOverride(&cfg.BookingPublicKey, "BOOKING_PUBLIC_KEY")
	envOverride(&cfg.BookingServiceID, "BOOKING_SERVICE_ID")
	envOverride(&cfg.BookingAgendaID, "BOOKING_AGENDA_ID")
	envOverride(&cfg.DefaultStartDate, "DEFAULT_START_DATE")
	envOverride(&cfg.DefaultEndDate, "DEFAULT_END_DATE")

	applyDefaults(cfg)

	if _, err := cfg.Cutoff(); err != nil {
		return nil, fmt.Errorf("invalid cutoff_date %q: %w", cfg.CutoffDate, err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Listen == "" {
		cfg.Listen = ":8080"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "~/.local/share/date-checker"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.CutoffDate == "" {
		cfg.CutoffDate = "2025-07-31"
	}
	if cfg.PollSchedule == "" {
		cfg.PollSchedule = "@every 4m"
	}
	if cfg.BookingBaseURL == "" {
		cfg.BookingBaseURL = citas.DefaultBaseURL
	}
	if cfg.BookingPublicKey == "" {
		cfg.BookingPublicKey = citas.DefaultPublicKey
	}
	if cfg.BookingServiceID == "" {
		cfg.BookingServiceID = citas.DefaultServiceID
	}
	if cfg.BookingAgendaID == "" {
		cfg.BookingAgendaID = citas.DefaultAgendaID
	}
	if cfg.DefaultStartDate == "" {
		cfg.DefaultStartDate = "2025-10-01"
	}
	if cfg.DefaultEndDate == "" {
		cfg.DefaultEndDate = "2025-10-31"
	}
}

// Cutoff parses the configured cutoff_date (YYYY-MM-DD).
func (c *Config) Cutoff() (dates.CalendarDate, error) {
	var year, month, day int
	if _, err := fmt.Sscanf(c.CutoffDate, "%d-%d-%d", &year, &month, &day); err != nil {
		return dates.CalendarDate{}, err
	}
	d, ok := dates.New(year, time.Month(month), day)
	if !ok {
		return dates.CalendarDate{}, fmt.Errorf("not a real calendar date")
	}
	return d, nil
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideBool(field *bool, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.ParseBool(val)
		if err == nil {
			*field = parsed
		}
	}
}
