// Package loadtest drives simulated users against the Faction backend API.
//
// Virtual users share only read-only configuration. Each one authenticates,
// then loops weighted tasks with a bounded random wait in between. Task
// failures are classified and recorded, never fatal to the run.
package loadtest

import (
	"fmt"
	"os"
	"time"

	"sigs.k8s.io/yaml"
)

// Config holds a load run's parameters. Loaded from YAML, overridable by
// flags in cmd/loadgen.
type Config struct {
	// Host is the base URL of the backend, e.g. http://localhost:8000.
	Host string `json:"host"`

	// Users is the number of concurrent virtual users.
	Users int `json:"users"`

	// SpawnRate is how many users to start per second.
	SpawnRate float64 `json:"spawn_rate"`

	// WaitMin/WaitMax bound the random pause between a user's tasks.
	WaitMin Duration `json:"wait_min"`
	WaitMax Duration `json:"wait_max"`

	// RunTime caps the run; zero means run until interrupted.
	RunTime Duration `json:"run_time"`
}

// Duration wraps time.Duration so YAML configs can say "2s" or "10m".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	if len(b) >= 2 && b[0] == '"' {
		parsed, err := time.ParseDuration(string(b[1 : len(b)-1]))
		if err != nil {
			return fmt.Errorf("parsing duration: %w", err)
		}
		*d = Duration(parsed)
		return nil
	}
	return fmt.Errorf("duration must be a string like \"2s\", got %s", b)
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", time.Duration(d))), nil
}

// Default run shape mirrors the original scripts: 1-3s think time.
func DefaultConfig() Config {
	return Config{
		Host:      "http://localhost:8000",
		Users:     10,
		SpawnRate: 10,
		WaitMin:   Duration(1 * time.Second),
		WaitMax:   Duration(3 * time.Second),
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	if c.Users <= 0 {
		return fmt.Errorf("users must be positive, got %d", c.Users)
	}
	if c.SpawnRate <= 0 {
		return fmt.Errorf("spawn_rate must be positive, got %v", c.SpawnRate)
	}
	if c.WaitMax < c.WaitMin {
		return fmt.Errorf("wait_max %v is below wait_min %v", time.Duration(c.WaitMax), time.Duration(c.WaitMin))
	}
	return nil
}
