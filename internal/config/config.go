package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/kamepallinandini997/leave-management-poc/internal/leave"
	"github.com/kamepallinandini997/leave-management-poc/internal/shared/filestore"

	"gopkg.in/yaml.v3"
)

// Config is the process configuration. Values come from defaults, then the
// optional YAML file named by CONFIG_FILE, then environment variables.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Store     StoreConfig     `yaml:"store"`
	Leave     LeaveConfig     `yaml:"leave"`
	Redis     RedisConfig     `yaml:"redis"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	Env             string        `yaml:"env"`
	ReadTimeout     time.Duration `yaml:"-"`
	WriteTimeout    time.Duration `yaml:"-"`
	IdleTimeout     time.Duration `yaml:"-"`
	ReadTimeoutRaw  string        `yaml:"read_timeout"`
	WriteTimeoutRaw string        `yaml:"write_timeout"`
	IdleTimeoutRaw  string        `yaml:"idle_timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type StoreConfig struct {
	DataDir      string `yaml:"data_dir"`
	EmployeeFile string `yaml:"employee_file"`
	LeaveFile    string `yaml:"leave_file"`
	OnCorrupt    string `yaml:"on_corrupt"`
}

type LeaveConfig struct {
	StatusValidation string `yaml:"status_validation"`
}

type RedisConfig struct {
	Addr string `yaml:"addr"`
}

type KafkaConfig struct {
	Broker  string `yaml:"broker"`
	GroupID string `yaml:"group_id"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            "3000",
			Env:             "development",
			ReadTimeoutRaw:  "5s",
			WriteTimeoutRaw: "10s",
			IdleTimeoutRaw:  "60s",
		},
		Log: LogConfig{
			Level: "info",
			File:  "leaves.log",
		},
		Store: StoreConfig{
			DataDir:      ".",
			EmployeeFile: "employees.json",
			LeaveFile:    "leave.json",
			OnCorrupt:    string(filestore.TreatAsEmpty),
		},
		Leave: LeaveConfig{
			StatusValidation: string(leave.StatusLenient),
		},
		Kafka: KafkaConfig{
			GroupID: "leave-management-audit",
		},
		RateLimit: RateLimitConfig{
			RPS:   20,
			Burst: 40,
		},
	}
}

// Load reads the process environment.
func Load() (*Config, error) {
	return LoadFrom(os.Getenv("CONFIG_FILE"), os.LookupEnv)
}

// LoadFrom builds a Config from an optional YAML file and an environment
// lookup. An empty path skips the file.
func LoadFrom(path string, lookup LookupFunc) (*Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse yaml: %w", err)
		}
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyEnv(lookup LookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("PORT", &c.Server.Port)
	str("APP_ENV", &c.Server.Env)
	str("READ_TIMEOUT", &c.Server.ReadTimeoutRaw)
	str("WRITE_TIMEOUT", &c.Server.WriteTimeoutRaw)
	str("IDLE_TIMEOUT", &c.Server.IdleTimeoutRaw)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FILE", &c.Log.File)
	str("DATA_DIR", &c.Store.DataDir)
	str("EMPLOYEE_FILE", &c.Store.EmployeeFile)
	str("LEAVE_FILE", &c.Store.LeaveFile)
	str("STORE_ON_CORRUPT", &c.Store.OnCorrupt)
	str("LEAVE_STATUS_VALIDATION", &c.Leave.StatusValidation)
	str("REDIS_ADDR", &c.Redis.Addr)
	str("KAFKA_BROKER", &c.Kafka.Broker)
	str("KAFKA_GROUP_ID", &c.Kafka.GroupID)

	if v, ok := lookup("RATE_LIMIT_RPS"); ok && v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: RATE_LIMIT_RPS: %w", err)
		}
		c.RateLimit.RPS = rps
	}
	if v, ok := lookup("RATE_LIMIT_BURST"); ok && v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: RATE_LIMIT_BURST: %w", err)
		}
		c.RateLimit.Burst = burst
	}

	return nil
}

func (c *Config) validateAndNormalize() error {
	if c.Server.Port == "" {
		return fmt.Errorf("config: server.port must be set")
	}

	var err error
	if c.Server.ReadTimeout, err = parseDuration(c.Server.ReadTimeoutRaw); err != nil {
		return fmt.Errorf("config: server.read_timeout: %w", err)
	}
	if c.Server.WriteTimeout, err = parseDuration(c.Server.WriteTimeoutRaw); err != nil {
		return fmt.Errorf("config: server.write_timeout: %w", err)
	}
	if c.Server.IdleTimeout, err = parseDuration(c.Server.IdleTimeoutRaw); err != nil {
		return fmt.Errorf("config: server.idle_timeout: %w", err)
	}

	if c.Store.EmployeeFile == "" || c.Store.LeaveFile == "" {
		return fmt.Errorf("config: store.employee_file and store.leave_file must be set")
	}
	if _, err := filestore.ParseOnCorrupt(c.Store.OnCorrupt); err != nil {
		return fmt.Errorf("config: store.on_corrupt: %w", err)
	}
	if _, err := leave.ParseStatusValidation(c.Leave.StatusValidation); err != nil {
		return fmt.Errorf("config: leave.status_validation: %w", err)
	}

	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("config: rate_limit.rps and rate_limit.burst must be positive")
	}

	return nil
}

func parseDuration(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	return time.ParseDuration(raw)
}

func (s StoreConfig) EmployeePath() string {
	return s.resolve(s.EmployeeFile)
}

func (s StoreConfig) LeavePath() string {
	return s.resolve(s.LeaveFile)
}

func (s StoreConfig) resolve(name string) string {
	if filepath.IsAbs(name) || s.DataDir == "" {
		return name
	}
	return filepath.Join(s.DataDir, name)
}

func (c Config) IsProduction() bool {
	return c.Server.Env == "production"
}
