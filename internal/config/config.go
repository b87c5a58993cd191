package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvPrefix = "ENIGMA"

	defaultMissionSize = 1000
	defaultMaxAgents   = 64
	defaultTimeout     = 30 * time.Minute
	defaultPort        = "8080"
	defaultReportPath  = ""
)

// Config is the runtime configuration shared by the CLI and the web server.
type Config struct {
	Log     LogConfig
	Cracker CrackerConfig
	Server  ServerConfig
	Report  ReportConfig
}

type LogConfig struct {
	Level    string
	Encoding string
}

// CrackerConfig sizes a crack job: how many agents run concurrently and how
// many candidates each mission holds. MaxAgents caps what a request may ask
// for.
type CrackerConfig struct {
	Agents      int
	MaxAgents   int
	MissionSize int64
	Timeout     time.Duration
}

type ServerConfig struct {
	Port string
}

// ReportConfig points at the JSON metrics report. Empty disables it.
type ReportConfig struct {
	Path string
}

func NewDefaultConfig() *Config {
	return &Config{
		Log:     LogConfig{Level: "info", Encoding: "console"},
		Cracker: CrackerConfig{Agents: runtime.NumCPU(), MaxAgents: defaultMaxAgents, MissionSize: defaultMissionSize, Timeout: defaultTimeout},
		Server:  ServerConfig{Port: defaultPort},
		Report:  ReportConfig{Path: defaultReportPath},
	}
}

// SetDefaults registers every key with v so that environment overrides such
// as ENIGMA_CRACKER_AGENTS are picked up by AutomaticEnv.
func SetDefaults(v *viper.Viper) {
	d := NewDefaultConfig()
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.encoding", d.Log.Encoding)
	v.SetDefault("cracker.agents", d.Cracker.Agents)
	v.SetDefault("cracker.maxAgents", d.Cracker.MaxAgents)
	v.SetDefault("cracker.missionSize", d.Cracker.MissionSize)
	v.SetDefault("cracker.timeout", d.Cracker.Timeout)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("report.path", d.Report.Path)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads the configuration out of v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Log: LogConfig{
			Level:    v.GetString("log.level"),
			Encoding: v.GetString("log.encoding"),
		},
		Cracker: CrackerConfig{
			Agents:      v.GetInt("cracker.agents"),
			MaxAgents:   v.GetInt("cracker.maxAgents"),
			MissionSize: v.GetInt64("cracker.missionSize"),
			Timeout:     v.GetDuration("cracker.timeout"),
		},
		Server: ServerConfig{Port: v.GetString("server.port")},
		Report: ReportConfig{Path: v.GetString("report.path")},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Cracker.Agents < 1:
		return fmt.Errorf("config: cracker.agents must be at least 1, got %d", c.Cracker.Agents)
	case c.Cracker.MaxAgents < 1:
		return fmt.Errorf("config: cracker.maxAgents must be at least 1, got %d", c.Cracker.MaxAgents)
	case c.Cracker.MissionSize < 1:
		return fmt.Errorf("config: cracker.missionSize must be at least 1, got %d", c.Cracker.MissionSize)
	case c.Cracker.Timeout < 0:
		return fmt.Errorf("config: cracker.timeout must not be negative, got %s", c.Cracker.Timeout)
	case c.Server.Port == "":
		return fmt.Errorf("config: server.port must be set")
	}
	return nil
}

// Address is the listen address of the web server.
func (c *Config) Address() string {
	if strings.Contains(c.Server.Port, ":") {
		return c.Server.Port
	}
	return ":" + c.Server.Port
}
