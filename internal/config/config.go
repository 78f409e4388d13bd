package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds deployment settings shared by the commands.
type Config struct {
	SSH   SSHConfig   `yaml:"ssh"`
	Web   WebConfig   `yaml:"web"`
	Store StoreConfig `yaml:"store"`
	Audio AudioConfig `yaml:"audio"`
	Log   LogConfig   `yaml:"log"`
}

type SSHConfig struct {
	Host        string `yaml:"host"`
	Port        string `yaml:"port"`
	HostKeyPath string `yaml:"host_key"`
	DisplayHost string `yaml:"display_host"` // Host shown to web visitors in the ssh command
}

type WebConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type StoreConfig struct {
	Path string `yaml:"path"` // SQLite file; empty keeps scores in memory
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // Terminal game only; empty discards logs
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		SSH: SSHConfig{
			Host:        "0.0.0.0",
			Port:        "2222",
			HostKeyPath: ".ssh/id_ed25519",
			DisplayHost: "localhost",
		},
		Web: WebConfig{
			Host: "0.0.0.0",
			Port: "8080",
		},
		Store: StoreConfig{
			Path: "braindots.db",
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  1,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. A missing file is not an error; an empty path
// uses $BRAINDOTS_CONFIG if set.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = GetEnv("BRAINDOTS_CONFIG", "")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overrides fields from environment variables.
func (c *Config) applyEnv() {
	c.SSH.Host = GetEnv("SSH_HOST", c.SSH.Host)
	c.SSH.Port = GetEnv("SSH_PORT", c.SSH.Port)
	c.SSH.HostKeyPath = GetEnv("SSH_HOST_KEY", c.SSH.HostKeyPath)
	c.SSH.DisplayHost = GetEnv("SSH_DISPLAY_HOST", c.SSH.DisplayHost)
	c.Web.Host = GetEnv("WEB_HOST", c.Web.Host)
	c.Web.Port = GetEnv("WEB_PORT", c.Web.Port)
	c.Store.Path = GetEnv("BRAINDOTS_DB", c.Store.Path)
	c.Audio.Enabled = GetEnvBool("BRAINDOTS_AUDIO", c.Audio.Enabled)
	c.Audio.Volume = GetEnvFloat("BRAINDOTS_VOLUME", c.Audio.Volume)
	c.Log.Level = GetEnv("BRAINDOTS_LOG_LEVEL", c.Log.Level)
	c.Log.File = GetEnv("BRAINDOTS_LOG_FILE", c.Log.File)
}
