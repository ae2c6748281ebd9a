// Package config loads sapconnect defaults from TOML files. The core logon
// packages never read configuration themselves; everything is passed in
// explicitly from here.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"sapconnect/internal/logon"
)

const (
	defaultLanguage = "EN"
	defaultSSO      = true
)

// Config stores runtime defaults loaded from TOML files.
type Config struct {
	System          string
	Client          string
	User            string
	Language        string
	SSO             bool
	TerminateOthers bool
	LogonCandidates []string
	StartupTimeout  time.Duration
	ReadyTimeout    time.Duration
}

type fileConfig struct {
	System          *string  `toml:"system"`
	Client          *string  `toml:"client"`
	User            *string  `toml:"user"`
	Language        *string  `toml:"language"`
	SSO             *bool    `toml:"sso"`
	TerminateOthers *bool    `toml:"terminate_other_sessions"`
	LogonCandidates []string `toml:"logon_candidates"`
	StartupTimeout  *string  `toml:"startup_timeout"`
	ReadyTimeout    *string  `toml:"ready_timeout"`
}

// Load reads config from ~/.sapconnect/config.toml and overlays a
// project-local .sapconnect/config.toml.
func Load() (*Config, error) {
	cfg := Defaults()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	workingDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	paths := []string{
		filepath.Join(homeDir, ".sapconnect", "config.toml"),
		filepath.Join(workingDir, ".sapconnect", "config.toml"),
	}
	for _, path := range paths {
		if err := overlayFromFile(&cfg, path); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Language:        defaultLanguage,
		SSO:             defaultSSO,
		LogonCandidates: logon.DefaultLogonCandidates,
		StartupTimeout:  30 * time.Second,
		ReadyTimeout:    30 * time.Second,
	}
}

func overlayFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return apply(cfg, fc, path)
}

func apply(cfg *Config, fc fileConfig, path string) error {
	if fc.System != nil {
		cfg.System = *fc.System
	}
	if fc.Client != nil {
		cfg.Client = *fc.Client
	}
	if fc.User != nil {
		cfg.User = *fc.User
	}
	if fc.Language != nil {
		cfg.Language = *fc.Language
	}
	if fc.SSO != nil {
		cfg.SSO = *fc.SSO
	}
	if fc.TerminateOthers != nil {
		cfg.TerminateOthers = *fc.TerminateOthers
	}
	if len(fc.LogonCandidates) > 0 {
		cfg.LogonCandidates = fc.LogonCandidates
	}
	if fc.StartupTimeout != nil {
		d, err := time.ParseDuration(*fc.StartupTimeout)
		if err != nil {
			return fmt.Errorf("config %s: startup_timeout: %w", path, err)
		}
		cfg.StartupTimeout = d
	}
	if fc.ReadyTimeout != nil {
		d, err := time.ParseDuration(*fc.ReadyTimeout)
		if err != nil {
			return fmt.Errorf("config %s: ready_timeout: %w", path, err)
		}
		cfg.ReadyTimeout = d
	}
	return nil
}
