// Package config resolves the server's startup configuration from, in
// increasing precedence: a compile-time default, an optional YAML file, an
// environment variable, and a CLI positional argument, per SPEC_FULL.md
// §9.3 and §6.1.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultListenAddr is used when no file, environment variable, or CLI
// argument supplies one.
const DefaultListenAddr = "127.0.0.1:9694"

// DefaultShardCount mirrors store.DefaultShardCount; duplicated here
// rather than imported so this package has no dependency on internal/store.
const DefaultShardCount = 32

// ListenAddrEnvVar is the environment variable checked after the config
// file and before the CLI argument.
const ListenAddrEnvVar = "KVRESP_LISTEN_ADDR"

// Config is the fully resolved startup configuration.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	ShardCount int    `yaml:"shard_count"`
}

// fileConfig mirrors the subset of Config a YAML file may set; zero values
// mean "not specified" and fall through to the next precedence level.
type fileConfig struct {
	ListenAddr string `yaml:"listen_addr"`
	ShardCount int    `yaml:"shard_count"`
}

// Load resolves a Config from, in increasing precedence:
//  1. the compile-time defaults above
//  2. configPath, if non-empty, read as YAML
//  3. the KVRESP_LISTEN_ADDR environment variable
//  4. cliAddr, the positional command-line argument, if non-empty
//
// Each layer only overrides the fields it actually specifies.
func Load(configPath, cliAddr string) (Config, error) {
	cfg := Config{ListenAddr: DefaultListenAddr, ShardCount: DefaultShardCount}

	if configPath != "" {
		fc, err := loadFile(configPath)
		if err != nil {
			return Config{}, err
		}
		if fc.ListenAddr != "" {
			cfg.ListenAddr = fc.ListenAddr
		}
		if fc.ShardCount != 0 {
			cfg.ShardCount = fc.ShardCount
		}
	}

	if v := os.Getenv(ListenAddrEnvVar); v != "" {
		cfg.ListenAddr = v
	}

	if cliAddr != "" {
		cfg.ListenAddr = cliAddr
	}

	return cfg, nil
}

func loadFile(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return fc, nil
}
