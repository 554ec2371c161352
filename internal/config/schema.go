package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	currentSchemaVersion = 1
	configFileMode       = 0o644
	configDirMode        = 0o755
	tempFilePattern      = ".coderbrain-*.toml.tmp"
)

var ErrConfigExists = errors.New("config file already exists")

type fileSchema struct {
	Version int         `toml:"version"`
	Paths   pathsSchema `toml:"paths"`
	VCS     vcsSchema   `toml:"vcs"`
	Log     logSchema   `toml:"log"`
}

type pathsSchema struct {
	MemoryRoot string `toml:"memory_root"`
	TmpRoot    string `toml:"tmp_root"`
	CacheRoot  string `toml:"cache_root"`
	LogsDir    string `toml:"logs_dir"`
}

type vcsSchema struct {
	Binary  string `toml:"binary"`
	Timeout string `toml:"timeout"`
}

type logSchema struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

func defaultSchema() fileSchema {
	return fileSchema{
		Version: currentSchemaVersion,
		Paths: pathsSchema{
			MemoryRoot: DefaultMemoryRoot,
			TmpRoot:    DefaultTmpRoot,
			CacheRoot:  DefaultCacheRoot,
			LogsDir:    DefaultLogsDir,
		},
		VCS: vcsSchema{Binary: DefaultVCSBinary, Timeout: DefaultVCSTimeout.String()},
		Log: logSchema{Level: DefaultLogLevel},
	}
}

func toSchema(cfg Config) fileSchema {
	return fileSchema{
		Version: currentSchemaVersion,
		Paths: pathsSchema{
			MemoryRoot: cfg.MemoryRoot,
			TmpRoot:    cfg.TmpRoot,
			CacheRoot:  cfg.CacheRoot,
			LogsDir:    cfg.LogsDir,
		},
		VCS: vcsSchema{Binary: cfg.VCSBinary, Timeout: cfg.VCSTimeout.String()},
		Log: logSchema{Level: strings.ToLower(cfg.LogLevel.String()), File: cfg.LogFile},
	}
}

// Encode renders the resolved configuration in config file form.
func Encode(cfg Config) ([]byte, error) {
	data, err := toml.Marshal(toSchema(cfg))
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

// WriteDefault writes a config file holding the default settings to path.
// An existing file is only replaced when force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat config file: %w", err)
		}
	}

	data, err := toml.Marshal(defaultSchema())
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	return writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), configDirMode); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp config file: %w", err)
	}

	if err := tempFile.Chmod(configFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp config file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp config file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace config file: %w", err)
	}

	cleanup = false
	return nil
}
