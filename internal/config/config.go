package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configName = "coderbrain"
	configType = "toml"
	configDir  = ".claude"
	envPrefix  = "CODERBRAIN"

	keyVersion    = "version"
	keyMemoryRoot = "paths.memory_root"
	keyTmpRoot    = "paths.tmp_root"
	keyCacheRoot  = "paths.cache_root"
	keyLogsDir    = "paths.logs_dir"
	keyVCSBinary  = "vcs.binary"
	keyVCSTimeout = "vcs.timeout"
	keyLogLevel   = "log.level"
	keyLogFile    = "log.file"
)

const (
	DefaultMemoryRoot = ".claude/memory"
	DefaultTmpRoot    = ".claude/tmp"
	DefaultCacheRoot  = ".claude/cache"
	DefaultLogsDir    = "logs"
	DefaultVCSBinary  = "git"
	DefaultVCSTimeout = 3 * time.Second
	DefaultLogLevel   = "error"
)

var ErrEmptyProjectDir = errors.New("project directory is empty")

// Config is the resolved configuration. Every path is absolute.
type Config struct {
	ProjectDir string
	// File is the config file that was read, empty when defaults only.
	File       string
	MemoryRoot string
	TmpRoot    string
	CacheRoot  string
	LogsDir    string
	VCSBinary  string
	VCSTimeout time.Duration
	LogLevel   slog.Level
	LogFile    string
}

// DefaultFile is where the config file lives when --config is not given.
func DefaultFile(projectDir string) string {
	return filepath.Join(projectDir, configDir, configName+"."+configType)
}

// Load resolves configuration for projectDir from defaults, the optional
// config file and CODERBRAIN_ environment overrides. An explicit cfgFile must
// exist; the default location may be absent.
func Load(cfg *viper.Viper, projectDir, cfgFile string) (Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	if strings.TrimSpace(projectDir) == "" {
		return Config{}, ErrEmptyProjectDir
	}

	projectDir, err := normalizePath(projectDir)
	if err != nil {
		return Config{}, err
	}

	cfg.SetDefault(keyVersion, currentSchemaVersion)
	cfg.SetDefault(keyMemoryRoot, DefaultMemoryRoot)
	cfg.SetDefault(keyTmpRoot, DefaultTmpRoot)
	cfg.SetDefault(keyCacheRoot, DefaultCacheRoot)
	cfg.SetDefault(keyLogsDir, DefaultLogsDir)
	cfg.SetDefault(keyVCSBinary, DefaultVCSBinary)
	cfg.SetDefault(keyVCSTimeout, DefaultVCSTimeout.String())
	cfg.SetDefault(keyLogLevel, DefaultLogLevel)
	cfg.SetDefault(keyLogFile, "")

	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	if cfgFile != "" {
		if _, err := os.Stat(cfgFile); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		cfg.SetConfigFile(cfgFile)
	} else {
		cfg.SetConfigName(configName)
		cfg.SetConfigType(configType)
		cfg.AddConfigPath(filepath.Join(projectDir, configDir))
	}

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	if version := cfg.GetInt(keyVersion); version > currentSchemaVersion {
		return Config{}, fmt.Errorf("unsupported config schema version %d (current %d)", version, currentSchemaVersion)
	}

	resolved := Config{
		ProjectDir: projectDir,
		File:       cfg.ConfigFileUsed(),
		VCSBinary:  strings.TrimSpace(cfg.GetString(keyVCSBinary)),
	}
	if resolved.VCSBinary == "" {
		resolved.VCSBinary = DefaultVCSBinary
	}

	for key, dst := range map[string]*string{
		keyMemoryRoot: &resolved.MemoryRoot,
		keyTmpRoot:    &resolved.TmpRoot,
		keyCacheRoot:  &resolved.CacheRoot,
		keyLogsDir:    &resolved.LogsDir,
	} {
		value := strings.TrimSpace(cfg.GetString(key))
		if value == "" {
			return Config{}, fmt.Errorf("config %s is empty", key)
		}
		if *dst, err = resolvePath(projectDir, value); err != nil {
			return Config{}, err
		}
	}

	if logFile := strings.TrimSpace(cfg.GetString(keyLogFile)); logFile != "" {
		if resolved.LogFile, err = resolvePath(projectDir, logFile); err != nil {
			return Config{}, err
		}
	}

	resolved.VCSTimeout, err = time.ParseDuration(strings.TrimSpace(cfg.GetString(keyVCSTimeout)))
	if err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", keyVCSTimeout, err)
	}
	if resolved.VCSTimeout <= 0 {
		return Config{}, fmt.Errorf("config %s must be positive, got %s", keyVCSTimeout, resolved.VCSTimeout)
	}

	if err := resolved.LogLevel.UnmarshalText([]byte(cfg.GetString(keyLogLevel))); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", keyLogLevel, err)
	}

	return resolved, nil
}

func resolvePath(projectDir, path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(projectDir, path)
	}
	return normalizePath(path)
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", path, err)
	}

	return filepath.Clean(absPath), nil
}
