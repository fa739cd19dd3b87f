package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/BurntSushi/toml"

	"github.com/albertocavalcante/kk/internal/log"
)

// ConfigFileName is the name of the project-level config file.
const ConfigFileName = ".kk.toml"

// ConfigDirName is the name of the project-level config directory.
const ConfigDirName = ".kk"

// GlobalConfigDir is the name of the global config directory inside user's config.
const GlobalConfigDir = "kk"

// Load loads configuration from all layers, searching for project config
// from the current working directory.
//
// CLI flags are applied separately after Load() returns.
func Load() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		wd = ""
	}
	return LoadFrom(wd)
}

// LoadFrom loads configuration starting from a specific directory:
//  1. Built-in defaults
//  2. Global user config (~/.config/kk/config.toml)
//  3. Project config (.kk/config.toml or .kk.toml, searched upwards)
//  4. Environment variables (KK_*)
//
// A config file that exists but cannot be parsed is an error; a missing file is not.
func LoadFrom(dir string) (*Config, error) {
	cfg := NewConfig()

	// Layer 2: Global user config
	globalCfg, err := loadGlobalConfig()
	if err != nil {
		return nil, err
	}
	cfg.Merge(globalCfg)

	// Layer 3: Project config from specified directory
	if dir != "" {
		projectCfg, err := loadProjectConfigFrom(dir)
		if err != nil {
			return nil, err
		}
		cfg.Merge(projectCfg)
	}

	// Layer 4: Environment variables
	applyEnvironmentVariables(cfg)

	return cfg, nil
}

// loadGlobalConfig loads the global user configuration from ~/.config/kk/config.toml.
func loadGlobalConfig() (*Config, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, nil
	}

	configPath := filepath.Join(configDir, GlobalConfigDir, "config.toml")
	return loadConfigFile(configPath)
}

// loadProjectConfigFrom looks for project configuration starting from the given directory.
func loadProjectConfigFrom(dir string) (*Config, error) {
	// Search up the directory tree for config files
	current := dir
	for {
		// Check for .kk/config.toml first
		kkDir := filepath.Join(current, ConfigDirName, "config.toml")
		if cfg, err := loadConfigFile(kkDir); cfg != nil || err != nil {
			return cfg, err
		}

		// Check for .kk.toml in project root
		kkToml := filepath.Join(current, ConfigFileName)
		if cfg, err := loadConfigFile(kkToml); cfg != nil || err != nil {
			return cfg, err
		}

		// Stop at filesystem root or repository root
		if isRepositoryRoot(current) {
			break
		}

		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}

	return nil, nil
}

// isRepositoryRoot checks if the directory is a repository root (has .git).
func isRepositoryRoot(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// loadConfigFile loads a configuration from a TOML file.
// Returns (nil, nil) when the file does not exist.
func loadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		return nil, nil
	}
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		log.Warn("unknown config keys ignored", "path", path, "keys", undecoded)
	}
	log.Info("loaded config", "path", path)

	return &cfg, nil
}

// FileError reports a config file that exists but could not be read or parsed.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return "config file " + e.Path + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// applyEnvironmentVariables applies KK_* environment variables to the config.
func applyEnvironmentVariables(cfg *Config) {
	// KK_NO_VCS=1 disables VCS status like --no-vcs
	if v, ok := envBool("KK_NO_VCS"); ok {
		enabled := !v
		cfg.VCS.Enabled = &enabled
	}
	if v := os.Getenv("KK_GIT"); v != "" {
		cfg.VCS.GitPath = v
	}

	// Sort settings
	if v := os.Getenv("KK_SORT"); v != "" {
		cfg.Sort.Key = v
	}
	applyBoolEnv("KK_REVERSE", &cfg.Sort.Reverse)
	applyBoolEnv("KK_IGNORE_CASE", &cfg.Sort.CaseInsensitive)
	applyBoolEnv("KK_GROUP_DIRECTORIES_FIRST", &cfg.Sort.GroupDirectoriesFirst)

	// Display settings
	applyBoolEnv("KK_ALL", &cfg.Display.All)
	applyBoolEnv("KK_HUMAN", &cfg.Display.Human)
	applyBoolEnv("KK_SI", &cfg.Display.SI)
	if v := os.Getenv("KK_COLOR"); v != "" {
		cfg.Display.Color = v
	} else if _, ok := os.LookupEnv("NO_COLOR"); ok && os.Getenv("NO_COLOR") != "" {
		// https://no-color.org: any non-empty value disables colour
		cfg.Display.Color = ColorNever
	}
	if v := os.Getenv("KK_FORMAT"); v != "" {
		cfg.Display.Format = v
	}

	// Scan settings
	if v := os.Getenv("KK_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scan.Workers = n
		}
	}
}

// envBool parses a boolean environment variable.
func envBool(envVar string) (bool, bool) {
	v := os.Getenv(envVar)
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

// applyBoolEnv applies a boolean environment variable to a config field.
func applyBoolEnv(envVar string, target **bool) {
	if b, ok := envBool(envVar); ok {
		*target = &b
	}
}
