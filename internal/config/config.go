package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/3-lines-studio/plusfiles/internal/core"
	"github.com/3-lines-studio/plusfiles/internal/logging"
	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort = 5173
	DefaultBase = "/"
)

// FileNames are tried in order when no explicit config path is given.
var FileNames = []string{"plusfiles.toml", "plusfiles.yaml", "plusfiles.yml"}

var ErrInvalid = errors.New("invalid config")

type Settings struct {
	Mode     core.Mode
	Port     int
	Base     string
	Root     string
	Debug    bool
	LogLevel slog.Level
}

// Overrides carries flag values. Nil fields are left untouched.
type Overrides struct {
	Port  *int
	Base  *string
	Debug *bool
	Prod  *bool
}

type fileSettings struct {
	Mode     string `toml:"mode" yaml:"mode"`
	Port     int    `toml:"port" yaml:"port"`
	Base     string `toml:"base" yaml:"base"`
	LogLevel string `toml:"log_level" yaml:"log_level"`
}

func Defaults(root string) Settings {
	return Settings{
		Mode:     core.ModeDev,
		Port:     DefaultPort,
		Base:     DefaultBase,
		Root:     root,
		LogLevel: slog.LevelInfo,
	}
}

// Load resolves settings for the project at root. Sources apply in order:
// defaults, config file, environment, overrides.
func Load(root string, path string, getenv func(string) string, o Overrides) (Settings, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	s := Defaults(root)

	file, err := findFile(root, path)
	if err != nil {
		return Settings{}, err
	}
	if file != "" {
		fs, err := readFile(file)
		if err != nil {
			return Settings{}, err
		}
		if err := s.applyFile(fs); err != nil {
			return Settings{}, err
		}
	}

	if err := s.applyEnv(getenv); err != nil {
		return Settings{}, err
	}
	s.applyOverrides(o)

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	s.Base = core.NormalizeBase(s.Base)
	return s, nil
}

// DetectMode treats NODE_ENV=production as the cached mode, anything else as
// live.
func DetectMode(getenv func(string) string) core.Mode {
	if getenv("NODE_ENV") == "production" {
		return core.ModeProd
	}
	return core.ModeDev
}

func (s *Settings) Validate() error {
	if s.Port < 0 || s.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalid, s.Port)
	}
	if err := core.ValidateBase(s.Base); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if s.Mode != core.ModeDev && s.Mode != core.ModeProd {
		return fmt.Errorf("%w: unknown mode", ErrInvalid)
	}
	return nil
}

func (s Settings) Addr() string {
	return ":" + strconv.Itoa(s.Port)
}

func findFile(root, path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return path, nil
	}
	for _, name := range FileNames {
		candidate := filepath.Join(root, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

func readFile(path string) (fileSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileSettings{}, fmt.Errorf("read config: %w", err)
	}

	var fs fileSettings
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &fs); err != nil {
			return fileSettings{}, fmt.Errorf("%w: parse %s: %v", ErrInvalid, filepath.Base(path), err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fs); err != nil {
			return fileSettings{}, fmt.Errorf("%w: parse %s: %v", ErrInvalid, filepath.Base(path), err)
		}
	default:
		return fileSettings{}, fmt.Errorf("%w: unsupported config format %q", ErrInvalid, filepath.Ext(path))
	}
	return fs, nil
}

func (s *Settings) applyFile(fs fileSettings) error {
	switch fs.Mode {
	case "":
	case "dev", "development":
		s.Mode = core.ModeDev
	case "prod", "production":
		s.Mode = core.ModeProd
	default:
		return fmt.Errorf("%w: mode %q", ErrInvalid, fs.Mode)
	}
	if fs.Port != 0 {
		s.Port = fs.Port
	}
	if fs.Base != "" {
		s.Base = fs.Base
	}
	if fs.LogLevel != "" {
		s.LogLevel = logging.ParseLevel(fs.LogLevel)
	}
	return nil
}

func (s *Settings) applyEnv(getenv func(string) string) error {
	if getenv("NODE_ENV") != "" {
		s.Mode = DetectMode(getenv)
	}
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: PORT %q", ErrInvalid, v)
		}
		s.Port = port
	}
	if v := getenv("BASE"); v != "" {
		s.Base = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		s.LogLevel = logging.ParseLevel(v)
	}
	return nil
}

func (s *Settings) applyOverrides(o Overrides) {
	if o.Port != nil {
		s.Port = *o.Port
	}
	if o.Base != nil {
		s.Base = *o.Base
	}
	if o.Prod != nil && *o.Prod {
		s.Mode = core.ModeProd
	}
	if o.Debug != nil && *o.Debug {
		s.Debug = true
		s.LogLevel = slog.LevelDebug
	}
}
