package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/prompt-album-builder/internal/scanner"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file used when none is given.
const DefaultPath = "config.yaml"

// EnvConfigPath names the environment variable that overrides DefaultPath.
const EnvConfigPath = "ALBUM_BUILDER_CONFIG"

var (
	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidConfig is returned for unreadable, malformed or incomplete configuration.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Settings holds all configuration options.
type Settings struct {
	// Folders
	SourceFolder        string   `yaml:"source_folder"`
	TargetAlbumsFolder  string   `yaml:"target_albums_folder"`
	SupportedExtensions []string `yaml:"supported_extensions"`

	// Placement
	BackupMode          bool `yaml:"backup_mode"`
	MaxConcurrentAlbums int  `yaml:"max_concurrent_albums"`

	Logging LoggingSettings `yaml:"logging"`
	Gallery GallerySettings `yaml:"gallery"`
}

// LoggingSettings controls the run log.
type LoggingSettings struct {
	Level  string `yaml:"level"`   // debug, info, warn, error
	LogDir string `yaml:"log_dir"` // unmatched.log and run logs
}

// GallerySettings controls the HTML gallery index.
type GallerySettings struct {
	Enabled       bool `yaml:"enabled"`
	ThumbnailSize int  `yaml:"thumbnail_size"`
}

// DefaultExtensions are scanned when supported_extensions is not set.
var DefaultExtensions = []string{".jpg", ".jpeg", ".png", ".heic", ".raw", ".cr2", ".nef"}

// DefaultSettings returns settings with default values.
// SourceFolder and TargetAlbumsFolder have no default.
func DefaultSettings() *Settings {
	exts := make([]string, len(DefaultExtensions))
	copy(exts, DefaultExtensions)

	return &Settings{
		SupportedExtensions: exts,
		BackupMode:          false,
		MaxConcurrentAlbums: 1,
		Logging: LoggingSettings{
			Level:  "info",
			LogDir: "logs",
		},
		Gallery: GallerySettings{
			Enabled:       true,
			ThumbnailSize: 200,
		},
	}
}

// PathFromEnv returns the configuration path from EnvConfigPath, or fallback.
func PathFromEnv(fallback string) string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	return fallback
}

// ResolvePath picks the configuration file: an explicit path wins, then
// EnvConfigPath, then DefaultPath.
func ResolvePath(explicit string) string {
	if p := strings.TrimSpace(explicit); p != "" {
		return p
	}
	return PathFromEnv(DefaultPath)
}

// Load reads settings from a YAML file over the defaults and validates them.
// A missing file yields ErrConfigNotFound.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s: please create the configuration file", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("%w: error reading %s: %v", ErrInvalidConfig, path, err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("%w: configuration file %s is empty", ErrInvalidConfig, path)
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("%w: invalid YAML syntax in %s: %v", ErrInvalidConfig, path, err)
	}

	settings.normalize()
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return settings, nil
}

// Validate checks required fields and that the source folder is an existing directory.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.SourceFolder) == "" {
		return fmt.Errorf("%w: source_folder not specified", ErrInvalidConfig)
	}
	if strings.TrimSpace(s.TargetAlbumsFolder) == "" {
		return fmt.Errorf("%w: target_albums_folder not specified", ErrInvalidConfig)
	}

	info, err := os.Stat(s.SourceFolder)
	if err != nil {
		return fmt.Errorf("%w: source folder does not exist: %s", ErrInvalidConfig, s.SourceFolder)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: source folder is not a directory: %s", ErrInvalidConfig, s.SourceFolder)
	}

	if len(s.SupportedExtensions) == 0 {
		return fmt.Errorf("%w: supported_extensions is empty", ErrInvalidConfig)
	}

	switch s.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown logging level %q", ErrInvalidConfig, s.Logging.Level)
	}

	return nil
}

// Save writes settings to a YAML file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ToScanOptions converts settings to scanner options.
func (s *Settings) ToScanOptions() scanner.Options {
	return scanner.Options{
		Root:       s.SourceFolder,
		Extensions: s.SupportedExtensions,
	}
}

// normalize lower-cases extensions, adds missing leading dots and fills
// zero numeric fields with defaults.
func (s *Settings) normalize() {
	exts := make([]string, 0, len(s.SupportedExtensions))
	for _, ext := range s.SupportedExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	s.SupportedExtensions = exts

	s.Logging.Level = strings.ToLower(strings.TrimSpace(s.Logging.Level))
	if s.Logging.Level == "" {
		s.Logging.Level = "info"
	}
	if s.Logging.LogDir == "" {
		s.Logging.LogDir = "logs"
	}
	if s.MaxConcurrentAlbums < 1 {
		s.MaxConcurrentAlbums = 1
	}
	if s.Gallery.ThumbnailSize <= 0 {
		s.Gallery.ThumbnailSize = 200
	}
}
