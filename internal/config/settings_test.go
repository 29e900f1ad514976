package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Load() error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "source")
	if err := os.Mkdir(source, 0755); err != nil {
		t.Fatal(err)
	}
	notDir := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(notDir, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		content string
	}{
		{"empty file", "   \n"},
		{"bad yaml", "source_folder: [unterminated"},
		{"missing source", "target_albums_folder: " + dir},
		{"missing target", "source_folder: " + source},
		{"source does not exist", "source_folder: " + filepath.Join(dir, "nope") + "\ntarget_albums_folder: " + dir},
		{"source is a file", "source_folder: " + notDir + "\ntarget_albums_folder: " + dir},
		{"bad log level", "source_folder: " + source + "\ntarget_albums_folder: " + dir + "\nlogging:\n  level: loud\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			_, err := Load(path)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoad_DefaultsAndNormalization(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "source")
	if err := os.Mkdir(source, 0755); err != nil {
		t.Fatal(err)
	}

	content := "source_folder: " + source + "\n" +
		"target_albums_folder: " + filepath.Join(dir, "albums") + "\n" +
		"supported_extensions: [JPG, .Png, '']\n" +
		"logging:\n  level: DEBUG\n" +
		"gallery:\n  thumbnail_size: 0\n"

	settings, err := Load(writeConfig(t, dir, content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if want := []string{".jpg", ".png"}; !reflect.DeepEqual(settings.SupportedExtensions, want) {
		t.Errorf("SupportedExtensions = %q, want %q", settings.SupportedExtensions, want)
	}
	if settings.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", settings.Logging.Level)
	}
	if settings.Logging.LogDir != "logs" {
		t.Errorf("Logging.LogDir = %q, want logs", settings.Logging.LogDir)
	}
	if !settings.Gallery.Enabled || settings.Gallery.ThumbnailSize != 200 {
		t.Errorf("Gallery = %+v, want enabled with size 200", settings.Gallery)
	}
	if settings.MaxConcurrentAlbums != 1 {
		t.Errorf("MaxConcurrentAlbums = %d, want 1", settings.MaxConcurrentAlbums)
	}

	opts := settings.ToScanOptions()
	if opts.Root != source || !reflect.DeepEqual(opts.Extensions, settings.SupportedExtensions) {
		t.Errorf("ToScanOptions() = %+v", opts)
	}
}

func TestSettings_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "source")
	if err := os.Mkdir(source, 0755); err != nil {
		t.Fatal(err)
	}

	settings := DefaultSettings()
	settings.SourceFolder = source
	settings.TargetAlbumsFolder = filepath.Join(dir, "albums")
	settings.BackupMode = true
	settings.MaxConcurrentAlbums = 4

	path := filepath.Join(dir, "nested", "config.yaml")
	if err := settings.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(loaded, settings) {
		t.Errorf("Load(Save(s)) = %+v, want %+v", loaded, settings)
	}
}

func TestPathFromEnv(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	if got := PathFromEnv(DefaultPath); got != DefaultPath {
		t.Errorf("PathFromEnv() = %q, want %q", got, DefaultPath)
	}

	t.Setenv(EnvConfigPath, "/etc/albums.yaml")
	if got := PathFromEnv(DefaultPath); got != "/etc/albums.yaml" {
		t.Errorf("PathFromEnv() = %q, want /etc/albums.yaml", got)
	}
}

func TestResolvePath(t *testing.T) {
	t.Setenv(EnvConfigPath, "/env/config.yaml")

	tests := []struct {
		explicit string
		want     string
	}{
		{"custom.yaml", "custom.yaml"},
		{"  ", "/env/config.yaml"},
		{"", "/env/config.yaml"},
	}

	for _, tt := range tests {
		if got := ResolvePath(tt.explicit); got != tt.want {
			t.Errorf("ResolvePath(%q) = %q, want %q", tt.explicit, got, tt.want)
		}
	}
}
