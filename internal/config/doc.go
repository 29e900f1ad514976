// Package config provides configuration management for prompt-album-builder.
//
// This package handles:
//   - Loading and saving settings from YAML files
//   - Default configuration values
//   - Validation of required folders
//   - Conversion to scanner options for other packages
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Supported extensions: .jpg .jpeg .png .heic .raw .cr2 .nef
//	// Logs written to ./logs
//	// Photos are moved, not copied
//
// # Loading from File
//
//	settings, err := config.Load("config.yaml")
//	if errors.Is(err, config.ErrConfigNotFound) {
//	    // ask the user to create one
//	}
//
// A minimal file:
//
//	source_folder: /photos/incoming
//	target_albums_folder: /photos/albums
//	supported_extensions: [.jpg, .png]
//	logging:
//	  level: info
//	  log_dir: logs
//
// # Saving Settings
//
//	settings.BackupMode = true
//	err := settings.Save("config.yaml")
package config
