package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/handiism/prompt-album-builder/internal/logger"
	"github.com/handiism/prompt-album-builder/internal/model"
	"github.com/rwcarlsen/goexif/exif"
)

// Options configures a Scanner.
type Options struct {
	// Root is the folder scanned recursively.
	Root string

	// Extensions lists accepted file extensions, e.g. ".jpg".
	// Matching is case-insensitive.
	Extensions []string
}

// Scanner produces photo records from a folder tree.
type Scanner struct {
	opts       Options
	extensions map[string]bool
	log        *logger.Logger
}

// New creates a Scanner. A nil log discards output.
func New(opts Options, log *logger.Logger) *Scanner {
	if log == nil {
		log = logger.Nop()
	}

	exts := make(map[string]bool, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = true
	}

	return &Scanner{opts: opts, extensions: exts, log: log}
}

// Scan walks Root and returns one record per accepted photo, in lexical
// path order. Unreadable entries are logged and skipped. Scan stops with
// the context's error when ctx is canceled.
func (s *Scanner) Scan(ctx context.Context) ([]*model.Photo, error) {
	info, err := os.Stat(s.opts.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to access source folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source folder is not a directory: %s", s.opts.Root)
	}

	var photos []*model.Photo

	err = filepath.WalkDir(s.opts.Root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			s.log.Warn("Skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path != s.opts.Root && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		if !s.accepts(d.Name()) {
			return nil
		}

		photo, err := s.readPhoto(path, d)
		if err != nil {
			s.log.Warn("Skipping photo", "path", path, "error", err)
			return nil
		}

		photos = append(photos, photo)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Scan complete", "root", s.opts.Root, "photos", len(photos))
	return photos, nil
}

func (s *Scanner) accepts(name string) bool {
	return s.extensions[strings.ToLower(filepath.Ext(name))]
}

// readPhoto builds the record for one file.
func (s *Scanner) readPhoto(path string, d fs.DirEntry) (*model.Photo, error) {
	info, err := d.Info()
	if err != nil {
		return nil, err
	}

	photo := &model.Photo{
		Path:         path,
		Filename:     d.Name(),
		FolderName:   filepath.Base(filepath.Dir(path)),
		FileCreated:  info.ModTime(),
		FileModified: info.ModTime(),
		SizeBytes:    info.Size(),
	}

	captured, location, err := readExif(path)
	if err != nil {
		s.log.Warn("No EXIF metadata, using file time", "path", path, "error", err)
		return photo, nil
	}

	photo.CaptureDate = captured
	photo.Location = location
	return photo, nil
}

// readExif returns the capture date and, when present, the GPS position.
func readExif(path string) (time.Time, *model.GeoLocation, error) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, nil, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, nil, err
	}

	captured, err := x.DateTime()
	if err != nil {
		return time.Time{}, nil, err
	}

	var location *model.GeoLocation
	if lat, long, err := x.LatLong(); err == nil {
		location = &model.GeoLocation{Latitude: lat, Longitude: long}
	}

	return captured, location, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
