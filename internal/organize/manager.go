package organize

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/handiism/prompt-album-builder/internal/config"
	ioutils "github.com/handiism/prompt-album-builder/internal/io"
	"github.com/handiism/prompt-album-builder/internal/logger"
	"github.com/handiism/prompt-album-builder/internal/matcher"
	"github.com/handiism/prompt-album-builder/internal/model"
	"github.com/handiism/prompt-album-builder/internal/prompt"
	"github.com/handiism/prompt-album-builder/internal/report"
	"github.com/handiism/prompt-album-builder/internal/scanner"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoAlbums is returned when the prompt names no albums.
	ErrNoAlbums = errors.New("could not parse any albums from prompt")

	// ErrNoPhotos is returned when the source folder holds no supported photos.
	ErrNoPhotos = errors.New("no photos found in source folder")
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a pipeline progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Options are per-run switches layered over the settings.
type Options struct {
	// DryRun computes every album and path without touching the filesystem.
	DryRun bool

	// Backup copies photos instead of moving them. It is ORed with
	// settings.BackupMode.
	Backup bool

	// Year and Month narrow every album's date filter when non-zero.
	Year  int
	Month int
}

// Manager coordinates a run.
type Manager struct {
	settings *config.Settings
	opts     Options
	runID    string
	log      *logger.Logger

	parser  *prompt.Parser
	scanner *scanner.Scanner
	matcher *matcher.Matcher
	reports *report.Writer

	specs  []model.AlbumSpec
	photos []*model.Photo
	result *model.MatchResult
	albums []*model.Album

	totalPhotos  int32
	placedPhotos int32

	onProgress func(ProgressEvent)
	mu         sync.Mutex
}

// NewManager creates a new Manager. A nil log discards output.
func NewManager(settings *config.Settings, opts Options, log *logger.Logger, onProgress func(ProgressEvent)) *Manager {
	runID := uuid.NewString()
	if log == nil {
		log = logger.Nop()
	}
	log = log.With("run_id", runID, "dry_run", opts.DryRun)

	return &Manager{
		settings:   settings,
		opts:       opts,
		runID:      runID,
		log:        log,
		parser:     prompt.NewParser(),
		scanner:    scanner.New(settings.ToScanOptions(), log),
		matcher:    matcher.New(),
		reports:    report.NewWriter(report.WriterOptions{RunID: runID, DryRun: opts.DryRun}, log),
		onProgress: onProgress,
	}
}

// Run executes every pipeline step and returns the run statistics.
// ErrNoPhotos is returned together with zero-photo statistics.
func (m *Manager) Run(ctx context.Context, promptText string) (report.RunStats, error) {
	if err := m.Initialize(promptText); err != nil {
		return report.RunStats{}, err
	}

	if err := m.Scan(ctx); err != nil {
		return report.RunStats{DryRun: m.opts.DryRun}, err
	}

	m.Match()

	if err := m.Materialize(ctx); err != nil {
		return report.RunStats{}, err
	}

	return m.WriteReports(ctx)
}

// Initialize parses the prompt into album specs.
func (m *Manager) Initialize(promptText string) error {
	if strings.TrimSpace(promptText) == "" {
		return fmt.Errorf("%w: prompt is empty", ErrNoAlbums)
	}

	specs := m.parser.Parse(promptText)
	if len(specs) == 0 {
		return ErrNoAlbums
	}

	if m.opts.Year != 0 || m.opts.Month != 0 {
		specs = ApplyFilters(specs, m.opts.Year, m.opts.Month)
	}
	m.specs = specs

	for _, spec := range specs {
		msg := fmt.Sprintf("Album: %s (keywords: %s)", spec.Name, strings.Join(spec.Keywords, ", "))
		if spec.HasDateFilter() {
			msg += fmt.Sprintf(" [date: %s]", describeFilter(spec.DateFilter))
		}
		m.progress(ProgressEvent{Message: msg, Level: LevelInfo})
	}

	return nil
}

// Scan collects photo records from the source folder.
func (m *Manager) Scan(ctx context.Context) error {
	m.progress(ProgressEvent{Message: fmt.Sprintf("Scanning photos in %s", m.settings.SourceFolder), Level: LevelInfo})

	photos, err := m.scanner.Scan(ctx)
	if err != nil {
		return fmt.Errorf("failed to scan photos: %w", err)
	}
	if len(photos) == 0 {
		m.progress(ProgressEvent{Message: "No photos found in source folder", Level: LevelWarning})
		return ErrNoPhotos
	}

	m.photos = photos
	m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d photos", len(photos)), Level: LevelInfo})
	return nil
}

// Match partitions the scanned photos across the album specs.
func (m *Manager) Match() *model.MatchResult {
	m.result = m.matcher.Match(m.photos, m.specs)

	stats := m.result.Stats()
	for _, spec := range m.specs {
		m.progress(ProgressEvent{Message: fmt.Sprintf("%s: %d photos", spec.Name, stats[spec.Name]), Level: LevelVerbose})
	}
	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Matched %d photos, %d unmatched", m.result.MatchedCount(), len(m.result.Unmatched)),
		Level:   LevelInfo,
	})

	return m.result
}

// Materialize creates one folder per non-empty album and places its photos.
//
// Specs sharing a name are materialized once. Album folders are computed
// up front; albums then run concurrently up to settings.MaxConcurrentAlbums.
func (m *Manager) Materialize(ctx context.Context) error {
	if m.result == nil {
		return errors.New("materialize called before match")
	}

	m.albums = m.planAlbums()

	limit := m.settings.MaxConcurrentAlbums
	if limit < 1 {
		limit = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, album := range m.albums {
		g.Go(func() error {
			return m.materializeAlbum(ctx, album)
		})
	}

	return g.Wait()
}

// WriteReports writes the unmatched log and the gallery index and returns
// the run statistics.
func (m *Manager) WriteReports(ctx context.Context) (report.RunStats, error) {
	if m.result == nil {
		return report.RunStats{}, errors.New("reports requested before match")
	}

	stats := report.RunStats{
		Scanned:   len(m.photos),
		Albums:    len(m.albums),
		Matched:   m.result.MatchedCount(),
		Unmatched: len(m.result.Unmatched),
		DryRun:    m.opts.DryRun,
	}

	path, err := m.reports.WriteUnmatched(ctx, m.settings.Logging.LogDir, m.result.Unmatched)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error writing unmatched log: %v", err), Level: LevelError})
	}
	stats.UnmatchedLog = path

	if m.settings.Gallery.Enabled && len(m.albums) > 0 {
		if err := m.reports.WriteGallery(ctx, m.settings.TargetAlbumsFolder, m.albums, m.settings.Gallery.ThumbnailSize); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error writing gallery: %v", err), Level: LevelError})
		}
	}

	m.log.Info("Run complete",
		"scanned", stats.Scanned,
		"albums", stats.Albums,
		"matched", stats.Matched,
		"unmatched", stats.Unmatched,
	)

	return stats, nil
}

// GetProgress returns how many photos have been placed out of the total
// matched photos.
func (m *Manager) GetProgress() (placed, total int32) {
	return atomic.LoadInt32(&m.placedPhotos), atomic.LoadInt32(&m.totalPhotos)
}

// RunID returns the identifier recorded in logs and summaries.
func (m *Manager) RunID() string {
	return m.runID
}

// Specs returns the parsed album specs.
func (m *Manager) Specs() []model.AlbumSpec {
	return m.specs
}

// Albums returns the materialized albums in spec order.
func (m *Manager) Albums() []*model.Album {
	return m.albums
}

// planAlbums builds the albums to materialize, one per distinct spec name
// with a non-empty bucket.
func (m *Manager) planAlbums() []*model.Album {
	var albums []*model.Album
	seen := make(map[string]bool)
	var total int32

	for _, spec := range m.specs {
		if seen[spec.Name] {
			continue
		}
		seen[spec.Name] = true

		photos := m.result.Matched[spec.Name]
		if len(photos) == 0 {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Album '%s' matched no photos. Skipping folder creation.", spec.Name), Level: LevelWarning})
			continue
		}

		albums = append(albums, model.NewAlbum(spec, photos, m.settings.TargetAlbumsFolder))
		total += int32(len(photos))
	}

	atomic.StoreInt32(&m.totalPhotos, total)
	atomic.StoreInt32(&m.placedPhotos, 0)
	return albums
}

func (m *Manager) materializeAlbum(ctx context.Context, album *model.Album) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !m.opts.DryRun {
		if err := ioutils.EnsureDir(album.Path); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating directory %s: %v", album.Path, err), Level: LevelError})
			return fmt.Errorf("failed to create album folder: %w", err)
		}
	}

	reserved := make(map[string]bool)
	for _, photo := range album.Photos {
		if err := ctx.Err(); err != nil {
			return err
		}

		dst := ioutils.UniquePath(album.Path, photo.Filename, reserved)
		if name := filepath.Base(dst); name != photo.Filename {
			m.progress(ProgressEvent{Message: fmt.Sprintf("File %s already exists. Renamed to %s", photo.Filename, name), Level: LevelVerbose})
		}

		if err := m.place(ctx, photo, dst); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error placing %s: %v", photo.Path, err), Level: LevelError})
			continue
		}

		album.Placements = append(album.Placements, model.Placement{Photo: photo, Path: dst})
		atomic.AddInt32(&m.placedPhotos, 1)
	}

	if err := m.reports.WriteAlbum(ctx, album); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error writing album documents for %s: %v", album.Name, err), Level: LevelWarning})
	}

	prefix := ""
	if m.opts.DryRun {
		prefix = "[DRY RUN] "
	}
	m.progress(ProgressEvent{
		Message: fmt.Sprintf("%sCreated album: %s (%d photos)", prefix, album.FolderName, album.PlacedCount()),
		Level:   LevelSuccess,
	})

	return nil
}

// place copies or moves photo to dst. Dry runs only record the path.
func (m *Manager) place(ctx context.Context, photo *model.Photo, dst string) error {
	if m.opts.DryRun {
		return nil
	}
	if m.opts.Backup || m.settings.BackupMode {
		return ioutils.CopyFile(ctx, photo.Path, dst)
	}
	return ioutils.MoveFile(ctx, photo.Path, dst)
}

func (m *Manager) progress(event ProgressEvent) {
	switch event.Level {
	case LevelVerbose:
		m.log.Debug(event.Message)
	case LevelWarning:
		m.log.Warn(event.Message)
	case LevelError:
		m.log.Error(event.Message)
	default:
		m.log.Info(event.Message)
	}

	if m.onProgress != nil {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.onProgress(event)
	}
}

func describeFilter(f model.DateFilter) string {
	switch {
	case f.Year != 0 && f.Month != 0:
		return fmt.Sprintf("%04d-%02d", f.Year, f.Month)
	case f.Year != 0:
		return fmt.Sprintf("%04d", f.Year)
	case f.Month != 0:
		return fmt.Sprintf("month %02d", f.Month)
	default:
		return "custom range"
	}
}
