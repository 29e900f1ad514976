package organize

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/handiism/prompt-album-builder/internal/config"
	"github.com/handiism/prompt-album-builder/internal/model"
	"github.com/handiism/prompt-album-builder/internal/report"
)

type fixture struct {
	settings *config.Settings
	source   string
	target   string
}

func newFixture(t *testing.T, files map[string]time.Time) fixture {
	t.Helper()
	root := t.TempDir()
	source := filepath.Join(root, "incoming")
	target := filepath.Join(root, "albums")

	for rel, mtime := range files {
		path := filepath.Join(source, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(rel), 0644); err != nil {
			t.Fatal(err)
		}
		if err := os.Chtimes(path, mtime, mtime); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(source, 0755); err != nil {
		t.Fatal(err)
	}

	settings := config.DefaultSettings()
	settings.SourceFolder = source
	settings.TargetAlbumsFolder = target
	settings.Logging.LogDir = filepath.Join(root, "logs")
	settings.Gallery.Enabled = false

	return fixture{settings: settings, source: source, target: target}
}

func listFiles(t *testing.T, dir string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, _ := filepath.Rel(dir, path)
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		t.Fatal(err)
	}
	sort.Strings(files)
	return files
}

var march = time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)

func TestApplyFilters_DoesNotMutate(t *testing.T) {
	specs := []model.AlbumSpec{
		model.NewAlbumSpec("Vacation", []string{"vacation"}, model.DateFilter{}, ""),
		model.NewAlbumSpec("Work", []string{"work"}, model.DateFilter{Year: 2023, Month: 5}, ""),
	}

	got := ApplyFilters(specs, 2024, 0)

	if specs[0].HasDateFilter() || specs[1].DateFilter.Year != 2023 {
		t.Errorf("input specs mutated: %+v", specs)
	}
	if want := (model.DateFilter{Year: 2024}); got[0].DateFilter != want {
		t.Errorf("got[0].DateFilter = %+v, want %+v", got[0].DateFilter, want)
	}
	if want := (model.DateFilter{Year: 2024, Month: 5}); got[1].DateFilter != want {
		t.Errorf("got[1].DateFilter = %+v, want %+v", got[1].DateFilter, want)
	}

	got[0].Keywords[0] = "changed"
	if specs[0].Keywords[0] != "vacation" {
		t.Error("ApplyFilters shares keyword storage with its input")
	}

	unchanged := ApplyFilters(specs, 0, 0)
	if unchanged[0].HasDateFilter() || unchanged[1].DateFilter != specs[1].DateFilter {
		t.Errorf("ApplyFilters(0, 0) changed filters: %+v", unchanged)
	}
}

func TestManager_Run_Move(t *testing.T) {
	f := newFixture(t, map[string]time.Time{
		"Trips/vacation_beach.jpg": march,
		"Office/work_1.jpg":        march,
		"misc/vacation_2.jpg":      march,
		"misc/cat.jpg":             march,
	})

	var mu sync.Mutex
	var events []ProgressEvent
	m := NewManager(f.settings, Options{}, nil, func(e ProgressEvent) {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
	})

	stats, err := m.Run(context.Background(), "Create albums for vacation and work")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := report.RunStats{Scanned: 4, Albums: 2, Matched: 3, Unmatched: 1,
		UnmatchedLog: filepath.Join(f.settings.Logging.LogDir, report.UnmatchedFile)}
	if stats != want {
		t.Errorf("Run() stats = %+v, want %+v", stats, want)
	}

	got := listFiles(t, f.target)
	wantFiles := []string{
		"2024-03-Vacation/README.md",
		"2024-03-Vacation/summary.json",
		"2024-03-Vacation/vacation_2.jpg",
		"2024-03-Vacation/vacation_beach.jpg",
		"2024-03-Work/README.md",
		"2024-03-Work/summary.json",
		"2024-03-Work/work_1.jpg",
	}
	if !reflect.DeepEqual(got, wantFiles) {
		t.Errorf("target files = %q, want %q", got, wantFiles)
	}

	if remaining := listFiles(t, f.source); !reflect.DeepEqual(remaining, []string{"misc/cat.jpg"}) {
		t.Errorf("source after move = %q, want only misc/cat.jpg", remaining)
	}

	info, err := os.Stat(filepath.Join(f.target, "2024-03-Work", "work_1.jpg"))
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(march) {
		t.Errorf("moved file ModTime = %v, want %v", info.ModTime(), march)
	}

	if placed, total := m.GetProgress(); placed != 3 || total != 3 {
		t.Errorf("GetProgress() = %d/%d, want 3/3", placed, total)
	}

	mu.Lock()
	defer mu.Unlock()
	var successes int
	for _, e := range events {
		if e.Level == LevelSuccess {
			successes++
		}
	}
	if successes != 2 {
		t.Errorf("got %d success events, want 2", successes)
	}
}

func TestManager_Run_BackupResolvesConflicts(t *testing.T) {
	f := newFixture(t, map[string]time.Time{
		"a/party.jpg": march,
		"b/party.jpg": march,
	})
	f.settings.BackupMode = true
	f.settings.MaxConcurrentAlbums = 3

	m := NewManager(f.settings, Options{}, nil, nil)
	if _, err := m.Run(context.Background(), "Create albums for party"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := listFiles(t, filepath.Join(f.target, "2024-03-Party"))
	want := []string{"README.md", "party.jpg", "party_1.jpg", "summary.json"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("album files = %q, want %q", got, want)
	}

	if src := listFiles(t, f.source); len(src) != 2 {
		t.Errorf("backup mode removed sources: %q", src)
	}
}

func TestManager_Run_DryRunTouchesNothing(t *testing.T) {
	f := newFixture(t, map[string]time.Time{
		"x/vacation.jpg": march,
		"x/other.jpg":    march,
	})
	f.settings.Gallery.Enabled = true

	m := NewManager(f.settings, Options{DryRun: true}, nil, nil)
	stats, err := m.Run(context.Background(), "Create albums for vacation")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !stats.DryRun || stats.Albums != 1 || stats.Matched != 1 || stats.UnmatchedLog != "" {
		t.Errorf("stats = %+v", stats)
	}
	if _, err := os.Stat(f.target); !os.IsNotExist(err) {
		t.Errorf("dry run created target folder: %v", err)
	}
	if _, err := os.Stat(f.settings.Logging.LogDir); !os.IsNotExist(err) {
		t.Errorf("dry run created log folder: %v", err)
	}

	albums := m.Albums()
	if len(albums) != 1 || len(albums[0].Placements) != 1 {
		t.Fatalf("Albums() = %+v", albums)
	}
	wantPath := filepath.Join(f.target, "2024-03-Vacation", "vacation.jpg")
	if albums[0].Placements[0].Path != wantPath {
		t.Errorf("planned path = %q, want %q", albums[0].Placements[0].Path, wantPath)
	}
}

func TestManager_Run_EmptyAlbumSkipped(t *testing.T) {
	f := newFixture(t, map[string]time.Time{"x/vacation.jpg": march})

	var warnings []string
	m := NewManager(f.settings, Options{}, nil, func(e ProgressEvent) {
		if e.Level == LevelWarning {
			warnings = append(warnings, e.Message)
		}
	})

	stats, err := m.Run(context.Background(), "Create albums for vacation and work")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.Albums != 1 {
		t.Errorf("Albums = %d, want 1", stats.Albums)
	}
	if _, err := os.Stat(filepath.Join(f.target, "2024-03-Work")); !os.IsNotExist(err) {
		t.Error("folder created for empty album")
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "Work") {
		t.Errorf("warnings = %q", warnings)
	}
}

func TestManager_Run_FolderDateFromFilter(t *testing.T) {
	f := newFixture(t, map[string]time.Time{"x/hiking.jpg": march})

	m := NewManager(f.settings, Options{DryRun: true, Year: 2022}, nil, nil)
	if _, err := m.Run(context.Background(), "Create albums for hiking"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := m.Albums()[0].FolderName; got != "2022-01-Hiking" {
		t.Errorf("FolderName = %q, want 2022-01-Hiking", got)
	}
	if got := m.Specs()[0].DateFilter; got != (model.DateFilter{Year: 2022}) {
		t.Errorf("DateFilter = %+v", got)
	}
}

func TestManager_Run_Errors(t *testing.T) {
	t.Run("empty prompt", func(t *testing.T) {
		f := newFixture(t, nil)
		_, err := NewManager(f.settings, Options{}, nil, nil).Run(context.Background(), "  ")
		if !errors.Is(err, ErrNoAlbums) {
			t.Errorf("Run() error = %v, want ErrNoAlbums", err)
		}
	})

	t.Run("prompt with only dates", func(t *testing.T) {
		f := newFixture(t, nil)
		_, err := NewManager(f.settings, Options{}, nil, nil).Run(context.Background(), "March 2024")
		if !errors.Is(err, ErrNoAlbums) {
			t.Errorf("Run() error = %v, want ErrNoAlbums", err)
		}
	})

	t.Run("no photos", func(t *testing.T) {
		f := newFixture(t, map[string]time.Time{"notes.txt": march})
		_, err := NewManager(f.settings, Options{}, nil, nil).Run(context.Background(), "Create albums for vacation")
		if !errors.Is(err, ErrNoPhotos) {
			t.Errorf("Run() error = %v, want ErrNoPhotos", err)
		}
	})
}

func TestManager_RunIDUnique(t *testing.T) {
	f := newFixture(t, nil)
	a := NewManager(f.settings, Options{}, nil, nil)
	b := NewManager(f.settings, Options{}, nil, nil)
	if a.RunID() == "" || a.RunID() == b.RunID() {
		t.Errorf("run IDs %q and %q should be distinct and non-empty", a.RunID(), b.RunID())
	}
}

func TestManager_Materialize_CanceledContext(t *testing.T) {
	f := newFixture(t, map[string]time.Time{
		"x/vacation.jpg": march,
		"x/work.jpg":     march,
	})
	f.settings.MaxConcurrentAlbums = 2

	m := NewManager(f.settings, Options{}, nil, nil)
	if err := m.Initialize("Create albums for vacation and work"); err != nil {
		t.Fatal(err)
	}
	if err := m.Scan(context.Background()); err != nil {
		t.Fatal(err)
	}
	m.Match()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := m.Materialize(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Materialize() error = %v, want context.Canceled", err)
	}
	if _, err := os.Stat(f.target); !os.IsNotExist(err) {
		t.Errorf("canceled run created %s: %v", f.target, err)
	}
	if src := listFiles(t, f.source); len(src) != 2 {
		t.Errorf("canceled run moved photos, source now holds %q", src)
	}
}
