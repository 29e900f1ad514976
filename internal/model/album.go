package model

import (
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	ioutils "github.com/handiism/prompt-album-builder/internal/io"
)

// Album represents a materialized album with its photos and computed folder path.
//
// Album contains all the information needed to place photos and document the album:
//   - Name and Keywords from the originating AlbumSpec
//   - Date used for the folder name
//   - EarliestDate and LatestDate across its photos
//   - Computed Path under the target albums folder
//
// Paths are automatically computed when creating an album via NewAlbum.
//
// Example:
//
//	spec := NewAlbumSpec("Ncc Events", []string{"ncc events", "ncc", "events"}, DateFilter{Year: 2024, Month: 3}, prompt)
//	album := NewAlbum(spec, photos, "/photos/albums")
//	// album.FolderName = "2024-03-Ncc-Events"
//	// album.Path = "/photos/albums/2024-03-Ncc-Events"
type Album struct {
	// Name is the album name.
	Name string

	// Keywords are the keywords the album was matched with.
	Keywords []string

	// OriginalPrompt is the prompt the album was parsed from.
	OriginalPrompt string

	// Date is the date used for the folder name.
	Date time.Time

	// EarliestDate and LatestDate bound the preferred dates of Photos.
	EarliestDate time.Time
	LatestDate   time.Time

	// Photos lists the matched photos in encounter order.
	Photos []*Photo

	// Placements records where each photo was (or would be) placed.
	Placements []Placement

	// FolderName is the computed folder name, "YYYY-MM-Album-Name".
	FolderName string

	// Path is the computed local directory path of the album.
	Path string
}

// Placement pairs a source photo with its destination path inside an album.
type Placement struct {
	Photo *Photo
	Path  string
}

// NewAlbum creates a new Album with computed dates and paths.
//
// The folder date is taken from the spec's date filter when it names a
// year (January when no month is set); otherwise the earliest photo date
// is used. Invalid filename characters are replaced with underscores.
func NewAlbum(spec AlbumSpec, photos []*Photo, targetFolder string) *Album {
	album := &Album{
		Name:           spec.Name,
		Keywords:       spec.Keywords,
		OriginalPrompt: spec.OriginalPrompt,
		Photos:         photos,
	}

	album.EarliestDate, album.LatestDate = dateRange(photos)
	album.Date = album.folderDate(spec.DateFilter)
	album.FolderName = album.parseFolderName()
	album.Path = filepath.Join(targetFolder, album.FolderName)

	return album
}

// PlacedCount returns the number of photos placed into the album.
func (a *Album) PlacedCount() int {
	return len(a.Placements)
}

// folderDate picks the date used for folder naming.
func (a *Album) folderDate(filter DateFilter) time.Time {
	if filter.Year != 0 {
		month := time.January
		if filter.Month != 0 {
			month = time.Month(filter.Month)
		}
		return time.Date(filter.Year, month, 1, 0, 0, 0, 0, time.Local)
	}
	return a.EarliestDate
}

// parseFolderName computes "YYYY-MM-Album-Name".
func (a *Album) parseFolderName() string {
	name := a.Date.Format("2006-01") + "-" + strings.ReplaceAll(a.Name, " ", "-")
	name = ioutils.SanitizeFileName(name)

	// Limit length for cross-platform compatibility (Windows MAX_PATH)
	return truncateName(name, maxFolderNameBytes)
}

const maxFolderNameBytes = 199

// truncateName cuts name to at most limit bytes without splitting a rune.
func truncateName(name string, limit int) string {
	if len(name) <= limit {
		return name
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(name[cut]) {
		cut--
	}
	return name[:cut]
}

// dateRange returns the earliest and latest preferred dates of photos.
func dateRange(photos []*Photo) (earliest, latest time.Time) {
	for _, p := range photos {
		d := p.PreferredDate()
		if d.IsZero() {
			continue
		}
		if earliest.IsZero() || d.Before(earliest) {
			earliest = d
		}
		if latest.IsZero() || d.After(latest) {
			latest = d
		}
	}
	return earliest, latest
}
