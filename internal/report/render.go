package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/handiism/prompt-album-builder/internal/model"
)

const (
	dateLayout    = "2006-01-02"
	createdLayout = "2006-01-02T15:04:05Z"
	unknownDate   = "unknown"
)

// Summary is the summary.json document of an album.
type Summary struct {
	AlbumName      string         `json:"album_name"`
	TotalPhotos    int            `json:"total_photos"`
	EarliestDate   string         `json:"earliest_date"`
	LatestDate     string         `json:"latest_date"`
	KeywordsUsed   []string       `json:"keywords_used"`
	OriginalPrompt string         `json:"original_prompt"`
	CreatedAt      string         `json:"created_at"`
	RunID          string         `json:"run_id,omitempty"`
	Photos         []SummaryPhoto `json:"photos"`
}

// SummaryPhoto is one photo entry in a Summary.
type SummaryPhoto struct {
	Filename  string `json:"filename"`
	DateTaken string `json:"date_taken"`
	SizeBytes int64  `json:"size_bytes"`
}

// RunStats are the counts shown at the end of a run.
type RunStats struct {
	Scanned      int
	Albums       int
	Matched      int
	Unmatched    int
	UnmatchedLog string
	DryRun       bool
}

// RenderReadme generates the README.md content for an album.
//
// Example output:
//
//	# Ncc Events
//
//	## Album Information
//
//	- **Total Photos**: 12
//	- **Date Range**: 2024-03-02 to 2024-03-28
//	- **Keywords**: ncc events, ncc, events
func RenderReadme(album *model.Album) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", album.Name))
	sb.WriteString("## Album Information\n\n")
	sb.WriteString(fmt.Sprintf("- **Total Photos**: %d\n", len(album.Photos)))
	sb.WriteString(fmt.Sprintf("- **Date Range**: %s to %s\n", formatDate(album.EarliestDate), formatDate(album.LatestDate)))
	sb.WriteString(fmt.Sprintf("- **Keywords**: %s\n\n", strings.Join(album.Keywords, ", ")))

	sb.WriteString("## Original Prompt\n\n")
	sb.WriteString("```\n")
	sb.WriteString(album.OriginalPrompt + "\n")
	sb.WriteString("```\n\n")

	sb.WriteString("## Photos\n\n")
	sb.WriteString(fmt.Sprintf("This album contains %d photos organized based on the criteria above.\n\n", len(album.Photos)))
	sb.WriteString("---\n\n")
	sb.WriteString("*Generated by prompt-album-builder*\n")

	return sb.String()
}

// NewSummary builds the summary document for an album.
func NewSummary(album *model.Album, runID string, createdAt time.Time) Summary {
	photos := make([]SummaryPhoto, 0, len(album.Photos))
	for _, p := range album.Photos {
		photos = append(photos, SummaryPhoto{
			Filename:  p.Filename,
			DateTaken: formatDate(p.PreferredDate()),
			SizeBytes: p.SizeBytes,
		})
	}

	keywords := album.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	return Summary{
		AlbumName:      album.Name,
		TotalPhotos:    len(album.Photos),
		EarliestDate:   formatDate(album.EarliestDate),
		LatestDate:     formatDate(album.LatestDate),
		KeywordsUsed:   keywords,
		OriginalPrompt: album.OriginalPrompt,
		CreatedAt:      createdAt.UTC().Format(createdLayout),
		RunID:          runID,
		Photos:         photos,
	}
}

// RenderSummary encodes an album summary as indented JSON.
func RenderSummary(album *model.Album, runID string, createdAt time.Time) ([]byte, error) {
	data, err := json.MarshalIndent(NewSummary(album, runID, createdAt), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode summary: %w", err)
	}
	return append(data, '\n'), nil
}

// RenderUnmatched generates the unmatched.log content: a commented header
// followed by one photo path per line.
func RenderUnmatched(photos []*model.Photo, generatedAt time.Time) string {
	var sb strings.Builder

	sb.WriteString("# Unmatched Photos Log\n")
	sb.WriteString(fmt.Sprintf("# Generated: %s\n", generatedAt.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("# Total unmatched: %d\n\n", len(photos)))

	for _, p := range photos {
		sb.WriteString(p.Path + "\n")
	}

	return sb.String()
}

// RenderRunSummary generates the end-of-run summary for the terminal.
func RenderRunSummary(stats RunStats) string {
	var sb strings.Builder

	prefix := ""
	if stats.DryRun {
		prefix = "[DRY RUN] "
	}

	sb.WriteString(fmt.Sprintf("\n%sSummary:\n", prefix))
	sb.WriteString(fmt.Sprintf("  Total photos scanned: %d\n", stats.Scanned))
	sb.WriteString(fmt.Sprintf("  Albums created: %d\n", stats.Albums))
	sb.WriteString(fmt.Sprintf("  Photos matched: %d\n", stats.Matched))
	sb.WriteString(fmt.Sprintf("  Photos unmatched: %d\n", stats.Unmatched))

	if stats.Unmatched > 0 && stats.UnmatchedLog != "" {
		sb.WriteString(fmt.Sprintf("  Unmatched log: %s\n", stats.UnmatchedLog))
	}

	return sb.String()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return unknownDate
	}
	return t.Format(dateLayout)
}
