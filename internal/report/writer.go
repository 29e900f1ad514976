package report

import (
	"context"
	"path/filepath"
	"time"

	ioutils "github.com/handiism/prompt-album-builder/internal/io"
	"github.com/handiism/prompt-album-builder/internal/logger"
	"github.com/handiism/prompt-album-builder/internal/model"
)

// File names written by a Writer.
const (
	ReadmeFile    = "README.md"
	SummaryFile   = "summary.json"
	UnmatchedFile = "unmatched.log"
	GalleryFile   = "index.html"
)

// WriterOptions configures a Writer.
type WriterOptions struct {
	// RunID is recorded in every summary.json.
	RunID string

	// DryRun turns every write into a no-op.
	DryRun bool

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Writer writes run documents to disk.
type Writer struct {
	opts   WriterOptions
	images *ioutils.ImageService
	log    *logger.Logger
}

// NewWriter creates a Writer. A nil log discards output.
func NewWriter(opts WriterOptions, log *logger.Logger) *Writer {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Writer{opts: opts, images: ioutils.NewImageService(), log: log}
}

// WriteAlbum writes README.md and summary.json into the album folder.
func (w *Writer) WriteAlbum(ctx context.Context, album *model.Album) error {
	if w.opts.DryRun {
		return nil
	}

	readme := RenderReadme(album)
	if err := ioutils.WriteFile(ctx, filepath.Join(album.Path, ReadmeFile), []byte(readme)); err != nil {
		return err
	}

	summary, err := RenderSummary(album, w.opts.RunID, w.opts.Now())
	if err != nil {
		return err
	}
	return ioutils.WriteFile(ctx, filepath.Join(album.Path, SummaryFile), summary)
}

// WriteUnmatched writes unmatched.log into logDir and returns its path.
// Nothing is written when photos is empty or in dry-run mode; the
// returned path is then empty.
func (w *Writer) WriteUnmatched(ctx context.Context, logDir string, photos []*model.Photo) (string, error) {
	if w.opts.DryRun || len(photos) == 0 {
		return "", nil
	}

	path := filepath.Join(logDir, UnmatchedFile)
	if err := ioutils.WriteFile(ctx, path, []byte(RenderUnmatched(photos, w.opts.Now()))); err != nil {
		return "", err
	}

	w.log.Info("Unmatched log created", "path", path, "count", len(photos))
	return path, nil
}

// WriteGallery writes index.html into targetFolder with one card per
// album. Cover thumbnails are rendered into ThumbnailDir; when a cover
// cannot be decoded (HEIC, RAW) the card is shown without an image.
func (w *Writer) WriteGallery(ctx context.Context, targetFolder string, albums []*model.Album, thumbnailSize int) error {
	if w.opts.DryRun {
		return nil
	}

	cards := make([]GalleryCard, 0, len(albums))
	for _, album := range albums {
		cards = append(cards, NewGalleryCard(album, w.thumbnail(ctx, targetFolder, album, thumbnailSize)))
	}

	html, err := RenderGallery(cards)
	if err != nil {
		return err
	}

	path := filepath.Join(targetFolder, GalleryFile)
	if err := ioutils.WriteFile(ctx, path, html); err != nil {
		return err
	}

	w.log.Info("Gallery index created", "path", path, "albums", len(albums))
	return nil
}

// thumbnail renders the album cover and returns its path relative to
// targetFolder, or "" when no thumbnail was written.
func (w *Writer) thumbnail(ctx context.Context, targetFolder string, album *model.Album, size int) string {
	if len(album.Placements) == 0 {
		return ""
	}

	name := album.FolderName + ".jpg"
	dst := filepath.Join(targetFolder, ThumbnailDir, name)
	if err := w.images.WriteThumbnail(ctx, album.Placements[0].Path, dst, size); err != nil {
		w.log.Warn("Could not create thumbnail", "album", album.Name, "error", err)
		return ""
	}

	return ThumbnailDir + "/" + name
}
