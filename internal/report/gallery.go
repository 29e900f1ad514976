package report

import (
	"bytes"
	"fmt"
	"html/template"
	"path"
	"strings"

	"github.com/handiism/prompt-album-builder/internal/model"
)

// ThumbnailDir is the folder under the albums root that holds gallery thumbnails.
const ThumbnailDir = ".thumbnails"

// GalleryCard is one album entry in the gallery index.
type GalleryCard struct {
	Name       string
	PhotoCount int
	DateRange  string
	Keywords   string
	// Cover is the thumbnail path relative to index.html, empty when no
	// thumbnail could be rendered.
	Cover      string
	ReadmeLink string
}

// NewGalleryCard builds the card for an album. cover is the thumbnail path
// relative to the albums root; "" renders the card without an image.
func NewGalleryCard(album *model.Album, cover string) GalleryCard {
	return GalleryCard{
		Name:       album.Name,
		PhotoCount: len(album.Photos),
		DateRange:  formatDate(album.EarliestDate) + " to " + formatDate(album.LatestDate),
		Keywords:   strings.Join(album.Keywords, ", "),
		Cover:      cover,
		ReadmeLink: path.Join(album.FolderName, "README.md"),
	}
}

var galleryTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Photo Albums</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            min-height: 100vh;
            padding: 40px 20px;
        }
        .container { max-width: 1200px; margin: 0 auto; }
        header { text-align: center; color: white; margin-bottom: 50px; }
        h1 { font-size: 3em; margin-bottom: 10px; }
        .gallery { display: grid; grid-template-columns: repeat(auto-fill, minmax(300px, 1fr)); gap: 30px; }
        .album-card { background: white; border-radius: 15px; overflow: hidden; box-shadow: 0 10px 30px rgba(0,0,0,0.2); }
        .album-thumbnail { height: 200px; background: #f0f0f0; display: flex; align-items: center; justify-content: center; }
        .album-thumbnail img { max-width: 100%; max-height: 100%; object-fit: cover; }
        .no-image { color: #999; }
        .album-info { padding: 20px; }
        .photo-count { color: #667eea; font-weight: bold; }
        .date-range, .keywords { color: #666; font-size: 0.9em; margin-top: 5px; }
        .view-link { display: inline-block; margin-top: 15px; color: #764ba2; text-decoration: none; font-weight: bold; }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>Photo Albums</h1>
            <p class="subtitle">{{len .}} albums</p>
        </header>
        <div class="gallery">
{{- range .}}
            <div class="album-card">
                <div class="album-thumbnail">
                    {{if .Cover}}<img src="{{.Cover}}" alt="{{.Name}}">{{else if .PhotoCount}}<div class="no-image">No Preview</div>{{else}}<div class="no-image">No Photos</div>{{end}}
                </div>
                <div class="album-info">
                    <h3>{{.Name}}</h3>
                    <p class="photo-count">{{.PhotoCount}} photos</p>
                    <p class="date-range">{{.DateRange}}</p>
                    <p class="keywords">{{.Keywords}}</p>
                    <a href="{{.ReadmeLink}}" class="view-link">View Album &rarr;</a>
                </div>
            </div>
{{- end}}
        </div>
    </div>
</body>
</html>
`))

// RenderGallery generates the gallery index.html for the given cards.
func RenderGallery(cards []GalleryCard) ([]byte, error) {
	var buf bytes.Buffer
	if err := galleryTemplate.Execute(&buf, cards); err != nil {
		return nil, fmt.Errorf("failed to render gallery: %w", err)
	}
	return buf.Bytes(), nil
}
