package organize

import "github.com/handiism/prompt-album-builder/internal/model"

// ApplyFilters returns copies of specs whose date filters are narrowed
// to year and month. Zero arguments leave the corresponding field alone;
// when both are zero the copies carry their original filters. specs is
// not modified.
func ApplyFilters(specs []model.AlbumSpec, year, month int) []model.AlbumSpec {
	out := make([]model.AlbumSpec, 0, len(specs))
	for _, spec := range specs {
		out = append(out, spec.WithDateFilter(spec.DateFilter.Narrow(year, month)))
	}
	return out
}
