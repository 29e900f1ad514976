package matcher

import (
	"github.com/handiism/prompt-album-builder/internal/model"
)

// Matcher partitions photos across album specifications.
//
// Matcher keeps no state between calls; concurrent Match calls over
// different inputs are safe.
type Matcher struct{}

// New creates a new Matcher.
func New() *Matcher {
	return &Matcher{}
}

// Match assigns each photo to the first spec it matches, in a single pass.
//
// Every spec name gets a bucket in the result, even when empty. Buckets
// and the unmatched list preserve the input photo order. Specs sharing a
// name share a bucket.
func (m *Matcher) Match(photos []*model.Photo, specs []model.AlbumSpec) *model.MatchResult {
	compiled := make([][]model.Keyword, len(specs))
	result := &model.MatchResult{
		Matched: make(map[string][]*model.Photo, len(specs)),
	}

	for i, spec := range specs {
		compiled[i] = spec.Matchers()
		if _, ok := result.Matched[spec.Name]; !ok {
			result.Matched[spec.Name] = []*model.Photo{}
		}
	}

	for _, photo := range photos {
		matched := false
		for i, spec := range specs {
			if m.MatchesKeywords(photo, compiled[i]) {
				result.Matched[spec.Name] = append(result.Matched[spec.Name], photo)
				matched = true
				break
			}
		}
		if !matched {
			result.Unmatched = append(result.Unmatched, photo)
		}
	}

	return result
}

// MatchesSpec reports whether photo belongs to spec.
//
// Only keywords decide. The date filter, when present, neither admits a
// photo whose keywords miss nor rejects one whose keywords hit.
func (m *Matcher) MatchesSpec(photo *model.Photo, spec model.AlbumSpec) bool {
	return m.MatchesKeywords(photo, spec.Matchers())
}

// MatchesKeywords reports whether any keyword matches the filename or folder name.
func (m *Matcher) MatchesKeywords(photo *model.Photo, keywords []model.Keyword) bool {
	return m.MatchesFilename(photo, keywords) || m.MatchesFolder(photo, keywords)
}

// MatchesFilename reports whether any keyword matches the photo's filename.
func (m *Matcher) MatchesFilename(photo *model.Photo, keywords []model.Keyword) bool {
	return anyMatch(photo.Filename, keywords)
}

// MatchesFolder reports whether any keyword matches the photo's folder name.
func (m *Matcher) MatchesFolder(photo *model.Photo, keywords []model.Keyword) bool {
	return anyMatch(photo.FolderName, keywords)
}

// MatchesDate reports whether the photo's preferred date satisfies every
// set field of filter. A photo with no date never matches.
func (m *Matcher) MatchesDate(photo *model.Photo, filter model.DateFilter) bool {
	return filter.Contains(photo.PreferredDate())
}

func anyMatch(candidate string, keywords []model.Keyword) bool {
	for _, kw := range keywords {
		if kw.Matches(candidate) {
			return true
		}
	}
	return false
}
