package model

import (
	"regexp"
	"strings"
	"time"
)

// DateFilter is a set of optional temporal constraints.
//
// Unset fields are zero: Year 0, Month 0 and zero Start/End times
// impose no constraint. A filter with every field unset is never
// attached to an AlbumSpec.
type DateFilter struct {
	// Year must equal the photo's year when non-zero.
	Year int

	// Month (1-12) must equal the photo's month when non-zero.
	Month int

	// Start is an inclusive lower bound when non-zero.
	Start time.Time

	// End is an inclusive upper bound when non-zero.
	End time.Time
}

// IsZero reports whether the filter imposes no constraint.
func (f DateFilter) IsZero() bool {
	return f.Year == 0 && f.Month == 0 && f.Start.IsZero() && f.End.IsZero()
}

// Narrow returns a copy of the filter with year and month overridden
// by any non-zero argument.
func (f DateFilter) Narrow(year, month int) DateFilter {
	if year != 0 {
		f.Year = year
	}
	if month != 0 {
		f.Month = month
	}
	return f
}

// Contains reports whether t satisfies every set field of the filter.
// A zero time never satisfies a filter.
func (f DateFilter) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	if f.Year != 0 && t.Year() != f.Year {
		return false
	}
	if f.Month != 0 && int(t.Month()) != f.Month {
		return false
	}
	if !f.Start.IsZero() && t.Before(f.Start) {
		return false
	}
	if !f.End.IsZero() && t.After(f.End) {
		return false
	}
	return true
}

// Keyword is a compiled album keyword.
//
// A literal keyword matches any candidate that contains it, ignoring case.
// A wildcard keyword ("ncc*", "img_*_party") matches candidates that start
// with the pattern, where "*" stands for zero or more characters.
type Keyword struct {
	text    string
	lower   string
	pattern *regexp.Regexp
}

// CompileKeyword decides once whether text is a literal or a wildcard.
//
// Wildcards are permissive: "*" alone matches every candidate. Characters
// other than "*" are matched literally.
func CompileKeyword(text string) Keyword {
	kw := Keyword{text: text, lower: strings.ToLower(text)}
	if !strings.Contains(text, "*") {
		return kw
	}

	parts := strings.Split(kw.lower, "*")
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}
	kw.pattern = regexp.MustCompile(`(?is)^` + strings.Join(parts, ".*"))
	return kw
}

// CompileKeywords compiles every keyword, preserving order.
func CompileKeywords(texts []string) []Keyword {
	keywords := make([]Keyword, len(texts))
	for i, text := range texts {
		keywords[i] = CompileKeyword(text)
	}
	return keywords
}

// Text returns the keyword as written.
func (k Keyword) Text() string {
	return k.text
}

// IsWildcard reports whether the keyword was compiled to a pattern.
func (k Keyword) IsWildcard() bool {
	return k.pattern != nil
}

// Matches reports whether candidate satisfies the keyword, ignoring case.
func (k Keyword) Matches(candidate string) bool {
	if k.pattern != nil {
		return k.pattern.MatchString(candidate)
	}
	return strings.Contains(strings.ToLower(candidate), k.lower)
}

// AlbumSpec describes which photos belong to one album.
//
// Specs are built by the prompt parser and are treated as immutable
// afterwards: WithDateFilter returns a modified copy.
type AlbumSpec struct {
	// Name is the title-cased album name.
	Name string

	// Keywords lists the lower-cased album name first, followed by its
	// content words, without duplicates.
	Keywords []string

	// DateFilter is the optional date constraint. The zero value means none.
	DateFilter DateFilter

	// OriginalPrompt is the verbatim prompt the spec was parsed from.
	OriginalPrompt string

	matchers []Keyword
}

// NewAlbumSpec creates an AlbumSpec and compiles its keywords.
func NewAlbumSpec(name string, keywords []string, filter DateFilter, prompt string) AlbumSpec {
	kws := make([]string, len(keywords))
	copy(kws, keywords)

	return AlbumSpec{
		Name:           name,
		Keywords:       kws,
		DateFilter:     filter,
		OriginalPrompt: prompt,
		matchers:       CompileKeywords(kws),
	}
}

// HasDateFilter reports whether a date filter is attached.
func (s AlbumSpec) HasDateFilter() bool {
	return !s.DateFilter.IsZero()
}

// Matchers returns the compiled keywords. Specs built without NewAlbumSpec
// are compiled on each call.
func (s AlbumSpec) Matchers() []Keyword {
	if s.matchers != nil || len(s.Keywords) == 0 {
		return s.matchers
	}
	return CompileKeywords(s.Keywords)
}

// WithDateFilter returns a copy of the spec carrying filter.
func (s AlbumSpec) WithDateFilter(filter DateFilter) AlbumSpec {
	kws := make([]string, len(s.Keywords))
	copy(kws, s.Keywords)

	s.Keywords = kws
	s.DateFilter = filter
	return s
}
