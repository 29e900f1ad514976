package prompt

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/handiism/prompt-album-builder/internal/model"
)

// monthNames maps full and abbreviated month names to month numbers.
// Order matters: full names come before their abbreviations in the
// generated alternation.
var monthNames = []struct {
	name  string
	month int
}{
	{"january", 1}, {"jan", 1},
	{"february", 2}, {"feb", 2},
	{"march", 3}, {"mar", 3},
	{"april", 4}, {"apr", 4},
	{"may", 5},
	{"june", 6}, {"jun", 6},
	{"july", 7}, {"jul", 7},
	{"august", 8}, {"aug", 8},
	{"september", 9}, {"sept", 9}, {"sep", 9},
	{"october", 10}, {"oct", 10},
	{"november", 11}, {"nov", 11},
	{"december", 12}, {"dec", 12},
}

// stopWords are dropped from album names when building keywords.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "or": true, "the": true,
	"in": true, "on": true, "at": true, "to": true, "for": true,
	"of": true, "with": true, "by": true, "from": true,
	"create": true, "albums": true, "album": true, "photos": true,
	"organize": true, "sort": true, "group": true,
}

const (
	minBareYear = 2000
	maxBareYear = 2100
)

var (
	leadInPatterns = []*regexp.Regexp{
		regexp.MustCompile(`create albums? for`),
		regexp.MustCompile(`organize (photos? )?into`),
		regexp.MustCompile(`sort (photos? )?by`),
	}

	yearMonthToken = regexp.MustCompile(`\d{4}-\d{2}`)
	fourDigits     = regexp.MustCompile(`\b\d{4}\b`)
	fullMonths     = regexp.MustCompile(`\b(january|february|march|april|may|june|july|august|september|october|november|december)\b`)
	shortMonths    = regexp.MustCompile(`\b(jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)\b`)
	andSeparator   = regexp.MustCompile(`\s+and\s+`)
	orSeparator    = regexp.MustCompile(`\s+or\s+`)

	monthYearPattern = regexp.MustCompile(`\b(` + monthAlternation() + `)\s+(\d{4})\b`)
	yearMonthPattern = regexp.MustCompile(`\b(\d{4})-(\d{2})\b`)
	bareYearPattern  = regexp.MustCompile(`\b(\d{4})\b`)
)

func monthAlternation() string {
	names := make([]string, len(monthNames))
	for i, m := range monthNames {
		names[i] = m.name
	}
	return strings.Join(names, "|")
}

func monthNumber(name string) int {
	for _, m := range monthNames {
		if m.name == name {
			return m.month
		}
	}
	return 0
}

// Parser extracts album specifications from free-text prompts.
//
// Parser holds no state between calls and is safe for concurrent use.
//
// Example usage:
//
//	parser := NewParser()
//	specs := parser.Parse("Create albums for vacation and work")
//	if len(specs) == 0 {
//	    return errors.New("no albums found in prompt")
//	}
//	// specs[0].Name == "Vacation", specs[1].Name == "Work"
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse converts a prompt into an ordered list of album specifications.
//
// This method performs the following steps:
//  1. Extracts album names (ExtractAlbumNames)
//  2. Extracts date filters (ExtractDates)
//  3. Builds keywords for each name (ExtractKeywords)
//  4. Attaches the first date filter, if any, to every spec
//
// Parse never fails; a prompt without nameable text yields an empty slice.
func (p *Parser) Parse(prompt string) []model.AlbumSpec {
	names := p.ExtractAlbumNames(prompt)
	if len(names) == 0 {
		return nil
	}

	var filter model.DateFilter
	if dates := p.ExtractDates(prompt); len(dates) > 0 {
		filter = dates[0]
	}

	specs := make([]model.AlbumSpec, 0, len(names))
	for _, name := range names {
		specs = append(specs, model.NewAlbumSpec(name, p.ExtractKeywords(name), filter, prompt))
	}

	return specs
}

// ExtractAlbumNames returns the title-cased album names in order of appearance.
//
// Example:
//
//	parser.ExtractAlbumNames("Create albums for vacation, work, and family")
//	// Returns ["Vacation", "Work", "Family"]
func (p *Parser) ExtractAlbumNames(prompt string) []string {
	text := strings.ToLower(prompt)

	for _, re := range leadInPatterns {
		text = re.ReplaceAllString(text, "")
	}

	// Date expressions must not end up as album-name words. YYYY-MM goes
	// first so its month digits are not left behind.
	text = yearMonthToken.ReplaceAllString(text, "")
	text = fourDigits.ReplaceAllString(text, "")
	text = fullMonths.ReplaceAllString(text, "")
	text = shortMonths.ReplaceAllString(text, "")

	text = andSeparator.ReplaceAllString(text, ",")
	text = orSeparator.ReplaceAllString(text, ",")

	var names []string
	for _, part := range strings.Split(text, ",") {
		if name := titleCase(part); name != "" {
			names = append(names, name)
		}
	}

	return names
}

// ExtractDates returns every date filter of the winning category, left to right.
//
// Month-name pairs and YYYY-MM tokens are both collected; bare years are
// only consulted when neither produced a filter.
//
// Example:
//
//	parser.ExtractDates("Photos from March 2024 and also 2023")
//	// Returns [{Year: 2024, Month: 3}]
func (p *Parser) ExtractDates(prompt string) []model.DateFilter {
	text := strings.ToLower(prompt)
	var filters []model.DateFilter

	for _, m := range monthYearPattern.FindAllStringSubmatch(text, -1) {
		year, _ := strconv.Atoi(m[2])
		filters = append(filters, model.DateFilter{Year: year, Month: monthNumber(m[1])})
	}

	for _, m := range yearMonthPattern.FindAllStringSubmatch(text, -1) {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if month >= 1 && month <= 12 {
			filters = append(filters, model.DateFilter{Year: year, Month: month})
		}
	}

	if len(filters) > 0 {
		return filters
	}

	for _, m := range bareYearPattern.FindAllStringSubmatch(text, -1) {
		year, _ := strconv.Atoi(m[1])
		if year >= minBareYear && year <= maxBareYear {
			filters = append(filters, model.DateFilter{Year: year})
		}
	}

	return filters
}

// ExtractKeywords returns the keywords for an album name.
//
// The full lower-cased name comes first, followed by each word that is not
// a stop word. Duplicates are dropped, keeping the first occurrence.
//
// Example:
//
//	parser.ExtractKeywords("NCC Events")
//	// Returns ["ncc events", "ncc", "events"]
func (p *Parser) ExtractKeywords(albumName string) []string {
	full := strings.ToLower(albumName)
	seen := make(map[string]bool)
	var keywords []string

	add := func(kw string) {
		if kw == "" || seen[kw] {
			return
		}
		seen[kw] = true
		keywords = append(keywords, kw)
	}

	add(strings.Join(strings.Fields(full), " "))
	for _, word := range strings.Fields(full) {
		if !stopWords[word] {
			add(word)
		}
	}

	return keywords
}

// titleCase trims s and capitalizes the first letter of every word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
