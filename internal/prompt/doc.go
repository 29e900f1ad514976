// Package prompt turns a free-text album instruction into album specifications.
//
// The parser is rule-based and deterministic: the same prompt always yields
// the same specs in the same order.
//
// # Parsing
//
//	parser := prompt.NewParser()
//	specs := parser.Parse("Create albums for NCC events, college fests in March 2024")
//	for _, spec := range specs {
//	    fmt.Println(spec.Name, spec.Keywords, spec.DateFilter)
//	}
//	// Ncc Events [ncc events ncc events] {2024 3 ...}
//	// College Fests In [college fests in college fests] {2024 3 ...}
//
// An empty result means no album name could be isolated; callers must treat
// it as a user input error.
//
// # Album Names
//
// Lead-in phrases ("create albums for", "organize photos into", "sort by")
// and date expressions are removed, "and"/"or" become separators, and the
// remaining comma-separated segments are title-cased.
//
// # Dates
//
// Dates are recognized in priority order:
//
//  1. "<month> <year>" pairs, full or abbreviated month names ("March 2024", "sept 2023")
//  2. "YYYY-MM" tokens with a month of 01-12
//  3. bare years in [2000, 2100], consulted only when 1 and 2 found nothing
//
// Only the first date found is attached, and it is attached to every spec.
package prompt
