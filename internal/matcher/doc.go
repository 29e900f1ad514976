// Package matcher assigns photos to album specifications.
//
// # Matching
//
//	m := matcher.New()
//	result := m.Match(photos, specs)
//	for _, spec := range specs {
//	    fmt.Printf("%s: %d photos\n", spec.Name, len(result.Matched[spec.Name]))
//	}
//	fmt.Printf("unmatched: %d\n", len(result.Unmatched))
//
// # Rules
//
// Specs are evaluated in the order given and the first spec that matches
// claims the photo. A spec matches when any of its keywords matches the
// photo's filename or its folder name.
//
// A date filter on a spec never decides a match: a photo whose keywords
// match is assigned even when its date falls outside the filter, and a
// photo whose date fits but whose keywords do not is left unmatched.
// MatchesDate is exported so callers can report such photos.
//
// Photos without any usable date fail every date comparison.
package matcher
