// Package model defines the core data structures used throughout
// the prompt-album-builder application.
//
// # Album Specifications
//
// AlbumSpec is a named rule describing which photos belong together. It is
// produced by the prompt parser and consumed by the matcher:
//
//	spec := model.NewAlbumSpec("Ncc Events", []string{"ncc events", "ncc", "events"}, filter, prompt)
//	for _, kw := range spec.Matchers() {
//	    fmt.Println(kw.Text(), kw.IsWildcard())
//	}
//
// Keywords are compiled once, when the spec is built. A keyword containing
// "*" becomes a wildcard anchored at the start of the candidate string; any
// other keyword is a case-insensitive substring.
//
// # Date Filters
//
// DateFilter holds optional year, month and inclusive start/end bounds.
// The zero value means "no constraint". Filters are values: narrowing one
// returns a new filter and never changes the spec it came from:
//
//	narrowed := spec.WithDateFilter(spec.DateFilter.Narrow(2024, 3))
//
// # Photos
//
// Photo is a read-only record produced by the scanner. PreferredDate returns
// the capture date when present and the file creation time otherwise.
//
// # Match Results
//
// MatchResult partitions photos into per-album buckets plus an unmatched
// remainder. Every photo appears in exactly one bucket.
//
// # Albums
//
// Album is a materialized album with its computed folder path:
//
//	album := model.NewAlbum(spec, photos, "/photos/albums")
//	fmt.Println(album.Path) // "/photos/albums/2024-03-Ncc-Events"
package model
