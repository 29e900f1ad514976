// Package report renders and writes the documents produced by a run.
//
// # Album Documents
//
// Every created album gets a README.md and a summary.json:
//
//	w := report.NewWriter(report.WriterOptions{RunID: runID, DryRun: false}, log)
//	err := w.WriteAlbum(ctx, album)
//
// # Run Documents
//
//	path, err := w.WriteUnmatched(ctx, "logs", result.Unmatched)
//	err = w.WriteGallery(ctx, "/photos/albums", albums, 200)
//	fmt.Print(report.RenderRunSummary(stats))
//
// Writers never touch the filesystem in dry-run mode; the Render
// functions are pure and can be used to preview any document.
package report
