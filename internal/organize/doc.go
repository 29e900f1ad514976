// Package organize runs the prompt-to-album pipeline.
//
// # Manager
//
// The Manager coordinates a run:
//
//  1. Parse the prompt into album specs (and apply extra year/month filters)
//  2. Scan the source folder for photos
//  3. Match photos to specs
//  4. Materialize one folder per non-empty album
//  5. Write README.md, summary.json, unmatched.log and the gallery index
//
// # Basic Usage
//
//	manager := organize.NewManager(settings, organize.Options{DryRun: true}, log, func(event organize.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	stats, err := manager.Run(ctx, "Create albums for vacation and work")
//	if errors.Is(err, organize.ErrNoPhotos) {
//	    // nothing to do
//	}
//
// # Concurrency
//
// Albums are materialized in parallel up to settings.MaxConcurrentAlbums.
// Photos within one album are placed sequentially so conflict suffixes
// are assigned deterministically. Folder paths are fixed before any
// album starts.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// Every event is also written to the run logger.
package organize
