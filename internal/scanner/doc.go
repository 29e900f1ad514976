// Package scanner finds photo files under a source folder and reads their metadata.
//
// The scanner walks the source tree in lexical order, skips hidden
// files and directories, and keeps files whose extension is configured.
// For each kept file it records filesystem timestamps and, when the file
// carries EXIF data, the capture date and GPS position.
//
// # Usage
//
//	s := scanner.New(settings.ToScanOptions(), log)
//	photos, err := s.Scan(ctx)
//	if err != nil {
//	    return err
//	}
//
// Files with unreadable or missing EXIF data are still returned; their
// capture date is left zero so callers fall back to filesystem time.
package scanner
