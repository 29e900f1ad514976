package model

import (
	"fmt"
	"time"
)

// GeoLocation is a decimal-degree coordinate read from photo metadata.
type GeoLocation struct {
	Latitude  float64
	Longitude float64
}

// String formats the coordinate as "lat,long" with six decimals.
func (g GeoLocation) String() string {
	return fmt.Sprintf("%.6f,%.6f", g.Latitude, g.Longitude)
}

// Photo is one scanned photo file.
//
// Photos are produced by the scanner and are read-only to the matcher
// and the materializer.
//
// Example:
//
//	photo := &Photo{
//	    Path:       "/photos/incoming/NCC/parade_001.jpg",
//	    Filename:   "parade_001.jpg",
//	    FolderName: "NCC",
//	}
//	photo.PreferredDate() // CaptureDate, or FileCreated when no capture date is known
type Photo struct {
	// Path locates the file. It is opaque to the matcher.
	Path string

	// Filename is the base name including extension.
	Filename string

	// FolderName is the name of the immediate parent directory.
	FolderName string

	// FileCreated and FileModified are filesystem timestamps.
	FileCreated  time.Time
	FileModified time.Time

	// CaptureDate is the embedded capture timestamp. Zero when unknown.
	CaptureDate time.Time

	// Location is the embedded GPS position, nil when unknown.
	Location *GeoLocation

	// SizeBytes is the file size.
	SizeBytes int64
}

// PreferredDate returns the capture date if known, else the file creation time.
// The result is zero when neither is available.
func (p *Photo) PreferredDate() time.Time {
	if !p.CaptureDate.IsZero() {
		return p.CaptureDate
	}
	return p.FileCreated
}

// HasCaptureDate reports whether embedded capture metadata was found.
func (p *Photo) HasCaptureDate() bool {
	return !p.CaptureDate.IsZero()
}
