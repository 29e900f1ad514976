// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - Copying and moving photos with timestamp preservation
//   - Conflict-free destination names
//   - Filename sanitization for cross-platform compatibility
//   - Thumbnail rendering
//
// # File Operations
//
//	// Copy (backup mode) or move a photo
//	err := ioutils.CopyFile(ctx, "/src/IMG_0001.jpg", "/albums/2024-03-Vacation/IMG_0001.jpg")
//	err := ioutils.MoveFile(ctx, "/src/IMG_0001.jpg", "/albums/2024-03-Vacation/IMG_0001.jpg")
//
//	// Pick a free name: IMG_0001.jpg, IMG_0001_1.jpg, IMG_0001_2.jpg, ...
//	dst := ioutils.UniquePath("/albums/2024-03-Vacation", "IMG_0001.jpg", reserved)
//
// # Image Processing
//
// The ImageService renders gallery thumbnails:
//
//	svc := ioutils.NewImageService()
//	err := svc.WriteThumbnail(ctx, coverPath, thumbPath, 200)
package ioutils
