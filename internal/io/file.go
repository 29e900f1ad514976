package ioutils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// CopyFile copies a file from source to destination.
//
// The destination file is created with the source file's permission bits
// and fails if it already exists; callers pick a free name with UniquePath
// first. Modification and access times are copied from the source.
//
// Parameters:
//   - ctx: Context checked before the copy starts
//   - src: Source file path (must exist)
//   - dst: Destination file path (must not exist)
//
// Returns an error if:
//   - The context is already done
//   - Source file cannot be opened
//   - Destination file cannot be created
//   - Copy operation fails
//
// Example:
//
//	err := CopyFile(ctx, "/photos/incoming/IMG_0001.jpg", "/photos/albums/2024-03-Vacation/IMG_0001.jpg")
func CopyFile(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	info, err := sourceFile.Stat()
	if err != nil {
		return err
	}

	destFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		destFile.Close()
		os.Remove(dst)
		return err
	}
	if err := destFile.Close(); err != nil {
		return err
	}

	return PreserveTimes(dst, info.ModTime(), info.ModTime())
}

// MoveFile moves src to dst.
//
// A rename is tried first. When the rename fails, for example across
// devices, the file is copied and the source removed. A destination that
// already exists is an error.
func MoveFile(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("destination already exists: %s", dst)
	}

	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	if err := CopyFile(ctx, src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

// PreserveTimes sets the access and modification times of path.
func PreserveTimes(path string, atime, mtime time.Time) error {
	return os.Chtimes(path, atime, mtime)
}

// UniquePath returns a path in dir for name that does not exist yet.
//
// When dir/name is taken, "_1", "_2", ... is appended to the base name
// before the extension. Paths in reserved count as taken; the returned
// path is added to reserved when it is non-nil.
//
// Example:
//
//	UniquePath("/albums/2024-03-Vacation", "beach.jpg", nil)
//	// Returns "/albums/2024-03-Vacation/beach_1.jpg" when beach.jpg exists
func UniquePath(dir, name string, reserved map[string]bool) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	candidate := filepath.Join(dir, name)
	for n := 1; taken(candidate, reserved); n++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, n, ext))
	}

	if reserved != nil {
		reserved[candidate] = true
	}
	return candidate
}

func taken(path string, reserved map[string]bool) bool {
	if reserved[path] {
		return true
	}
	_, err := os.Lstat(path)
	return !errors.Is(err, os.ErrNotExist)
}

// WriteFile writes data to a file, creating it and its parent directories
// if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing.
//
// Example:
//
//	err := WriteFile(ctx, "/photos/albums/2024-03-Vacation/README.md", readme)
func WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

var (
	invalidChars  = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots  = regexp.MustCompile(`\.+$`)
	multipleSpace = regexp.MustCompile(`\s+`)
)

// SanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Trailing dots → removed (Windows limitation)
//   - Multiple whitespace → single space
//   - Trailing whitespace → removed
//
// Example:
//
//	SanitizeFileName("Fests: Day/Night") // Returns "Fests_ Day_Night"
//	SanitizeFileName("Trip...")          // Returns "Trip"
func SanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = multipleSpace.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
