package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration
	"os"

	"golang.org/x/image/draw"
)

// ImageService renders gallery thumbnails.
//
// Example usage:
//
//	svc := NewImageService()
//	err := svc.WriteThumbnail(ctx, "/albums/2024-03-Vacation/beach.jpg", "/albums/.thumbnails/2024-03-Vacation.jpg", 200)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// ResizeImage resizes an image to fit within the specified maximum dimensions.
//
// The aspect ratio is preserved and images are never enlarged. The result
// is JPEG-encoded. The Catmull-Rom algorithm is used for scaling.
//
// Example:
//
//	resized, err := svc.ResizeImage(ctx, imageData, 200, 200)
//	// A 1500x1000 image becomes 200x133
//	// A 120x80 image stays 120x80 (but re-encoded)
func (s *ImageService) ResizeImage(ctx context.Context, data []byte, maxWidth, maxHeight int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := fitWithin(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 85}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WriteThumbnail reads the image at src, resizes it to fit a size x size
// box and writes it as JPEG to dst.
func (s *ImageService) WriteThumbnail(ctx context.Context, src, dst string, size int) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	thumb, err := s.ResizeImage(ctx, data, size, size)
	if err != nil {
		return err
	}

	return WriteFile(ctx, dst, thumb)
}

// fitWithin scales width x height down to fit maxWidth x maxHeight.
func fitWithin(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= maxWidth && height <= maxHeight {
		return width, height
	}

	ratio := float64(width) / float64(height)
	if float64(maxWidth)/float64(maxHeight) > ratio {
		// Height is the limiting factor
		width = int(float64(maxHeight) * ratio)
		height = maxHeight
	} else {
		height = int(float64(maxWidth) / ratio)
		width = maxWidth
	}

	return max(width, 1), max(height, 1)
}
