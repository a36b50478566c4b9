// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging generates cover thumbnails for sideloaded images.
// Decoding is pure Go (JPEG, PNG, GIF, WebP); output is always JPEG so
// the thumbnail renders everywhere regardless of the source format.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ThumbWidth is the target thumbnail width in pixels. Sources narrower
// than this are re-encoded at their original size, never upscaled.
const ThumbWidth = 480

const thumbQuality = 80

// Thumbnail holds one generated thumbnail ready for upload.
type Thumbnail struct {
	Width       int
	Height      int
	Data        []byte
	ContentType string // Always "image/jpeg"
}

// Generate decodes the source image and scales it down to ThumbWidth,
// preserving aspect ratio.
func Generate(original []byte) (*Thumbnail, error) {
	src, format, err := image.Decode(bytes.NewReader(original))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode failed: %w", err)
	}

	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("imaging: empty %s image", format)
	}

	targetWidth := ThumbWidth
	if width < targetWidth {
		targetWidth = width
	}
	targetHeight := height * targetWidth / width
	if targetHeight < 1 {
		targetHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: thumbQuality}); err != nil {
		return nil, fmt.Errorf("imaging: encode failed: %w", err)
	}

	return &Thumbnail{
		Width:       targetWidth,
		Height:      targetHeight,
		Data:        buf.Bytes(),
		ContentType: "image/jpeg",
	}, nil
}
