// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging turns an uploaded product photo into an embedded data URI.
// Large photos are scaled down first, since the image travels inside the
// persisted catalog blob.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	// MaxUploadSize is the largest accepted upload (5 MB).
	MaxUploadSize = 5 << 20

	// MaxWidth is the widest image stored; wider images are scaled down.
	MaxWidth = 800

	// jpegQuality is used when a scaled image is re-encoded as JPEG.
	jpegQuality = 82

	// maxImagePixels caps decoded size to prevent memory bombs.
	maxImagePixels = 40_000_000
)

// ErrUnsupported is returned for uploads that are not a supported image type.
var ErrUnsupported = errors.New("imaging: unsupported image type")

// allowedTypes are the MIME types accepted for product images.
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// DataURI validates an uploaded image and returns it as a data URI. JPEG,
// PNG and WebP images wider than MaxWidth are scaled down; GIFs are kept
// as-is to preserve animation.
func DataURI(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("imaging: empty upload")
	}
	if len(data) > MaxUploadSize {
		return "", fmt.Errorf("imaging: upload exceeds %d bytes", MaxUploadSize)
	}

	mt := mimetype.Detect(data).String()
	if !allowedTypes[mt] {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, mt)
	}

	if mt != "image/gif" {
		scaled, scaledType, err := shrink(data, mt)
		if err != nil {
			return "", err
		}
		data, mt = scaled, scaledType
	}

	return "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// shrink scales the image down to MaxWidth when needed. PNG stays PNG to
// keep transparency; everything else is re-encoded as JPEG.
func shrink(data []byte, mt string) ([]byte, string, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("imaging: decode config: %w", err)
	}
	if cfg.Width*cfg.Height > maxImagePixels {
		return nil, "", fmt.Errorf("imaging: image too large (%dx%d)", cfg.Width, cfg.Height)
	}
	if cfg.Width <= MaxWidth {
		return data, mt, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("imaging: decode: %w", err)
	}

	height := cfg.Height * MaxWidth / cfg.Width
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, MaxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if mt == "image/png" {
		if err := png.Encode(&buf, dst); err != nil {
			return nil, "", fmt.Errorf("imaging: encode png: %w", err)
		}
		return buf.Bytes(), "image/png", nil
	}
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, "", fmt.Errorf("imaging: encode jpeg: %w", err)
	}
	return buf.Bytes(), "image/jpeg", nil
}
