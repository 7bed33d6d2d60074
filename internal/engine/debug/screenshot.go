// Package debug provides developer tooling for the viewer.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Screenshots writes captured frames as PNG files.
type Screenshots struct {
	dir    string
	prefix string
	now    func() time.Time
}

// NewScreenshots saves into dir (created on first use) with names
// "<prefix>_<timestamp>.png".
func NewScreenshots(dir, prefix string) *Screenshots {
	return &Screenshots{dir: dir, prefix: prefix, now: time.Now}
}

// FlipRows converts bottom-up RGBA rows, as read back from OpenGL, into a
// top-down image.
func FlipRows(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: %dx%d needs %d bytes, got %d",
			width, height, width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := range height {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}

// Save encodes a bottom-up RGBA frame and returns the file path.
func (s *Screenshots) Save(pixels []byte, width, height int) (string, error) {
	img, err := FlipRows(pixels, width, height)
	if err != nil {
		return "", err
	}

	if s.dir != "" {
		if err := os.MkdirAll(s.dir, 0755); err != nil {
			return "", fmt.Errorf("creating screenshot dir: %w", err)
		}
	}
	name := filepath.Join(s.dir, fmt.Sprintf("%s_%s.png", s.prefix, s.now().Format("2006-01-02_15-04-05.000")))

	file, err := os.Create(name)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", name, err)
	}
	return name, nil
}
