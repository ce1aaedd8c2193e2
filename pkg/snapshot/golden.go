package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"

	rerrors "github.com/nagyist/rover-android/pkg/errors"
)

// LoadPNG reads a PNG file.
func LoadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, rerrors.Wrap(rerrors.ErrCodeFileNotFound, err, "golden image %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, rerrors.Wrap(rerrors.ErrCodeInvalidFormat, err, "decode %s", path)
	}
	return img, nil
}

// SavePNG writes img to path, creating parent directories.
func SavePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// Check compares img with the golden file at path. With update set the
// golden file is (re)written from img and the result is a match.
func Check(img image.Image, path string, opts Options, update bool) (*Result, error) {
	if update {
		if err := SavePNG(path, img); err != nil {
			return nil, err
		}
		b := img.Bounds()
		return &Result{Match: true, TotalPixels: b.Dx() * b.Dy()}, nil
	}

	golden, err := LoadPNG(path)
	if err != nil {
		return nil, err
	}
	return Compare(img, golden, opts)
}

// DiffPath returns the conventional diff file name for a golden file:
// testdata/home.png becomes testdata/home.diff.png.
func DiffPath(golden string) string {
	ext := filepath.Ext(golden)
	return golden[:len(golden)-len(ext)] + ".diff" + ext
}
