// Package snapshot writes rendered frames to PNG files.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ncruces/zenity"

	"github.com/iburimskiy/neon-bars/internal/shared"
)

// Chooser asks the user for a destination path given a suggested file name.
type Chooser func(suggested string) (string, error)

// Writer saves frames either into a fixed directory or, when Directory is
// empty, to a path picked through Choose.
type Writer struct {
	Directory string
	Choose    Chooser
	Now       func() time.Time
}

// NewWriter returns a Writer that falls back to a native save dialog.
func NewWriter(dir string) *Writer {
	return &Writer{Directory: dir, Choose: DialogChooser, Now: time.Now}
}

// DialogChooser opens a native save dialog.
func DialogChooser(suggested string) (string, error) {
	path, err := zenity.SelectFileSave(
		zenity.Title("Save snapshot"),
		zenity.Filename(suggested),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "PNG image",
			Patterns: []string{"*.png"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", shared.ErrSnapshotCanceled
		}
		return "", err
	}
	return path, nil
}

// FileName is the suggested name for a snapshot taken at t.
func FileName(t time.Time) string {
	return "neon-bars-" + t.Format("20060102-150405.000") + ".png"
}

// Path resolves where the next snapshot goes.
func (w *Writer) Path() (string, error) {
	name := FileName(w.now())
	if w.Directory != "" {
		if err := os.MkdirAll(w.Directory, 0o755); err != nil {
			return "", fmt.Errorf("create snapshot directory: %w", err)
		}
		return filepath.Join(w.Directory, name), nil
	}
	if w.Choose == nil {
		return "", shared.ErrSnapshotCanceled
	}
	path, err := w.Choose(name)
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", shared.ErrSnapshotCanceled
	}
	if !strings.EqualFold(filepath.Ext(path), ".png") {
		path += ".png"
	}
	return path, nil
}

// Save encodes img as PNG and returns the path it was written to.
func (w *Writer) Save(img image.Image) (string, error) {
	path, err := w.Path()
	if err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create snapshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close snapshot: %w", err)
	}
	return path, nil
}

func (w *Writer) now() time.Time {
	if w.Now == nil {
		return time.Now()
	}
	return w.Now()
}
