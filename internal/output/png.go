// Package output writes rendered frames to disk as PNG images.
package output

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/Faultbox/daynight/internal/render"
)

// Writer saves frame layers as PNG files.
type Writer struct {
	outputDir   string
	prefix      string
	timestamped bool
	log         *zap.Logger
	now         func() time.Time
}

// NewWriter creates a writer. With timestamped unset every frame overwrites
// the previous one, which suits a wallpaper that is reloaded periodically.
func NewWriter(outputDir, prefix string, timestamped bool, log *zap.Logger) *Writer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Writer{
		outputDir:   outputDir,
		prefix:      prefix,
		timestamped: timestamped,
		log:         log,
		now:         time.Now,
	}
}

// Image converts a layer to an image. RGB layers become opaque RGBA images;
// RGBA layers keep their straight alpha.
func Image(layer render.Layer, width, height int) (image.Image, error) {
	want := width * height * layer.Channels
	if len(layer.Pix) != want {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", want, len(layer.Pix))
	}

	switch layer.Channels {
	case 3:
		img := image.NewRGBA(image.Rect(0, 0, width, height))
		for i, o := 0, 0; i < width*height; i, o = i+1, o+3 {
			p := img.Pix[i*4 : i*4+4 : i*4+4]
			p[0], p[1], p[2], p[3] = layer.Pix[o], layer.Pix[o+1], layer.Pix[o+2], 255
		}
		return img, nil
	case 4:
		img := image.NewNRGBA(image.Rect(0, 0, width, height))
		copy(img.Pix, layer.Pix)
		return img, nil
	default:
		return nil, fmt.Errorf("unsupported channel count %d", layer.Channels)
	}
}

// WriteFrame writes every layer of the frame and returns the file paths in
// layer order.
func (w *Writer) WriteFrame(frame *render.Frame) ([]string, error) {
	if w.outputDir != "" {
		if err := os.MkdirAll(w.outputDir, 0755); err != nil {
			return nil, fmt.Errorf("creating output dir: %w", err)
		}
	}

	paths := make([]string, 0, len(frame.Layers))
	for _, layer := range frame.Layers {
		path, err := w.writeLayer(layer, frame.Width, frame.Height)
		if err != nil {
			return paths, fmt.Errorf("writing %s layer: %w", layer.Name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (w *Writer) writeLayer(layer render.Layer, width, height int) (string, error) {
	img, err := Image(layer, width, height)
	if err != nil {
		return "", err
	}

	filename := w.Filename(layer.Name)

	// Write next to the target and rename so readers never see a partial file
	tmp, err := os.CreateTemp(filepath.Dir(filename), ".daynight-*.png")
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	info, err := tmp.Stat()
	if err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return "", fmt.Errorf("renaming output: %w", err)
	}

	w.log.Debug("layer written",
		zap.String("layer", layer.Name),
		zap.String("path", filename),
		zap.String("size", humanize.Bytes(uint64(info.Size()))),
	)
	return filename, nil
}

// Filename returns the path a layer will be written to.
func (w *Writer) Filename(layer string) string {
	name := fmt.Sprintf("%s_%s.png", w.prefix, layer)
	if w.timestamped {
		timestamp := w.now().UTC().Format("2006-01-02_15-04-05")
		name = fmt.Sprintf("%s_%s_%s.png", w.prefix, layer, timestamp)
	}
	if w.outputDir != "" {
		name = filepath.Join(w.outputDir, name)
	}
	return name
}
