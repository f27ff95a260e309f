package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/Faultbox/daynight/internal/config"
	"github.com/Faultbox/daynight/internal/render"
)

// loadTextures decodes the day and night images the composite mode needs.
// They must already match the output resolution; nothing is rescaled.
func loadTextures(cfg *config.Config) (render.Textures, error) {
	mode, err := cfg.Mode()
	if err != nil {
		return render.Textures{}, err
	}
	if !mode.Policy().NeedsTextures() {
		return render.Textures{}, nil
	}
	if cfg.Render.DayTexture == "" || cfg.Render.NightTexture == "" {
		return render.Textures{}, fmt.Errorf("%s mode needs day_texture and night_texture", mode)
	}

	day, err := decodeRGB(cfg.Render.DayTexture)
	if err != nil {
		return render.Textures{}, err
	}
	night, err := decodeRGB(cfg.Render.NightTexture)
	if err != nil {
		return render.Textures{}, err
	}
	return render.Textures{Day: day, Night: night}, nil
}

// decodeRGB reads an image file into packed RGB bytes.
func decodeRGB(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	b := img.Bounds()
	pix := make([]byte, 0, b.Dx()*b.Dy()*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			pix = append(pix, byte(r>>8), byte(g>>8), byte(bl>>8))
		}
	}
	return pix, nil
}
