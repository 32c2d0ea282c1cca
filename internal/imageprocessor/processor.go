package imageprocessor

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

const (
	defaultQuality = 85
	defaultMaxSide = 1024
)

// Processor уменьшает фото профиля до maxSide по большей стороне
type Processor struct {
	maxSide int
	quality int // JPEG quality (1-100)
}

func NewProcessor(maxSide, quality int) *Processor {
	if quality <= 0 || quality > 100 {
		quality = defaultQuality
	}
	if maxSide <= 0 {
		maxSide = defaultMaxSide
	}
	return &Processor{maxSide: maxSide, quality: quality}
}

// Fit возвращает уменьшенную копию JPEG/PNG в том же формате.
// Изображения меньше лимита и прочие форматы возвращаются без изменений.
func (p *Processor) Fit(data []byte, contentType string) ([]byte, error) {
	if contentType != "image/jpeg" && contentType != "image/png" {
		return data, nil
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to read image header: %w", err)
	}
	if cfg.Width <= p.maxSide && cfg.Height <= p.maxSide {
		return data, nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	resized := p.resize(img)

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, resized, &jpeg.Options{Quality: p.quality})
	case "png":
		err = png.Encode(&buf, resized)
	default:
		return nil, fmt.Errorf("unsupported image format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// resize сохраняет пропорции
func (p *Processor) resize(img image.Image) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	newWidth, newHeight := p.maxSide, p.maxSide
	if width >= height {
		newHeight = max(1, height*p.maxSide/width)
	} else {
		newWidth = max(1, width*p.maxSide/height)
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
