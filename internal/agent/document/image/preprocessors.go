package image

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// ImagePreprocessor transforms an image before it is handed to OCR.
type ImagePreprocessor interface {
	Process(img image.Image) (image.Image, error)
}

type GrayscaleProcessor struct{}

func NewGrayscaleProcessor() *GrayscaleProcessor {
	return &GrayscaleProcessor{}
}

func (p *GrayscaleProcessor) Process(img image.Image) (image.Image, error) {
	return imaging.Grayscale(img), nil
}

// ContrastProcessor adjusts contrast by a percentage in [-100, 100].
type ContrastProcessor struct {
	percentage float64
}

func NewContrastProcessor(percentage float64) *ContrastProcessor {
	return &ContrastProcessor{percentage: percentage}
}

func (p *ContrastProcessor) Process(img image.Image) (image.Image, error) {
	return imaging.AdjustContrast(img, p.percentage), nil
}

type SharpenProcessor struct {
	sigma float64
}

func NewSharpenProcessor(sigma float64) *SharpenProcessor {
	return &SharpenProcessor{sigma: sigma}
}

func (p *SharpenProcessor) Process(img image.Image) (image.Image, error) {
	return imaging.Sharpen(img, p.sigma), nil
}

// UpscaleProcessor enlarges images whose shorter side is below minSide.
// Tesseract loses accuracy on small glyphs such as phone photos of ID cards.
type UpscaleProcessor struct {
	minSide int
}

func NewUpscaleProcessor(minSide int) *UpscaleProcessor {
	return &UpscaleProcessor{minSide: minSide}
}

func (p *UpscaleProcessor) Process(img image.Image) (image.Image, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	short := w
	if h < short {
		short = h
	}
	if short == 0 || short >= p.minSide {
		return img, nil
	}
	scale := float64(p.minSide) / float64(short)
	return imaging.Resize(img, int(float64(w)*scale), int(float64(h)*scale), imaging.Lanczos), nil
}

// BorderProcessor pads the image with a white border.
type BorderProcessor struct {
	size int
}

func NewBorderProcessor(size int) *BorderProcessor {
	return &BorderProcessor{size: size}
}

func (p *BorderProcessor) Process(img image.Image) (image.Image, error) {
	if p.size <= 0 {
		return img, nil
	}
	b := img.Bounds()
	dst := imaging.New(b.Dx()+2*p.size, b.Dy()+2*p.size, color.White)
	return imaging.Paste(dst, img, image.Pt(p.size, p.size)), nil
}

func runPreprocessors(img image.Image, steps []ImagePreprocessor) (image.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("input image is nil")
	}
	var err error
	for _, step := range steps {
		if img, err = step.Process(img); err != nil {
			return nil, err
		}
	}
	return img, nil
}
