package vision

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder

	"github.com/disintegration/imaging"

	"floorplan-analyzer/internal/domain/entity"
)

// Normalize декодирует изображение, приводит его к width x height и
// переводит в яркость (0.299 R + 0.587 G + 0.114 B).
func Normalize(imageData []byte, width, height int) (*Raster, error) {
	img, err := decodeResized(imageData, width, height)
	if err != nil {
		return nil, err
	}
	return Luma(img), nil
}

// Luma переводит цветное изображение в одноканальную яркость.
func Luma(img *image.NRGBA) *Raster {
	gray := imaging.Grayscale(img)
	b := gray.Bounds()
	r := NewRaster(b.Dx(), b.Dy())
	for y := 0; y < r.Height; y++ {
		row := gray.Pix[y*gray.Stride:]
		for x := 0; x < r.Width; x++ {
			r.Pix[y*r.Width+x] = row[x*4]
		}
	}
	return r
}

// decodeResized декодирует байты изображения и масштабирует до width x height.
func decodeResized(imageData []byte, width, height int) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, &entity.ProcessingError{
			Stage: "normalize",
			Err:   fmt.Errorf("invalid working size %dx%d", width, height),
		}
	}
	if len(imageData) == 0 {
		return nil, &entity.DecodeError{Err: errors.New("empty image data")}
	}

	// Ориентация EXIF применяется так же, как при декодировании в OpenCV.
	img, err := imaging.Decode(bytes.NewReader(imageData), imaging.AutoOrientation(true))
	if err != nil {
		return nil, &entity.DecodeError{Err: err}
	}
	if img.Bounds().Empty() {
		return nil, &entity.ProcessingError{Stage: "normalize", Err: errors.New("empty image")}
	}

	// Интерполяция, а не обрезка: все допуски дальше заданы в этом разрешении.
	return imaging.Resize(img, width, height, imaging.Linear), nil
}
