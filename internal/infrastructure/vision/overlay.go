package vision

import (
	"bytes"
	"errors"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/imgio"

	"floorplan-analyzer/internal/domain/entity"
)

var (
	perimeterColor = color.NRGBA{R: 255, A: 255}
	regionColor    = color.NRGBA{B: 255, A: 255}
	rackColor      = color.NRGBA{G: 200, A: 255}
)

// Highlight рисует периметр (красный), области (синий) и ячейки стеллажей
// (зелёный) поверх изображения, приведённого к рабочему разрешению.
func (a *NativeAnalyzer) Highlight(imageData []byte, width, height int, result *entity.AnalysisResult) ([]byte, error) {
	if result == nil {
		return nil, errors.New("empty analysis result")
	}
	img, err := decodeResized(imageData, width, height)
	if err != nil {
		return nil, err
	}

	drawOverlay(img, result)

	var buf bytes.Buffer
	if err := imgio.PNGEncoder()(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawOverlay рисует геометрию результата на img.
func drawOverlay(img *image.NRGBA, result *entity.AnalysisResult) {
	for _, r := range result.Regions {
		drawRect(img, r.Bounds, regionColor)
	}
	for _, r := range result.Racks {
		drawRect(img, r.Bounds, rackColor)
	}
	for _, s := range result.Edges {
		drawLine(img, s.Start.X, s.Start.Y, s.End.X, s.End.Y, perimeterColor)
	}
}

// drawRect рисует контур прямоугольника толщиной 2 пикселя.
func drawRect(img *image.NRGBA, b entity.BoundingBox, c color.NRGBA) {
	x1, y1 := b.X+b.Width-1, b.Y+b.Height-1
	drawLine(img, b.X, b.Y, x1, b.Y, c)
	drawLine(img, b.X, y1, x1, y1, c)
	drawLine(img, b.X, b.Y, b.X, y1, c)
	drawLine(img, x1, b.Y, x1, y1, c)
}

// drawLine рисует отрезок алгоритмом Брезенхэма.
func drawLine(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		plot(img, x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// plot ставит точку 2x2, отбрасывая выходящие за изображение пиксели.
func plot(img *image.NRGBA, x, y int, c color.NRGBA) {
	b := img.Bounds()
	for dy := 0; dy < 2; dy++ {
		for dx := 0; dx < 2; dx++ {
			p := image.Pt(x+dx, y+dy)
			if p.In(b) {
				img.SetNRGBA(p.X, p.Y, c)
			}
		}
	}
}
