package vision

import (
	"fmt"
	"image"

	"floorplan-analyzer/internal/domain/entity"
)

// Постобработка, общая для всех движков: фильтр периметра, классификация
// областей и отбор ячеек стеллажей.

// perimeterSegments оставляет только почти горизонтальные линии у верхнего
// или нижнего края и почти вертикальные у левого или правого.
// Порядок линий сохраняется.
func perimeterSegments(lines []Line, width, height int, p entity.AnalysisParams) []entity.Segment {
	tol := p.BorderTolerance
	segments := make([]entity.Segment, 0, len(lines))
	for _, l := range lines {
		horizontal := abs(l.Y1-l.Y2) < tol && (l.Y1 < tol || l.Y1 > height-1-tol)
		vertical := abs(l.X1-l.X2) < tol && (l.X1 < tol || l.X1 > width-1-tol)
		if !horizontal && !vertical {
			continue
		}
		segments = append(segments, entity.Segment{
			Start: entity.Point{X: l.X1, Y: l.Y1},
			End:   entity.Point{X: l.X2, Y: l.Y2},
			Kind:  entity.SegmentPerimeter,
		})
	}
	return segments
}

// regionContours превращает описывающие прямоугольники внешних границ в
// контуры. Площадь — площадь прямоугольника.
func regionContours(boxes []entity.BoundingBox) []entity.Contour {
	contours := make([]entity.Contour, 0, len(boxes))
	for idx, box := range boxes {
		contours = append(contours, entity.Contour{
			ID:     fmt.Sprintf("contour_%d", idx),
			Bounds: box,
			Area:   box.Area(),
		})
	}
	return contours
}

// classifyRegions классифицирует контуры по доле от площади изображения.
func classifyRegions(contours []entity.Contour, width, height int, p entity.AnalysisParams) []entity.Region {
	total := float64(width * height)
	regions := make([]entity.Region, 0, len(contours))
	for _, c := range contours {
		area := float64(c.Area)
		regionType := entity.RegionStorageArea
		if area > total*p.MainAreaRatio {
			regionType = entity.RegionMainArea
		}
		regions = append(regions, entity.Region{
			ID:               c.ID,
			Bounds:           c.Bounds,
			SuitableForRacks: area > total*p.RackSuitableRatio,
			Type:             regionType,
		})
	}
	return regions
}

// rackCell проверяет упрощённый многоугольник границы с номером idx и
// возвращает ячейку стеллажа, если это выпуклый четырёхугольник подходящей
// площади и пропорций.
func rackCell(idx int, approx []image.Point, width, height int, p entity.AnalysisParams) (entity.RackCell, bool) {
	if len(approx) != 4 || !IsConvex(approx) {
		return entity.RackCell{}, false
	}

	box := BoundingRect(approx)
	area := float64(box.Area())
	total := float64(width * height)
	ratio := box.AspectRatio()

	if area <= total*p.RackMinAreaRatio || area >= total*p.RackMaxAreaRatio {
		return entity.RackCell{}, false
	}
	if ratio <= p.RackMinAspect || ratio >= p.RackMaxAspect {
		return entity.RackCell{}, false
	}
	return entity.RackCell{
		ID:     fmt.Sprintf("rack_cell_%d", idx),
		Bounds: box,
		Area:   box.Area(),
	}, true
}
