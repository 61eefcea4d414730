package vision

import (
	"context"
	"math"

	"floorplan-analyzer/internal/domain/entity"
)

// NativeAnalyzer — движок анализа на чистом Go.
type NativeAnalyzer struct {
	Params entity.AnalysisParams
}

// NewNativeAnalyzer создаёт движок с заданными параметрами.
func NewNativeAnalyzer(params entity.AnalysisParams) *NativeAnalyzer {
	return &NativeAnalyzer{Params: params}
}

func (a *NativeAnalyzer) Name() string { return EngineNative }

// Analyze запускает конвейер: нормализация, бинаризация, закрытие, затем
// периметр и области по закрытой маске и ячейки стеллажей по исходной.
func (a *NativeAnalyzer) Analyze(ctx context.Context, imageData []byte, width, height int) (*entity.AnalysisResult, error) {
	gray, err := Normalize(imageData, width, height)
	if err != nil {
		return nil, err
	}

	binary := Binarize(gray, a.Params.BinaryThreshold)
	closed := Close(binary, a.Params.CloseKernel)
	if err := stageDone(ctx, "morphology"); err != nil {
		return nil, err
	}

	edges := a.PerimeterSegments(closed)
	if err := stageDone(ctx, "perimeter"); err != nil {
		return nil, err
	}

	contours, regions := a.Regions(closed)
	if err := stageDone(ctx, "regions"); err != nil {
		return nil, err
	}

	racks := a.RackCells(binary)

	return entity.NewAnalysisResult(width, height, edges, contours, regions, racks), nil
}

// PerimeterSegments ищет отрезки внешнего периметра на закрытой маске.
func (a *NativeAnalyzer) PerimeterSegments(closed *Raster) []entity.Segment {
	p := a.Params
	edges := Canny(closed, p.CannyLow, p.CannyHigh)
	lines := HoughLinesP(edges, HoughParams{
		Rho:       1,
		Theta:     math.Pi / 180,
		Threshold: p.HoughVotes,
		MinLength: p.HoughMinLength(closed.Width, closed.Height),
		MaxGap:    p.HoughMaxGap,
		Seed:      p.HoughSeed,
	})
	return perimeterSegments(lines, closed.Width, closed.Height, p)
}

// Regions выделяет замкнутые области пола и классифицирует их.
func (a *NativeAnalyzer) Regions(closed *Raster) ([]entity.Contour, []entity.Region) {
	borders := FindContours(closed.Invert(), RetrieveExternal)
	boxes := make([]entity.BoundingBox, 0, len(borders))
	for _, b := range borders {
		boxes = append(boxes, BoundingRect(b.Points))
	}
	contours := regionContours(boxes)
	return contours, classifyRegions(contours, closed.Width, closed.Height, a.Params)
}

// RackCells ищет ячейки стеллажей на незакрытой маске, включая вложенные границы.
func (a *NativeAnalyzer) RackCells(binary *Raster) []entity.RackCell {
	borders := FindContours(binary, RetrieveTree)
	racks := make([]entity.RackCell, 0)
	for idx, b := range borders {
		approx := ApproxPolyDP(b.Points, a.Params.ApproxEpsilonRatio*ArcLength(b.Points))
		if cell, ok := rackCell(idx, approx, binary.Width, binary.Height, a.Params); ok {
			racks = append(racks, cell)
		}
	}
	return racks
}

// stageDone прерывает конвейер, если вызывающая сторона отменила запрос.
func stageDone(ctx context.Context, stage string) error {
	if err := ctx.Err(); err != nil {
		return &entity.ProcessingError{Stage: stage, Err: err}
	}
	return nil
}
