//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"

	"floorplan-analyzer/internal/domain/entity"
)

// GoCVAnalyzer — движок анализа на OpenCV.
type GoCVAnalyzer struct {
	Params entity.AnalysisParams
}

// NewGoCVAnalyzer создаёт движок OpenCV с заданными параметрами.
func NewGoCVAnalyzer(params entity.AnalysisParams) *GoCVAnalyzer {
	return &GoCVAnalyzer{Params: params}
}

func (d *GoCVAnalyzer) Name() string { return EngineGoCV }

// Analyze запускает конвейер анализа плана этажа.
func (d *GoCVAnalyzer) Analyze(ctx context.Context, imageData []byte, width, height int) (*entity.AnalysisResult, error) {
	p := d.Params

	img, err := decodeResizedMat(imageData, width, height)
	if err != nil {
		return nil, err
	}
	defer img.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)

	// Инвертированный порог: стены (v < BinaryThreshold) становятся белыми.
	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(gray, &binary, float32(p.BinaryThreshold)-1, 255, gocv.ThresholdBinaryInv)

	// Закрытие соединяет разрывы в стенах.
	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(p.CloseKernel, p.CloseKernel))
	defer kernel.Close()
	closed := gocv.NewMat()
	defer closed.Close()
	gocv.MorphologyEx(binary, &closed, gocv.MorphClose, kernel)
	if err := stageDone(ctx, "morphology"); err != nil {
		return nil, err
	}

	edges := d.perimeter(closed, width, height)
	if err := stageDone(ctx, "perimeter"); err != nil {
		return nil, err
	}

	contours, regions := d.regions(closed, width, height)
	if err := stageDone(ctx, "regions"); err != nil {
		return nil, err
	}

	racks := d.rackCells(binary, width, height)

	return entity.NewAnalysisResult(width, height, edges, contours, regions, racks), nil
}

func (d *GoCVAnalyzer) perimeter(closed gocv.Mat, width, height int) []entity.Segment {
	p := d.Params

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(closed, &edges, float32(p.CannyLow), float32(p.CannyHigh))

	lines := gocv.NewMat()
	defer lines.Close()
	gocv.HoughLinesPWithParams(edges, &lines, 1, float32(math.Pi/180), p.HoughVotes,
		float32(p.HoughMinLength(width, height)), float32(p.HoughMaxGap))

	found := make([]Line, 0, lines.Rows())
	for i := 0; i < lines.Rows(); i++ {
		v := lines.GetVeciAt(i, 0)
		found = append(found, Line{X1: int(v[0]), Y1: int(v[1]), X2: int(v[2]), Y2: int(v[3])})
	}
	return perimeterSegments(found, width, height, p)
}

func (d *GoCVAnalyzer) regions(closed gocv.Mat, width, height int) ([]entity.Contour, []entity.Region) {
	inv := gocv.NewMat()
	defer inv.Close()
	gocv.BitwiseNot(closed, &inv)

	cnts := gocv.FindContours(inv, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer cnts.Close()

	boxes := make([]entity.BoundingBox, 0, cnts.Size())
	for i := 0; i < cnts.Size(); i++ {
		boxes = append(boxes, toBoundingBox(gocv.BoundingRect(cnts.At(i))))
	}
	contours := regionContours(boxes)
	return contours, classifyRegions(contours, width, height, d.Params)
}

func (d *GoCVAnalyzer) rackCells(binary gocv.Mat, width, height int) []entity.RackCell {
	cnts := gocv.FindContours(binary, gocv.RetrievalTree, gocv.ChainApproxSimple)
	defer cnts.Close()

	racks := make([]entity.RackCell, 0)
	for i := 0; i < cnts.Size(); i++ {
		c := cnts.At(i)
		epsilon := d.Params.ApproxEpsilonRatio * gocv.ArcLength(c, true)
		approx := gocv.ApproxPolyDP(c, epsilon, true)
		pts := approx.ToPoints()
		approx.Close()

		if cell, ok := rackCell(i, pts, width, height, d.Params); ok {
			racks = append(racks, cell)
		}
	}
	return racks
}

// Highlight рисует найденную геометрию и возвращает PNG.
func (d *GoCVAnalyzer) Highlight(imageData []byte, width, height int, result *entity.AnalysisResult) ([]byte, error) {
	if result == nil {
		return nil, errors.New("empty analysis result")
	}
	mat, err := decodeResizedMat(imageData, width, height)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	blue := color.RGBA{B: 255, A: 255}
	green := color.RGBA{G: 200, A: 255}
	red := color.RGBA{R: 255, A: 255}
	for _, r := range result.Regions {
		gocv.Rectangle(&mat, toRect(r.Bounds), blue, 2)
	}
	for _, r := range result.Racks {
		gocv.Rectangle(&mat, toRect(r.Bounds), green, 2)
	}
	for _, s := range result.Edges {
		gocv.Line(&mat, image.Pt(s.Start.X, s.Start.Y), image.Pt(s.End.X, s.End.Y), red, 2)
	}

	buf, err := gocv.IMEncode(gocv.PNGFileExt, mat)
	if err != nil {
		return nil, err
	}
	defer buf.Close()

	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}

// decodeResizedMat превращает байты изображения в gocv.Mat рабочего размера.
func decodeResizedMat(imageData []byte, width, height int) (gocv.Mat, error) {
	if width <= 0 || height <= 0 {
		return gocv.NewMat(), &entity.ProcessingError{Stage: "normalize", Err: errors.New("invalid working size")}
	}
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err != nil || mat.Empty() {
		if err == nil {
			err = errors.New("failed to decode image")
		}
		mat.Close()
		return gocv.NewMat(), &entity.DecodeError{Err: err}
	}

	resized := gocv.NewMat()
	gocv.Resize(mat, &resized, image.Pt(width, height), 0, 0, gocv.InterpolationLinear)
	mat.Close()
	return resized, nil
}

func toBoundingBox(r image.Rectangle) entity.BoundingBox {
	return entity.BoundingBox{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

func toRect(b entity.BoundingBox) image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}
