package entity

import "fmt"

// SegmentKind — тип отрезка стены.
type SegmentKind string

// SegmentPerimeter — отрезок внешнего периметра здания.
const SegmentPerimeter SegmentKind = "perimeter"

// RegionType — класс замкнутой области.
type RegionType string

const (
	RegionMainArea    RegionType = "main_area"    // основная открытая зона
	RegionStorageArea RegionType = "storage_area" // зона хранения
)

// Segment — прямой отрезок стены.
type Segment struct {
	Start Point       `json:"start"`
	End   Point       `json:"end"`
	Kind  SegmentKind `json:"type"`
}

// Contour — внешняя граница замкнутой области.
// Area — площадь описывающего прямоугольника, а не многоугольника.
type Contour struct {
	ID     string      `json:"id"`
	Bounds BoundingBox `json:"bounds"`
	Area   int         `json:"area"`
}

// Region — классифицированная область.
type Region struct {
	ID               string      `json:"id"`
	Bounds           BoundingBox `json:"bounds"`
	SuitableForRacks bool        `json:"suitableForRacks"`
	Type             RegionType  `json:"type"`
}

// RackCell — кандидат в ячейку стеллажа.
type RackCell struct {
	ID     string      `json:"id"`
	Bounds BoundingBox `json:"bounds"`
	Area   int         `json:"area"`
}

// Dimensions — рабочее разрешение анализа.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// AnalysisResult хранит итог анализа плана этажа.
type AnalysisResult struct {
	Edges      []Segment  `json:"edges"`
	Contours   []Contour  `json:"contours"`
	Regions    []Region   `json:"regions"`
	Racks      []RackCell `json:"racks"`
	Dimensions Dimensions `json:"dimensions"`
}

// NewAnalysisResult собирает результат. Пустые коллекции сериализуются как [], а не null.
func NewAnalysisResult(width, height int, edges []Segment, contours []Contour, regions []Region, racks []RackCell) *AnalysisResult {
	if edges == nil {
		edges = []Segment{}
	}
	if contours == nil {
		contours = []Contour{}
	}
	if regions == nil {
		regions = []Region{}
	}
	if racks == nil {
		racks = []RackCell{}
	}
	return &AnalysisResult{
		Edges:      edges,
		Contours:   contours,
		Regions:    regions,
		Racks:      racks,
		Dimensions: Dimensions{Width: width, Height: height},
	}
}

// MainAreas возвращает области класса main_area.
func (r *AnalysisResult) MainAreas() []Region {
	out := make([]Region, 0, len(r.Regions))
	for _, reg := range r.Regions {
		if reg.Type == RegionMainArea {
			out = append(out, reg)
		}
	}
	return out
}

// SuitableRegions считает области, пригодные под стеллажи.
func (r *AnalysisResult) SuitableRegions() int {
	n := 0
	for _, reg := range r.Regions {
		if reg.SuitableForRacks {
			n++
		}
	}
	return n
}

// Summary — короткая сводка для логов и ответа бота.
func (r *AnalysisResult) Summary() string {
	return fmt.Sprintf("%dx%d: perimeter=%d regions=%d (main=%d, suitable=%d) racks=%d",
		r.Dimensions.Width, r.Dimensions.Height,
		len(r.Edges), len(r.Regions), len(r.MainAreas()), r.SuitableRegions(), len(r.Racks))
}
