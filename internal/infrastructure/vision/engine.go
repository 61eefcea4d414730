package vision

import (
	"errors"
	"fmt"

	"floorplan-analyzer/internal/domain/entity"
	"floorplan-analyzer/internal/domain/port"
)

const (
	EngineNative = "native"
	EngineGoCV   = "gocv"
)

// ErrEngineUnavailable — движок не собран в этот бинарник.
var ErrEngineUnavailable = errors.New("gocv build tag is not enabled")

// NewAnalyzer выбирает движок по имени.
func NewAnalyzer(engine string, params entity.AnalysisParams) (port.FloorPlanAnalyzer, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analysis params: %w", err)
	}
	switch engine {
	case "", EngineNative:
		return NewNativeAnalyzer(params), nil
	case EngineGoCV:
		return NewGoCVAnalyzer(params), nil
	default:
		return nil, fmt.Errorf("unknown engine %q", engine)
	}
}
