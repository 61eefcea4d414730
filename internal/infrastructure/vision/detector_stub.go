//go:build !gocv
// +build !gocv

package vision

import (
	"context"

	"floorplan-analyzer/internal/domain/entity"
)

// GoCVAnalyzer — заглушка движка OpenCV для сборки без тега gocv.
type GoCVAnalyzer struct {
	Params entity.AnalysisParams
}

// NewGoCVAnalyzer создаёт движок-заглушку (без OpenCV).
func NewGoCVAnalyzer(params entity.AnalysisParams) *GoCVAnalyzer {
	return &GoCVAnalyzer{Params: params}
}

func (d *GoCVAnalyzer) Name() string { return EngineGoCV }

// Analyze возвращает ошибку, если сборка без тега gocv.
func (d *GoCVAnalyzer) Analyze(ctx context.Context, imageData []byte, width, height int) (*entity.AnalysisResult, error) {
	_ = ctx
	_ = imageData
	return nil, &entity.ProcessingError{Stage: "engine", Err: ErrEngineUnavailable}
}

// Highlight возвращает ошибку, если сборка без тега gocv.
func (d *GoCVAnalyzer) Highlight(imageData []byte, width, height int, result *entity.AnalysisResult) ([]byte, error) {
	_ = imageData
	_ = result
	return nil, ErrEngineUnavailable
}
