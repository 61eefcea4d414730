package port

import (
	"context"

	"floorplan-analyzer/internal/domain/entity"
)

// FloorPlanAnalyzer интерфейс движка анализа планов этажа
type FloorPlanAnalyzer interface {
	// Name возвращает имя движка
	Name() string

	// Analyze приводит изображение к разрешению width x height и извлекает геометрию
	Analyze(ctx context.Context, imageData []byte, width, height int) (*entity.AnalysisResult, error)

	// Highlight рисует найденную геометрию поверх изображения и возвращает PNG
	Highlight(imageData []byte, width, height int, result *entity.AnalysisResult) ([]byte, error)
}
