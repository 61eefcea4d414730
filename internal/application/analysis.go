package app

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"strings"
	"time"

	"floorplan-analyzer/internal/domain/entity"
	"floorplan-analyzer/internal/domain/port"
)

// AnalysisRequest — тело запроса на анализ плана этажа.
type AnalysisRequest struct {
	Base64Image string `json:"base64Image"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

// AnalysisOutput содержит результат анализа и картинку с подсветкой.
type AnalysisOutput struct {
	Result      *entity.AnalysisResult
	Highlighted []byte
}

type AnalysisService struct {
	analyzer     port.FloorPlanAnalyzer
	maxDimension int
	logger       *slog.Logger
}

// NewAnalysisService создаёт сервис анализа поверх выбранного движка.
// maxDimension ограничивает каждую сторону рабочего разрешения;
// 0 означает MaxResolution.
func NewAnalysisService(analyzer port.FloorPlanAnalyzer, maxDimension int, logger *slog.Logger) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	if maxDimension <= 0 {
		maxDimension = MaxResolution
	}
	return &AnalysisService{analyzer: analyzer, maxDimension: maxDimension, logger: logger}
}

// Engine возвращает имя движка анализа.
func (s *AnalysisService) Engine() string {
	if s.analyzer == nil {
		return ""
	}
	return s.analyzer.Name()
}

// Analyze проверяет запрос, декодирует base64 и запускает конвейер.
// Без изображения, ширины или высоты возвращается ErrMissingParameter,
// при слишком большом разрешении — SizeLimitError; оба до декодирования.
func (s *AnalysisService) Analyze(ctx context.Context, req AnalysisRequest) (*entity.AnalysisResult, error) {
	if req.Base64Image == "" || req.Width == 0 || req.Height == 0 {
		return nil, entity.ErrMissingParameter
	}
	if err := s.checkSize(req.Width, req.Height); err != nil {
		return nil, err
	}

	data, err := DecodeBase64Image(req.Base64Image)
	if err != nil {
		return nil, &entity.DecodeError{Err: err}
	}

	return s.run(ctx, data, req.Width, req.Height)
}

// AnalyzeAndHighlight анализирует уже декодированное изображение и рисует
// найденную геометрию. Ошибка подсветки не прерывает анализ.
func (s *AnalysisService) AnalyzeAndHighlight(ctx context.Context, imageData []byte, width, height int) (*AnalysisOutput, error) {
	result, err := s.run(ctx, imageData, width, height)
	if err != nil {
		return nil, err
	}

	highlighted, err := s.analyzer.Highlight(imageData, width, height, result)
	if err != nil {
		s.logger.Warn("highlight failed", "engine", s.analyzer.Name(), "error", err)
		highlighted = nil
	}
	return &AnalysisOutput{Result: result, Highlighted: highlighted}, nil
}

func (s *AnalysisService) run(ctx context.Context, imageData []byte, width, height int) (*entity.AnalysisResult, error) {
	if s.analyzer == nil {
		return nil, &entity.ProcessingError{Stage: "engine", Err: errors.New("analyzer is not configured")}
	}
	if err := s.checkSize(width, height); err != nil {
		return nil, err
	}

	started := time.Now()
	result, err := s.analyzer.Analyze(ctx, imageData, width, height)
	if err != nil {
		s.logger.Error("analysis failed",
			"engine", s.analyzer.Name(),
			"width", width,
			"height", height,
			"error", err,
		)
		return nil, err
	}

	s.logger.Info("analysis completed",
		"engine", s.analyzer.Name(),
		"width", width,
		"height", height,
		"perimeter", len(result.Edges),
		"regions", len(result.Regions),
		"racks", len(result.Racks),
		"summary", result.Summary(),
		"duration", time.Since(started),
	)
	return result, nil
}

// checkSize не пускает в конвейер разрешение, под которое нельзя выделить буферы.
func (s *AnalysisService) checkSize(width, height int) error {
	if width > s.maxDimension || height > s.maxDimension {
		return &entity.SizeLimitError{Width: width, Height: height, Max: s.maxDimension}
	}
	return nil
}

// DecodeBase64Image декодирует изображение из base64. Префикс data URL
// (`data:image/png;base64,`) и пробельные символы отбрасываются, допускается
// отсутствие выравнивания `=`.
func DecodeBase64Image(s string) ([]byte, error) {
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			s = s[i+1:]
		}
	}
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
	if s == "" {
		return nil, errors.New("empty base64 payload")
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}
	if raw, rawErr := base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "=")); rawErr == nil {
		return raw, nil
	}
	return nil, err
}
