package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"floorplan-analyzer/internal/domain/entity"
)

type Config struct {
	Addr         string
	Engine       string
	LogLevel     string
	MaxBodyBytes int64
	MaxDimension int

	TelegramToken string
	BotWidth      int
	BotHeight     int

	Params entity.AnalysisParams
}

// Load читает .env (если есть) и переменные окружения.
func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	return FromEnv(os.LookupEnv)
}

// FromEnv собирает конфигурацию из источника переменных lookup.
// Некорректные числа и несогласованные параметры анализа — ошибка.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	r := reader{lookup: lookup}

	cfg := &Config{
		Addr:          r.str("FLOORPLAN_ADDR", ":5001"),
		Engine:        r.str("FLOORPLAN_ENGINE", "native"),
		LogLevel:      r.str("FLOORPLAN_LOG_LEVEL", "info"),
		MaxBodyBytes:  int64(r.integer("FLOORPLAN_MAX_BODY_BYTES", 32<<20)),
		MaxDimension:  r.integer("FLOORPLAN_MAX_DIMENSION", 4096),
		TelegramToken: r.str("TELEGRAM_TOKEN", ""),
		BotWidth:      r.integer("FLOORPLAN_BOT_WIDTH", 1024),
		BotHeight:     r.integer("FLOORPLAN_BOT_HEIGHT", 768),
	}

	p := entity.DefaultAnalysisParams()
	p.BinaryThreshold = uint8(r.intRange("FLOORPLAN_BINARY_THRESHOLD", int(p.BinaryThreshold), 0, 255))
	p.CloseKernel = r.integer("FLOORPLAN_CLOSE_KERNEL", p.CloseKernel)
	p.CannyLow = r.number("FLOORPLAN_CANNY_LOW", p.CannyLow)
	p.CannyHigh = r.number("FLOORPLAN_CANNY_HIGH", p.CannyHigh)
	p.HoughVotes = r.integer("FLOORPLAN_HOUGH_VOTES", p.HoughVotes)
	p.HoughMinLengthRatio = r.number("FLOORPLAN_HOUGH_MIN_LENGTH_RATIO", p.HoughMinLengthRatio)
	p.HoughMaxGap = r.integer("FLOORPLAN_HOUGH_MAX_GAP", p.HoughMaxGap)
	p.BorderTolerance = r.integer("FLOORPLAN_BORDER_TOLERANCE", p.BorderTolerance)
	p.RackSuitableRatio = r.number("FLOORPLAN_RACK_SUITABLE_RATIO", p.RackSuitableRatio)
	p.MainAreaRatio = r.number("FLOORPLAN_MAIN_AREA_RATIO", p.MainAreaRatio)
	p.RackMinAreaRatio = r.number("FLOORPLAN_RACK_MIN_AREA_RATIO", p.RackMinAreaRatio)
	p.RackMaxAreaRatio = r.number("FLOORPLAN_RACK_MAX_AREA_RATIO", p.RackMaxAreaRatio)
	p.RackMinAspect = r.number("FLOORPLAN_RACK_MIN_ASPECT", p.RackMinAspect)
	p.RackMaxAspect = r.number("FLOORPLAN_RACK_MAX_ASPECT", p.RackMaxAspect)
	cfg.Params = p

	if err := errors.Join(r.errs...); err != nil {
		return nil, err
	}
	if cfg.MaxBodyBytes <= 0 {
		return nil, fmt.Errorf("FLOORPLAN_MAX_BODY_BYTES must be positive, got %d", cfg.MaxBodyBytes)
	}
	if cfg.MaxDimension <= 0 {
		return nil, fmt.Errorf("FLOORPLAN_MAX_DIMENSION must be positive, got %d", cfg.MaxDimension)
	}
	if cfg.BotWidth <= 0 || cfg.BotHeight <= 0 {
		return nil, fmt.Errorf("bot resolution must be positive, got %dx%d", cfg.BotWidth, cfg.BotHeight)
	}
	if cfg.BotWidth > cfg.MaxDimension || cfg.BotHeight > cfg.MaxDimension {
		return nil, fmt.Errorf("bot resolution %dx%d exceeds FLOORPLAN_MAX_DIMENSION %d", cfg.BotWidth, cfg.BotHeight, cfg.MaxDimension)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("analysis params: %w", err)
	}

	return cfg, nil
}

// reader накапливает ошибки разбора, чтобы сообщить обо всех сразу.
type reader struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (r *reader) str(key, def string) string {
	if v, ok := r.lookup(key); ok && v != "" {
		return v
	}
	return def
}

func (r *reader) integer(key string, def int) int {
	v, ok := r.lookup(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: invalid integer %q", key, v))
		return def
	}
	return n
}

func (r *reader) intRange(key string, def, lo, hi int) int {
	n := r.integer(key, def)
	if n < lo || n > hi {
		r.errs = append(r.errs, fmt.Errorf("%s: %d out of range %d..%d", key, n, lo, hi))
		return def
	}
	return n
}

func (r *reader) number(key string, def float64) float64 {
	v, ok := r.lookup(key)
	if !ok || v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: invalid number %q", key, v))
		return def
	}
	return f
}
