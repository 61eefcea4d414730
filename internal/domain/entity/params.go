package entity

import (
	"errors"
	"fmt"
)

// AnalysisParams — пороги и политики конвейера анализа.
// Все значения задаются относительно рабочего разрешения.
type AnalysisParams struct {
	BinaryThreshold uint8 // пиксели ярче или равные порогу — фон
	CloseKernel     int   // сторона квадратного структурного элемента закрытия

	CannyLow  float64
	CannyHigh float64

	HoughVotes          int     // минимум голосов в аккумуляторе
	HoughMinLengthRatio float64 // доля от max(width, height)
	HoughMaxGap         int     // допустимый разрыв между точками одной линии
	HoughSeed           uint64  // зерно генератора для детерминированного порядка точек

	BorderTolerance int // допуск выравнивания и близости к краю, пиксели

	RackSuitableRatio float64 // area > ratio*total => suitableForRacks
	MainAreaRatio     float64 // area > ratio*total => main_area

	ApproxEpsilonRatio float64 // доля длины контура для упрощения многоугольника
	RackMinAreaRatio   float64
	RackMaxAreaRatio   float64
	RackMinAspect      float64
	RackMaxAspect      float64
}

// DefaultAnalysisParams возвращает параметры по умолчанию.
func DefaultAnalysisParams() AnalysisParams {
	return AnalysisParams{
		BinaryThreshold:     200,
		CloseKernel:         15,
		CannyLow:            50,
		CannyHigh:           150,
		HoughVotes:          100,
		HoughMinLengthRatio: 0.5,
		HoughMaxGap:         10,
		HoughSeed:           0x5eed,
		BorderTolerance:     10,
		RackSuitableRatio:   0.02,
		MainAreaRatio:       0.2,
		ApproxEpsilonRatio:  0.02,
		RackMinAreaRatio:    0.001,
		RackMaxAreaRatio:    0.03,
		RackMinAspect:       0.3,
		RackMaxAspect:       3.0,
	}
}

// HoughMinLength — минимальная длина линии для изображения width x height.
func (p AnalysisParams) HoughMinLength(width, height int) int {
	return int(float64(max(width, height)) * p.HoughMinLengthRatio)
}

// Validate проверяет согласованность параметров.
func (p AnalysisParams) Validate() error {
	var errs []error
	if p.CloseKernel <= 0 {
		errs = append(errs, fmt.Errorf("close kernel must be positive, got %d", p.CloseKernel))
	}
	if p.CannyLow < 0 || p.CannyHigh < p.CannyLow {
		errs = append(errs, fmt.Errorf("canny thresholds must satisfy 0 <= low <= high, got %v/%v", p.CannyLow, p.CannyHigh))
	}
	if p.HoughVotes <= 0 {
		errs = append(errs, fmt.Errorf("hough votes must be positive, got %d", p.HoughVotes))
	}
	if p.HoughMinLengthRatio < 0 || p.HoughMaxGap < 0 {
		errs = append(errs, errors.New("hough length ratio and gap must not be negative"))
	}
	if p.BorderTolerance <= 0 {
		errs = append(errs, fmt.Errorf("border tolerance must be positive, got %d", p.BorderTolerance))
	}
	if p.RackSuitableRatio < 0 || p.MainAreaRatio < 0 || p.ApproxEpsilonRatio < 0 {
		errs = append(errs, errors.New("area ratios must not be negative"))
	}
	if p.RackMinAreaRatio < 0 || p.RackMaxAreaRatio <= p.RackMinAreaRatio {
		errs = append(errs, fmt.Errorf("rack area bounds must satisfy 0 <= min < max, got %v/%v", p.RackMinAreaRatio, p.RackMaxAreaRatio))
	}
	if p.RackMinAspect < 0 || p.RackMaxAspect <= p.RackMinAspect {
		errs = append(errs, fmt.Errorf("rack aspect bounds must satisfy 0 <= min < max, got %v/%v", p.RackMinAspect, p.RackMaxAspect))
	}
	return errors.Join(errs...)
}
