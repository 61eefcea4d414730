package entity

import (
	"errors"
	"fmt"
)

// ErrMissingParameter — в запросе нет изображения, ширины или высоты.
var ErrMissingParameter = errors.New("Missing required parameters")

// DecodeError — не удалось декодировать base64 или контейнер изображения.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode image: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ProcessingError — сбой одного из этапов конвейера.
type ProcessingError struct {
	Stage string
	Err   error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *ProcessingError) Unwrap() error { return e.Err }

// SizeLimitError — рабочее разрешение больше допустимого.
type SizeLimitError struct {
	Width  int
	Height int
	Max    int
}

func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("working size %dx%d exceeds limit %d per side", e.Width, e.Height, e.Max)
}

// IsClientError сообщает, что ошибка вызвана некорректным запросом.
func IsClientError(err error) bool {
	var sizeErr *SizeLimitError
	return errors.Is(err, ErrMissingParameter) || errors.As(err, &sizeErr)
}
