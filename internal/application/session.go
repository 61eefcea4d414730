package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"floorplan-analyzer/internal/domain/entity"
	"floorplan-analyzer/internal/domain/port"
)

// MaxResolution — верхняя граница рабочего разрешения, задаваемого из чата.
const MaxResolution = 4096

// ErrInvalidResolution — разрешение не в формате WxH или вне допустимых границ.
var ErrInvalidResolution = errors.New("invalid resolution")

type SessionService struct {
	repo port.SessionRepository
}

func NewSessionService(repo port.SessionRepository) *SessionService {
	return &SessionService{repo: repo}
}

func (s *SessionService) Get(ctx context.Context, userID, chatID int64) (*entity.ChatSession, error) {
	return s.repo.Get(ctx, userID, chatID)
}

func (s *SessionService) setState(ctx context.Context, userID, chatID int64, state entity.SessionState) (*entity.ChatSession, error) {
	session, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	session.SetState(state)
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// BeginAnalysis переводит чат в ожидание плана этажа.
func (s *SessionService) BeginAnalysis(ctx context.Context, userID, chatID int64) (*entity.ChatSession, error) {
	return s.setState(ctx, userID, chatID, entity.StateAwaitingPlan)
}

// StartProcessing отмечает, что по чату идёт анализ изображения.
func (s *SessionService) StartProcessing(ctx context.Context, userID, chatID int64) (*entity.ChatSession, error) {
	return s.setState(ctx, userID, chatID, entity.StateProcessing)
}

func (s *SessionService) Cancel(ctx context.Context, userID, chatID int64) (*entity.ChatSession, error) {
	return s.setState(ctx, userID, chatID, entity.StateMainMenu)
}

// Finish возвращает чат в главное меню после анализа. Сессия не создаётся,
// если её нет.
func (s *SessionService) Finish(ctx context.Context, userID int64) error {
	return s.repo.UpdateState(ctx, userID, entity.StateMainMenu)
}

// SetResolution задаёт рабочее разрешение анализа для чата.
func (s *SessionService) SetResolution(ctx context.Context, userID, chatID int64, width, height int) (*entity.ChatSession, error) {
	if err := checkResolution(width, height); err != nil {
		return nil, err
	}

	session, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	session.SetResolution(width, height)
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// ParseResolution разбирает строку вида "1024x768".
func ParseResolution(s string) (width, height int, err error) {
	s = strings.ToLower(strings.TrimSpace(s))
	ws, hs, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0, fmt.Errorf("%w: expected WxH, got %q", ErrInvalidResolution, s)
	}

	width, err = strconv.Atoi(strings.TrimSpace(ws))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: width %q", ErrInvalidResolution, ws)
	}
	height, err = strconv.Atoi(strings.TrimSpace(hs))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: height %q", ErrInvalidResolution, hs)
	}

	if err := checkResolution(width, height); err != nil {
		return 0, 0, err
	}
	return width, height, nil
}

func checkResolution(width, height int) error {
	if width <= 0 || height <= 0 || width > MaxResolution || height > MaxResolution {
		return fmt.Errorf("%w: %dx%d, each side must be in 1..%d", ErrInvalidResolution, width, height, MaxResolution)
	}
	return nil
}
