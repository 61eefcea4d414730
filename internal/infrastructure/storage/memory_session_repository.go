package storage

import (
	"context"
	"sync"

	"floorplan-analyzer/internal/domain/entity"
	"floorplan-analyzer/internal/domain/port"
)

// MemorySessionRepository in-memory хранилище сессий чатов
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[int64]*entity.ChatSession

	defaultWidth  int
	defaultHeight int
}

// NewMemorySessionRepository создаёт новое in-memory хранилище.
// Новые сессии получают разрешение width x height.
func NewMemorySessionRepository(width, height int) *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions:      make(map[int64]*entity.ChatSession),
		defaultWidth:  width,
		defaultHeight: height,
	}
}

// Get возвращает копию сессии по ID пользователя, создаёт новую если не найдена
func (r *MemorySessionRepository) Get(ctx context.Context, userID, chatID int64) (*entity.ChatSession, error) {
	r.mu.RLock()
	session, exists := r.sessions[userID]
	r.mu.RUnlock()

	if exists {
		cp := *session
		return &cp, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Сессию мог создать параллельный запрос
	if session, exists = r.sessions[userID]; !exists {
		session = entity.NewChatSession(userID, chatID, r.defaultWidth, r.defaultHeight)
		r.sessions[userID] = session
	}

	cp := *session
	return &cp, nil
}

// Save сохраняет сессию
func (r *MemorySessionRepository) Save(ctx context.Context, session *entity.ChatSession) error {
	cp := *session

	r.mu.Lock()
	r.sessions[session.UserID] = &cp
	r.mu.Unlock()

	return nil
}

// UpdateState обновляет состояние сессии
func (r *MemorySessionRepository) UpdateState(ctx context.Context, userID int64, state entity.SessionState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session, exists := r.sessions[userID]; exists {
		session.SetState(state)
	}

	return nil
}

// Проверка реализации интерфейса
var _ port.SessionRepository = (*MemorySessionRepository)(nil)
