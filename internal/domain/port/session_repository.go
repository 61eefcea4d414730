package port

import (
	"context"

	"floorplan-analyzer/internal/domain/entity"
)

// SessionRepository интерфейс хранилища сессий чатов
type SessionRepository interface {
	// Get возвращает сессию по ID пользователя, создаёт новую если не найдена
	Get(ctx context.Context, userID, chatID int64) (*entity.ChatSession, error)

	// Save сохраняет сессию
	Save(ctx context.Context, session *entity.ChatSession) error

	// UpdateState обновляет состояние сессии
	UpdateState(ctx context.Context, userID int64, state entity.SessionState) error
}
