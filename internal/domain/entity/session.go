package entity

// SessionState состояние чата в диалоге
type SessionState string

const (
	StateMainMenu     SessionState = "main_menu"     // В главном меню
	StateAwaitingPlan SessionState = "awaiting_plan" // Ожидание плана этажа
	StateProcessing   SessionState = "processing"    // Анализ изображения
)

// ChatSession представляет чат с ботом
type ChatSession struct {
	UserID int64        // Telegram User ID
	ChatID int64        // Telegram Chat ID
	State  SessionState // Текущее состояние диалога
	Width  int          // рабочая ширина анализа
	Height int          // рабочая высота анализа
}

// NewChatSession создаёт сессию с начальным состоянием и разрешением по умолчанию
func NewChatSession(userID, chatID int64, width, height int) *ChatSession {
	return &ChatSession{
		UserID: userID,
		ChatID: chatID,
		State:  StateMainMenu,
		Width:  width,
		Height: height,
	}
}

// SetState обновляет состояние диалога
func (s *ChatSession) SetState(state SessionState) {
	s.State = state
}

// SetResolution задаёт рабочее разрешение анализа
func (s *ChatSession) SetResolution(width, height int) {
	s.Width = width
	s.Height = height
}
