package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "floorplan-analyzer/internal/application"
	"floorplan-analyzer/internal/container"
	"floorplan-analyzer/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я анализирую планы этажей склада.

📐 Отправьте мне план (фото или файл-изображение), и я найду периметр, свободные области и ячейки стеллажей.

📋 Команды:
/analyze — начать анализ плана
/size WxH — рабочее разрешение анализа (например, /size 1024x768)
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте /analyze
2️⃣ Пришлите план этажа фото или файлом
3️⃣ Получите сводку и план с подсветкой:
   🟥 периметр, 🟦 области, 🟩 ячейки стеллажей

💡 Рекомендации:
• Светлый фон, тёмные стены
• План без перспективных искажений
• Разрешение анализа задаётся командой /size

📋 Команды:
/analyze — начать анализ
/size WxH — рабочее разрешение
/cancel — отменить операцию`

	msgCancelled       = "❌ Операция отменена. Отправьте /analyze для нового анализа."
	msgSendPlan        = "📐 Пожалуйста, отправьте план этажа изображением."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Анализирую план..."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте другой файл."
	msgSizeUsage       = "📏 Укажите разрешение в формате WxH, например: /size 1024x768"
)

// Bot представляет Telegram-бота
type Bot struct {
	api      *tgbotapi.BotAPI
	sessions *app.SessionService
	analysis *app.AnalysisService
	client   *http.Client
	logger   *slog.Logger
}

// NewBot создаёт нового бота
func NewBot(token string, services *container.Container, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("telegram bot authorized", "account", api.Self.UserName)

	return &Bot{
		api:      api,
		sessions: services.SessionService,
		analysis: services.AnalysisService,
		client:   http.DefaultClient,
		logger:   logger,
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	session, err := b.sessions.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		b.logger.Error("get session", "user_id", msg.From.ID, "error", err)
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg, session)
		return
	}

	// Обработка плана: фото или документ-изображение
	if fileID, ok := imageFileID(msg); ok {
		b.handlePlan(ctx, msg, session, fileID)
		return
	}

	// Текстовое сообщение (не команда)
	b.sendMessage(msg.Chat.ID, msgSendPlan)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, session *entity.ChatSession) {
	userID, chatID := session.UserID, msg.Chat.ID

	switch msg.Command() {
	case "start":
		b.logSession(b.sessions.Cancel(ctx, userID, chatID))
		b.sendMessage(chatID, msgStart)

	case "help":
		b.sendMessage(chatID, msgHelp)

	case "analyze":
		b.logSession(b.sessions.BeginAnalysis(ctx, userID, chatID))
		b.sendMessage(chatID, awaitingPlanText(session.Width, session.Height))

	case "size":
		width, height, err := app.ParseResolution(msg.CommandArguments())
		if err != nil {
			b.sendMessage(chatID, msgSizeUsage)
			return
		}
		if _, err := b.sessions.SetResolution(ctx, userID, chatID, width, height); err != nil {
			b.logger.Error("set resolution", "user_id", userID, "error", err)
			b.sendMessage(chatID, msgSizeUsage)
			return
		}
		b.sendMessage(chatID, fmt.Sprintf("📏 Разрешение анализа: %dx%d", width, height))

	case "cancel":
		b.logSession(b.sessions.Cancel(ctx, userID, chatID))
		b.sendMessage(chatID, msgCancelled)

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}
}

// handlePlan скачивает план, анализирует и отправляет результат
func (b *Bot) handlePlan(ctx context.Context, msg *tgbotapi.Message, session *entity.ChatSession, fileID string) {
	userID, chatID := session.UserID, msg.Chat.ID

	// Обновления обрабатываются по одному, поэтому состояние "обработка"
	// видно только на время этого вызова.
	b.logSession(b.sessions.StartProcessing(ctx, userID, chatID))
	defer func() {
		if err := b.sessions.Finish(ctx, userID); err != nil {
			b.logger.Error("finish session", "user_id", userID, "error", err)
		}
	}()

	b.sendMessage(chatID, msgProcessing)

	imageData, err := b.downloadFile(ctx, fileID)
	if err != nil {
		b.logger.Error("download plan", "user_id", userID, "error", err)
		b.sendMessage(chatID, msgProcessingError)
		return
	}

	out, err := b.analysis.AnalyzeAndHighlight(ctx, imageData, session.Width, session.Height)
	if err != nil {
		b.logger.Error("analyze plan", "user_id", userID, "error", err)
		b.sendMessage(chatID, processingErrorText(err))
		return
	}
	b.logger.Info("plan analyzed", "user_id", userID, "summary", out.Result.Summary())

	report := formatReport(out.Result)
	if len(out.Highlighted) == 0 {
		b.sendMessage(chatID, report)
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "floorplan.png", Bytes: out.Highlighted})
	photo.Caption = report
	if _, err := b.api.Send(photo); err != nil {
		b.logger.Error("send photo", "chat_id", chatID, "error", err)
		b.sendMessage(chatID, report)
	}
}

// logSession пишет в лог ошибку сохранения сессии; ответ пользователю
// отправляется в любом случае.
func (b *Bot) logSession(session *entity.ChatSession, err error) {
	if err != nil {
		b.logger.Error("save session", "error", err)
		return
	}
	b.logger.Debug("session state", "user_id", session.UserID, "state", session.State)
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("send message", "chat_id", chatID, "error", err)
	}
}

// imageFileID возвращает ID файла плана: самое крупное фото или документ
// с MIME-типом изображения.
func imageFileID(msg *tgbotapi.Message) (string, bool) {
	if len(msg.Photo) > 0 {
		return msg.Photo[len(msg.Photo)-1].FileID, true
	}
	if msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/") {
		return msg.Document.FileID, true
	}
	return "", false
}

func awaitingPlanText(width, height int) string {
	return fmt.Sprintf("📐 Отправьте план этажа. Анализ в разрешении %dx%d (изменить: /size WxH).", width, height)
}

// formatReport — текстовая сводка результата анализа.
func formatReport(res *entity.AnalysisResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📐 План %dx%d\n", res.Dimensions.Width, res.Dimensions.Height)
	fmt.Fprintf(&sb, "🟥 Отрезков периметра: %d\n", len(res.Edges))
	fmt.Fprintf(&sb, "🟦 Областей: %d (основных: %d, под стеллажи: %d)\n", len(res.Regions), len(res.MainAreas()), res.SuitableRegions())
	fmt.Fprintf(&sb, "🟩 Ячеек стеллажей: %d", len(res.Racks))
	return sb.String()
}

// processingErrorText подбирает сообщение об ошибке анализа.
func processingErrorText(err error) string {
	var decodeErr *entity.DecodeError
	if errors.As(err, &decodeErr) {
		return "⚠️ Не удалось прочитать изображение. Пришлите PNG или JPEG."
	}
	return msgProcessingError
}
