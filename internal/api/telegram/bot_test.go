package telegram

import (
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"

	"floorplan-analyzer/internal/domain/entity"
)

func TestImageFileID(t *testing.T) {
	tests := []struct {
		name   string
		msg    *tgbotapi.Message
		wantID string
		wantOK bool
	}{
		{
			name: "largest photo",
			msg: &tgbotapi.Message{Photo: []tgbotapi.PhotoSize{
				{FileID: "small", Width: 90},
				{FileID: "large", Width: 1280},
			}},
			wantID: "large",
			wantOK: true,
		},
		{
			name:   "image document",
			msg:    &tgbotapi.Message{Document: &tgbotapi.Document{FileID: "doc", MimeType: "image/png"}},
			wantID: "doc",
			wantOK: true,
		},
		{
			name: "pdf document",
			msg:  &tgbotapi.Message{Document: &tgbotapi.Document{FileID: "pdf", MimeType: "application/pdf"}},
		},
		{
			name: "text",
			msg:  &tgbotapi.Message{Text: "hello"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := imageFileID(tt.msg)
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.wantID, id)
		})
	}
}

func TestFormatReport(t *testing.T) {
	res := entity.NewAnalysisResult(1024, 768,
		[]entity.Segment{{Kind: entity.SegmentPerimeter}, {Kind: entity.SegmentPerimeter}},
		nil,
		[]entity.Region{
			{ID: "contour_0", SuitableForRacks: true, Type: entity.RegionMainArea},
			{ID: "contour_1", SuitableForRacks: true, Type: entity.RegionStorageArea},
			{ID: "contour_2", Type: entity.RegionStorageArea},
		},
		[]entity.RackCell{{ID: "rack_cell_4"}},
	)

	require.Equal(t, "📐 План 1024x768\n"+
		"🟥 Отрезков периметра: 2\n"+
		"🟦 Областей: 3 (основных: 1, под стеллажи: 2)\n"+
		"🟩 Ячеек стеллажей: 1", formatReport(res))
}

func TestProcessingErrorText(t *testing.T) {
	require.Contains(t, processingErrorText(&entity.DecodeError{Err: errors.New("bad")}), "прочитать")
	require.Equal(t, msgProcessingError, processingErrorText(errors.New("other")))
}

func TestAwaitingPlanText(t *testing.T) {
	require.Contains(t, awaitingPlanText(800, 600), "800x600")
}
