package container

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"floorplan-analyzer/internal/domain/entity"
	"floorplan-analyzer/internal/infrastructure/storage"
	"floorplan-analyzer/internal/infrastructure/vision"
)

func TestNew_WiresServices(t *testing.T) {
	analyzer, err := vision.NewAnalyzer(vision.EngineNative, entity.DefaultAnalysisParams())
	require.NoError(t, err)

	c := New(storage.NewMemorySessionRepository(640, 480), analyzer, 0, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	require.Equal(t, vision.EngineNative, c.AnalysisService.Engine())

	session, err := c.SessionService.BeginAnalysis(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingPlan, session.State)
	require.Equal(t, 640, session.Width)
}
