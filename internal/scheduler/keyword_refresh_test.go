package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/rank-tracker-api/internal/config"
	"github.com/vfg2006/rank-tracker-api/internal/domain"
	trackingmocks "github.com/vfg2006/rank-tracker-api/internal/usecases/tracking/mocks"
	"go.uber.org/mock/gomock"
)

func newKeywordRefreshConfig(enabled bool) *config.Config {
	return &config.Config{
		KeywordRefresh: config.KeywordRefresh{
			CronSchedule:        "0 3 * * *",
			RequestDelaySeconds: 2,
			MaxConcurrentJobs:   4,
			Enabled:             enabled,
		},
	}
}

func TestKeywordRefreshService_refreshAllKeywords(t *testing.T) {
	tests := []struct {
		name     string
		summary  *domain.RefreshSummary
		err      error
		validate func(t *testing.T, status map[string]any)
	}{
		{
			name:    "Atualização concluída guarda o resumo",
			summary: &domain.RefreshSummary{Combinations: 3, Found: 2, NotFound: 1, Updated: 4},
			validate: func(t *testing.T, status map[string]any) {
				summary, ok := status["last_summary"].(*domain.RefreshSummary)
				require.True(t, ok)
				assert.Equal(t, 4, summary.Updated)
			},
		},
		{
			name: "Falha ao listar combinações não interrompe o agendador",
			err:  errors.New("db down"),
			validate: func(t *testing.T, status map[string]any) {
				assert.Nil(t, status["last_summary"])
				assert.False(t, status["last_sync_completed_at"].(time.Time).IsZero())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTracking := trackingmocks.NewMockTrackingService(ctrl)
			mockTracking.EXPECT().
				RefreshAll(gomock.Any(), domain.RefreshOptions{MaxConcurrent: 4, Delay: 2 * time.Second}).
				Return(tt.summary, tt.err)

			service := NewKeywordRefreshService(mockTracking, newKeywordRefreshConfig(true))
			service.refreshAllKeywords()

			status := service.GetStatus()
			assert.False(t, status["sync_running"].(bool))
			tt.validate(t, status)
		})
	}
}

func TestKeywordRefreshService_SkipsWhenRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// sem expectativas: RefreshAll não pode ser chamado
	mockTracking := trackingmocks.NewMockTrackingService(ctrl)

	service := NewKeywordRefreshService(mockTracking, newKeywordRefreshConfig(true))
	service.syncRunning = true

	service.refreshAllKeywords()
	service.TriggerManualSync()

	assert.True(t, service.GetStatus()["sync_running"].(bool))
}

func TestKeywordRefreshService_StartDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewKeywordRefreshService(trackingmocks.NewMockTrackingService(ctrl), newKeywordRefreshConfig(false))

	assert.NoError(t, service.Start(context.Background()))
	assert.Equal(t, false, service.GetStatus()["sync_enabled"])
}

func TestKeywordRefreshService_StartInvalidCron(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := newKeywordRefreshConfig(true)
	cfg.KeywordRefresh.CronSchedule = "não é cron"

	service := NewKeywordRefreshService(trackingmocks.NewMockTrackingService(ctrl), cfg)

	assert.Error(t, service.Start(context.Background()))
}
