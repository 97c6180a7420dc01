package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/rank-tracker-api/internal/config"
	"github.com/vfg2006/rank-tracker-api/internal/domain"
	"github.com/vfg2006/rank-tracker-api/internal/usecases/tracking"
)

// KeywordRefreshConfig representa a configuração do agendador de atualização de palavras-chave
type KeywordRefreshConfig struct {
	CronSchedule        string
	RequestDelaySeconds int
	MaxConcurrentJobs   int
	SyncEnabled         bool
}

// KeywordRefreshService reexecuta periodicamente todas as combinações acompanhadas
type KeywordRefreshService struct {
	scheduler           *gocron.Scheduler
	config              KeywordRefreshConfig
	trackingService     tracking.TrackingService
	runCtx              context.Context
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSummary         *domain.RefreshSummary
}

func NewKeywordRefreshService(trackingService tracking.TrackingService, appConfig *config.Config) *KeywordRefreshService {
	refreshConfig := KeywordRefreshConfig{
		CronSchedule:        appConfig.KeywordRefresh.CronSchedule,
		RequestDelaySeconds: appConfig.KeywordRefresh.RequestDelaySeconds,
		MaxConcurrentJobs:   appConfig.KeywordRefresh.MaxConcurrentJobs,
		SyncEnabled:         appConfig.KeywordRefresh.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         refreshConfig.CronSchedule,
		"request_delay_seconds": refreshConfig.RequestDelaySeconds,
		"max_concurrent_jobs":   refreshConfig.MaxConcurrentJobs,
		"sync_enabled":          refreshConfig.SyncEnabled,
	}).Info("Configuração do agendador de palavras-chave carregada")

	return &KeywordRefreshService{
		scheduler:       gocron.NewScheduler(time.Local),
		config:          refreshConfig,
		trackingService: trackingService,
		runCtx:          context.Background(),
	}
}

// Start inicia o agendador
func (s *KeywordRefreshService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Atualização de palavras-chave desabilitada por configuração")
		return nil
	}

	s.runCtx = ctx

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de atualização de palavras-chave")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.refreshAllKeywords()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar atualização de palavras-chave: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de atualização de palavras-chave")
		s.scheduler.Stop()
	}()

	return nil
}

// refreshAllKeywords atualiza as posições de todas as combinações acompanhadas
func (s *KeywordRefreshService) refreshAllKeywords() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Atualização de palavras-chave já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando atualização de todas as palavras-chave acompanhadas")
	startTime := time.Now()

	summary, err := s.trackingService.RefreshAll(s.runCtx, domain.RefreshOptions{
		MaxConcurrent: s.config.MaxConcurrentJobs,
		Delay:         time.Duration(s.config.RequestDelaySeconds) * time.Second,
	})
	if err != nil {
		logrus.WithError(err).Error("Erro na atualização de palavras-chave")
	}

	s.syncMutex.Lock()
	s.lastSummary = summary
	s.lastSyncCompletedAt = time.Now()
	s.syncMutex.Unlock()

	if summary != nil {
		logrus.WithFields(logrus.Fields{
			"duration":     time.Since(startTime).String(),
			"combinations": summary.Combinations,
			"updated":      summary.Updated,
		}).Info("Atualização de palavras-chave concluída")
	}
}

// TriggerManualSync inicia manualmente uma atualização de palavras-chave
func (s *KeywordRefreshService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Atualização de palavras-chave já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando atualização manual de palavras-chave")
	go s.refreshAllKeywords()
}

// GetStatus retorna o status atual do agendador
func (s *KeywordRefreshService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_max_concurrent":    s.config.MaxConcurrentJobs,
		"sync_request_delay_s":   s.config.RequestDelaySeconds,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_summary":           s.lastSummary,
	}
}
