package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/rank-tracker-api/infrastructure/repository"
	"github.com/vfg2006/rank-tracker-api/internal/config"
	"github.com/vfg2006/rank-tracker-api/internal/metrics"
)

// CreditReconciliationService confere o saldo de créditos de scan de cada usuário
// contra as compras e as campanhas pagas com crédito
type CreditReconciliationService struct {
	scheduler        *gocron.Scheduler
	cronSchedule     string
	enabled          bool
	scanCampaignRepo repository.ScanCampaignRepository
	runCtx           context.Context
	running          bool
	mutex            sync.Mutex
	lastRunAt        time.Time
	lastMismatches   int
}

func NewCreditReconciliationService(scanCampaignRepo repository.ScanCampaignRepository, appConfig *config.Config) *CreditReconciliationService {
	return &CreditReconciliationService{
		scheduler:        gocron.NewScheduler(time.Local),
		cronSchedule:     appConfig.CreditReconciliation.CronSchedule,
		enabled:          appConfig.CreditReconciliation.Enabled,
		scanCampaignRepo: scanCampaignRepo,
		runCtx:           context.Background(),
	}
}

func (s *CreditReconciliationService) Start(ctx context.Context) error {
	if !s.enabled {
		logrus.Info("Reconciliação de créditos desabilitada por configuração")
		return nil
	}

	s.runCtx = ctx

	_, err := s.scheduler.Cron(s.cronSchedule).Do(func() {
		s.run()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar reconciliação de créditos: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de reconciliação de créditos")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *CreditReconciliationService) run() {
	s.mutex.Lock()
	if s.running {
		s.mutex.Unlock()
		logrus.Info("Reconciliação de créditos já em andamento, ignorando")
		return
	}
	s.running = true
	s.mutex.Unlock()

	defer func() {
		s.mutex.Lock()
		s.running = false
		s.mutex.Unlock()
	}()

	if _, err := s.Reconcile(s.runCtx); err != nil {
		logrus.WithError(err).Error("Erro na reconciliação de créditos de scan")
	}
}

// Reconcile devolve quantos usuários têm saldo divergente e publica o total como métrica
func (s *CreditReconciliationService) Reconcile(ctx context.Context) (int, error) {
	rows, err := s.scanCampaignRepo.ListReconciliation(ctx)
	if err != nil {
		return 0, err
	}

	mismatches := 0
	for _, row := range rows {
		if row.Consistent() {
			continue
		}
		mismatches++
		logrus.WithFields(logrus.Fields{
			"user_id":           row.UserID,
			"credits_purchased": row.CreditsPurchased,
			"credit_campaigns":  row.CreditCampaigns,
			"credit_balance":    row.CreditBalance,
			"expected_balance":  row.Expected(),
		}).Warn("Saldo de créditos de scan divergente")
	}

	metrics.SetCreditMismatches(mismatches)

	s.mutex.Lock()
	s.lastRunAt = time.Now()
	s.lastMismatches = mismatches
	s.mutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"users":      len(rows),
		"mismatches": mismatches,
	}).Info("Reconciliação de créditos de scan concluída")

	return mismatches, nil
}

func (s *CreditReconciliationService) TriggerManualSync() {
	logrus.Info("Iniciando reconciliação manual de créditos")
	go s.run()
}

func (s *CreditReconciliationService) GetStatus() map[string]any {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return map[string]any{
		"enabled":         s.enabled,
		"cron":            s.cronSchedule,
		"running":         s.running,
		"last_run_at":     s.lastRunAt,
		"last_mismatches": s.lastMismatches,
	}
}
