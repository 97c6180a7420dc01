package ranking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/rank-tracker-api/infrastructure/repository"
	"github.com/vfg2006/rank-tracker-api/internal/domain"
	"github.com/vfg2006/rank-tracker-api/internal/metrics"
	"github.com/vfg2006/rank-tracker-api/pkg/utils"
)

// Ledger persiste posições resolvidas mantendo o histórico para tendências
type Ledger interface {
	Upsert(ctx context.Context, update domain.PositionUpdate) (*domain.PositionRecord, error)
	CompareAt(ctx context.Context, query domain.CompareQuery, current int, reference time.Time) (*domain.Comparison, error)
	Trends(ctx context.Context, record *domain.PositionRecord) error
	PruneHistory(ctx context.Context, retentionDays int) (int64, error)
}

type PositionLedger struct {
	positionRepository repository.PositionRepository
	retry              utils.RetryConfig
	locks              *keyedLocker
	now                func() time.Time
}

func NewPositionLedger(positionRepository repository.PositionRepository, retry utils.RetryConfig) *PositionLedger {
	if retry.ShouldRetry == nil {
		retry.ShouldRetry = isRetryablePersistenceError
	}

	return &PositionLedger{
		positionRepository: positionRepository,
		retry:              retry,
		locks:              newKeyedLocker(),
		now:                time.Now,
	}
}

// Upsert grava a nova posição preservando a anterior. Gravações da mesma chave
// são serializadas no processo e protegidas por updated_at entre instâncias.
func (l *PositionLedger) Upsert(ctx context.Context, update domain.PositionUpdate) (*domain.PositionRecord, error) {
	unlock := l.locks.Lock(update.Key.String())
	defer unlock()

	var saved *domain.PositionRecord
	err := l.retry.Do(ctx, "upsert de posição", func() error {
		existing, err := l.positionRepository.GetByKey(ctx, update.Key)
		if err != nil {
			return err
		}

		var expectedUpdatedAt *time.Time
		if existing != nil {
			updatedAt := existing.UpdatedAt
			expectedUpdatedAt = &updatedAt
		}

		saved, err = l.positionRepository.Save(ctx, BuildRecord(existing, update, l.now()), expectedUpdatedAt)
		return err
	})
	if err != nil {
		metrics.ObserveLedgerUpsert(metrics.OutcomeError)
		logrus.WithFields(logrus.Fields{
			"key":      update.Key.String(),
			"position": update.Position,
			"error":    err.Error(),
		}).Error("Erro ao gravar posição no ledger")
		return nil, fmt.Errorf("erro ao gravar posição: %w", err)
	}

	metrics.ObserveLedgerUpsert(metrics.OutcomeSuccess)
	return saved, nil
}

// BuildRecord monta o registro a gravar a partir do registro existente (ou nil)
func BuildRecord(existing *domain.PositionRecord, update domain.PositionUpdate, now time.Time) *domain.PositionRecord {
	record := &domain.PositionRecord{
		UserID:            update.Key.UserID,
		Keyword:           update.Key.Keyword,
		FilteredDomain:    update.Key.FilteredDomain,
		Device:            update.Key.Device,
		Location:          update.Key.Location,
		CurrentPosition:   update.Position,
		ResolvedDomain:    update.ResolvedDomain,
		Rating:            update.Rating,
		ReviewCount:       update.ReviewCount,
		SearchEngineLabel: update.SearchEngineLabel,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if existing != nil {
		previous := existing.CurrentPosition
		previousAt := existing.LastChangedAt()

		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
		record.PreviousPosition = &previous
		record.PreviousPositionAt = &previousAt
	}

	return record
}

// CompareAt compara a posição atual com o snapshot mais recente até reference.
// Sem snapshot, ou quando uma das posições é 0 (não encontrado), não há comparação.
func (l *PositionLedger) CompareAt(ctx context.Context, query domain.CompareQuery, current int, reference time.Time) (*domain.Comparison, error) {
	if current <= 0 {
		return nil, nil
	}

	snapshot, err := l.positionRepository.FindSnapshotAtOrBefore(ctx, query, reference)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar posição de referência: %w", err)
	}

	if snapshot == nil || snapshot.Position <= 0 {
		return nil, nil
	}

	comparison := domain.NewComparison(current, *snapshot)
	return &comparison, nil
}

// Trends preenche as comparações de 24h e 7 dias do registro
func (l *PositionLedger) Trends(ctx context.Context, record *domain.PositionRecord) error {
	device := record.Device
	location := record.Key().LocationValue()
	query := domain.CompareQuery{
		UserID:   record.UserID,
		Keyword:  record.Keyword,
		Domain:   record.FilteredDomain,
		Device:   &device,
		Location: &location,
	}

	now := l.now()

	comparison24h, err := l.CompareAt(ctx, query, record.CurrentPosition, now.Add(-24*time.Hour))
	if err != nil {
		return err
	}

	comparison7d, err := l.CompareAt(ctx, query, record.CurrentPosition, now.AddDate(0, 0, -7))
	if err != nil {
		return err
	}

	record.Comparison24h = comparison24h
	record.Comparison7d = comparison7d
	return nil
}

// PruneHistory remove snapshots mais antigos que a janela de retenção
func (l *PositionLedger) PruneHistory(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}

	before := l.now().AddDate(0, 0, -retentionDays)
	removed, err := l.positionRepository.PruneSnapshots(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("erro ao remover histórico de posições: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"before":  before.Format(time.DateOnly),
		"removed": removed,
	}).Info("Histórico de posições antigo removido")

	return removed, nil
}

func isRetryablePersistenceError(err error) bool {
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
