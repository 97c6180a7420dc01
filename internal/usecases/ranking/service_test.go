package ranking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/rank-tracker-api/infrastructure/repository"
	"github.com/vfg2006/rank-tracker-api/infrastructure/repository/mocks"
	"github.com/vfg2006/rank-tracker-api/internal/domain"
	"github.com/vfg2006/rank-tracker-api/pkg/utils"
	"go.uber.org/mock/gomock"
)

func newTestLedger(repo repository.PositionRepository, now time.Time) *PositionLedger {
	ledger := NewPositionLedger(repo, utils.RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond})
	ledger.now = func() time.Time { return now }
	return ledger
}

func TestPositionLedger_Upsert_PreservaPosicaoAnterior(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockPositionRepository(ctrl)

	first := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	second := first.Add(6 * time.Hour)

	key := domain.PositionKey{UserID: 7, Keyword: "dentista madrid", FilteredDomain: "clinicasol.es", Device: domain.DeviceDesktop}

	var stored *domain.PositionRecord

	// primeira gravação: registro inexistente
	repo.EXPECT().GetByKey(gomock.Any(), key).Return(nil, nil)
	repo.EXPECT().
		Save(gomock.Any(), gomock.Any(), (*time.Time)(nil)).
		DoAndReturn(func(_ context.Context, record *domain.PositionRecord, _ *time.Time) (*domain.PositionRecord, error) {
			saved := *record
			saved.ID = 1
			stored = &saved
			return &saved, nil
		})

	ledger := newTestLedger(repo, first)
	record, err := ledger.Upsert(context.Background(), domain.PositionUpdate{Key: key, Position: 5, ResolvedDomain: "clinicasol.es"})
	require.NoError(t, err)
	assert.Equal(t, 5, record.CurrentPosition)
	assert.Nil(t, record.PreviousPosition)

	// segunda gravação: posição 3 preserva a 5
	repo.EXPECT().GetByKey(gomock.Any(), key).DoAndReturn(func(context.Context, domain.PositionKey) (*domain.PositionRecord, error) {
		return stored, nil
	})
	repo.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record *domain.PositionRecord, expected *time.Time) (*domain.PositionRecord, error) {
			require.NotNil(t, expected)
			assert.True(t, expected.Equal(first))
			return record, nil
		})

	ledger.now = func() time.Time { return second }
	record, err = ledger.Upsert(context.Background(), domain.PositionUpdate{Key: key, Position: 3, ResolvedDomain: "clinicasol.es"})
	require.NoError(t, err)

	assert.Equal(t, 3, record.CurrentPosition)
	require.NotNil(t, record.PreviousPosition)
	assert.Equal(t, 5, *record.PreviousPosition)
	require.NotNil(t, record.PreviousPositionAt)
	assert.True(t, record.PreviousPositionAt.Equal(first))
	assert.Equal(t, int64(1), record.ID)
	assert.True(t, record.CreatedAt.Equal(first))
	assert.True(t, record.UpdatedAt.Equal(second))
}

func TestPositionLedger_Upsert_RepeteEmConflito(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockPositionRepository(ctrl)
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	key := domain.PositionKey{UserID: 1, Keyword: "seo", FilteredDomain: "example.com", Device: domain.DeviceMobile}

	gomock.InOrder(
		repo.EXPECT().GetByKey(gomock.Any(), key).Return(nil, nil),
		repo.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, repository.ErrConcurrentUpdate),
		repo.EXPECT().GetByKey(gomock.Any(), key).Return(&domain.PositionRecord{
			ID: 9, UserID: 1, Keyword: "seo", FilteredDomain: "example.com", Device: domain.DeviceMobile,
			CurrentPosition: 12, CreatedAt: now.Add(-time.Minute), UpdatedAt: now.Add(-time.Minute),
		}, nil),
		repo.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, record *domain.PositionRecord, _ *time.Time) (*domain.PositionRecord, error) {
				return record, nil
			}),
	)

	record, err := newTestLedger(repo, now).Upsert(context.Background(), domain.PositionUpdate{Key: key, Position: 4})
	require.NoError(t, err)
	require.NotNil(t, record.PreviousPosition)
	assert.Equal(t, 12, *record.PreviousPosition)
}

func TestPositionLedger_Upsert_PropagaFalhaPersistente(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockPositionRepository(ctrl)
	dbErr := errors.New("conexão recusada")

	repo.EXPECT().GetByKey(gomock.Any(), gomock.Any()).Return(nil, dbErr).Times(3)

	_, err := newTestLedger(repo, time.Now()).Upsert(context.Background(), domain.PositionUpdate{
		Key: domain.PositionKey{UserID: 1, Keyword: "seo", FilteredDomain: "example.com", Device: domain.DeviceDesktop},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
}

func TestBuildRecord_UsaCreatedAtQuandoNuncaAtualizado(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := created.Add(48 * time.Hour)

	existing := &domain.PositionRecord{ID: 3, CurrentPosition: 0, CreatedAt: created}
	record := BuildRecord(existing, domain.PositionUpdate{Position: 8}, now)

	require.NotNil(t, record.PreviousPosition)
	assert.Equal(t, 0, *record.PreviousPosition)
	assert.True(t, record.PreviousPositionAt.Equal(created))
	assert.True(t, record.CreatedAt.Equal(created))
	assert.True(t, record.UpdatedAt.Equal(now))
}

func TestPositionLedger_CompareAt(t *testing.T) {
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	reference := now.Add(-24 * time.Hour)
	query := domain.CompareQuery{UserID: 1, Keyword: "seo", Domain: "example.com"}

	tests := []struct {
		name     string
		current  int
		setup    func(repo *mocks.MockPositionRepository)
		expected *domain.Comparison
	}{
		{
			name:     "Posição atual não encontrada não consulta histórico",
			current:  0,
			setup:    func(*mocks.MockPositionRepository) {},
			expected: nil,
		},
		{
			name:    "Sem snapshot anterior",
			current: 4,
			setup: func(repo *mocks.MockPositionRepository) {
				repo.EXPECT().FindSnapshotAtOrBefore(gomock.Any(), query, reference).Return(nil, nil)
			},
			expected: nil,
		},
		{
			name:    "Snapshot de referência não encontrado",
			current: 4,
			setup: func(repo *mocks.MockPositionRepository) {
				repo.EXPECT().FindSnapshotAtOrBefore(gomock.Any(), query, reference).
					Return(&domain.PositionSnapshot{Position: 0, RecordedAt: reference}, nil)
			},
			expected: nil,
		},
		{
			name:    "Melhora de 6 para 4",
			current: 4,
			setup: func(repo *mocks.MockPositionRepository) {
				repo.EXPECT().FindSnapshotAtOrBefore(gomock.Any(), query, reference).
					Return(&domain.PositionSnapshot{Position: 6, RecordedAt: reference.Add(-time.Hour)}, nil)
			},
			expected: &domain.Comparison{Diff: -2, Direction: domain.DirectionImproved, ReferencePosition: 6, ReferenceAt: reference.Add(-time.Hour)},
		},
		{
			name:    "Piora de 2 para 9",
			current: 9,
			setup: func(repo *mocks.MockPositionRepository) {
				repo.EXPECT().FindSnapshotAtOrBefore(gomock.Any(), query, reference).
					Return(&domain.PositionSnapshot{Position: 2, RecordedAt: reference}, nil)
			},
			expected: &domain.Comparison{Diff: 7, Direction: domain.DirectionWorsened, ReferencePosition: 2, ReferenceAt: reference},
		},
		{
			name:    "Sem alteração",
			current: 3,
			setup: func(repo *mocks.MockPositionRepository) {
				repo.EXPECT().FindSnapshotAtOrBefore(gomock.Any(), query, reference).
					Return(&domain.PositionSnapshot{Position: 3, RecordedAt: reference}, nil)
			},
			expected: &domain.Comparison{Diff: 0, Direction: domain.DirectionUnchanged, ReferencePosition: 3, ReferenceAt: reference},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockPositionRepository(ctrl)
			tt.setup(repo)

			comparison, err := newTestLedger(repo, now).CompareAt(context.Background(), query, tt.current, reference)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, comparison)
		})
	}
}

func TestPositionLedger_Trends(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockPositionRepository(ctrl)
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	device := domain.DeviceMobile
	noLocation := ""
	query := domain.CompareQuery{UserID: 2, Keyword: "seo", Domain: "example.com", Device: &device, Location: &noLocation}

	repo.EXPECT().FindSnapshotAtOrBefore(gomock.Any(), query, now.Add(-24*time.Hour)).
		Return(&domain.PositionSnapshot{Position: 5, RecordedAt: now.Add(-30 * time.Hour)}, nil)
	repo.EXPECT().FindSnapshotAtOrBefore(gomock.Any(), query, now.AddDate(0, 0, -7)).
		Return(nil, nil)

	record := &domain.PositionRecord{UserID: 2, Keyword: "seo", FilteredDomain: "example.com", Device: device, CurrentPosition: 2}
	require.NoError(t, newTestLedger(repo, now).Trends(context.Background(), record))

	require.NotNil(t, record.Comparison24h)
	assert.Equal(t, -3, record.Comparison24h.Diff)
	assert.Equal(t, domain.DirectionImproved, record.Comparison24h.Direction)
	assert.Nil(t, record.Comparison7d)
}

func TestPositionLedger_Trends_SeparaLocalizacoes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockPositionRepository(ctrl)
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

	snapshots := map[string]int{"Murcia": 8, "Madrid": 1}
	repo.EXPECT().FindSnapshotAtOrBefore(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, query domain.CompareQuery, at time.Time) (*domain.PositionSnapshot, error) {
			require.NotNil(t, query.Location)
			require.NotNil(t, query.Device)
			assert.Equal(t, domain.DeviceGoogleLocal, *query.Device)
			position, ok := snapshots[*query.Location]
			require.True(t, ok, "localização inesperada %q", *query.Location)
			return &domain.PositionSnapshot{Position: position, RecordedAt: at.Add(-time.Hour)}, nil
		}).Times(4)

	ledger := newTestLedger(repo, now)
	murciaLocation, madridLocation := "Murcia", "Madrid"

	murcia := &domain.PositionRecord{UserID: 2, Keyword: "dentista", FilteredDomain: "example.com", Device: domain.DeviceGoogleLocal, Location: &murciaLocation, CurrentPosition: 4}
	madrid := &domain.PositionRecord{UserID: 2, Keyword: "dentista", FilteredDomain: "example.com", Device: domain.DeviceGoogleLocal, Location: &madridLocation, CurrentPosition: 4}

	require.NoError(t, ledger.Trends(context.Background(), murcia))
	require.NoError(t, ledger.Trends(context.Background(), madrid))

	require.NotNil(t, murcia.Comparison24h)
	assert.Equal(t, domain.DirectionImproved, murcia.Comparison24h.Direction)
	assert.Equal(t, 8, murcia.Comparison24h.ReferencePosition)

	require.NotNil(t, madrid.Comparison24h)
	assert.Equal(t, domain.DirectionWorsened, madrid.Comparison24h.Direction)
	assert.Equal(t, 1, madrid.Comparison24h.ReferencePosition)
}

func TestPositionLedger_PruneHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockPositionRepository(ctrl)
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

	repo.EXPECT().PruneSnapshots(gomock.Any(), now.AddDate(0, 0, -90)).Return(int64(42), nil)

	removed, err := newTestLedger(repo, now).PruneHistory(context.Background(), 90)
	require.NoError(t, err)
	assert.Equal(t, int64(42), removed)

	removed, err = newTestLedger(repo, now).PruneHistory(context.Background(), 0)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestKeyedLocker_SerializaMesmaChave(t *testing.T) {
	locker := newKeyedLocker()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		maxSeen int
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locker.Lock("mesma-chave")
			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
			unlock()
		}()
	}

	wg.Wait()
	assert.Equal(t, 1, maxSeen)
	assert.Empty(t, locker.locks)
}
