package tracking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mapsdomain "github.com/vfg2006/rank-tracker-api/infrastructure/integrator/googlemaps/domain"
	repomocks "github.com/vfg2006/rank-tracker-api/infrastructure/repository/mocks"
	"github.com/vfg2006/rank-tracker-api/internal/config"
	"github.com/vfg2006/rank-tracker-api/internal/domain"
	"github.com/vfg2006/rank-tracker-api/internal/usecases/quota"
	quotamocks "github.com/vfg2006/rank-tracker-api/internal/usecases/quota/mocks"
	rankingmocks "github.com/vfg2006/rank-tracker-api/internal/usecases/ranking/mocks"
	resolvingmocks "github.com/vfg2006/rank-tracker-api/internal/usecases/resolving/mocks"
	"github.com/vfg2006/rank-tracker-api/internal/usecases/tracking/mocks"
	"github.com/vfg2006/rank-tracker-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

type testDeps struct {
	resolver  *resolvingmocks.MockResolver
	ledger    *rankingmocks.MockLedger
	guard     *quotamocks.MockGuard
	maps      *mocks.MockMapsSearcher
	geocoder  *mocks.MockGeocoder
	positions *repomocks.MockPositionRepository
}

func newTestService(ctrl *gomock.Controller) (TrackingService, testDeps) {
	deps := testDeps{
		resolver:  resolvingmocks.NewMockResolver(ctrl),
		ledger:    rankingmocks.NewMockLedger(ctrl),
		guard:     quotamocks.NewMockGuard(ctrl),
		maps:      mocks.NewMockMapsSearcher(ctrl),
		geocoder:  mocks.NewMockGeocoder(ctrl),
		positions: repomocks.NewMockPositionRepository(ctrl),
	}

	cfg := &config.Config{
		Tracking: config.Tracking{
			MaxConcurrentUnits:    2,
			SnapshotRetentionDays: 90,
		},
	}

	service := NewService(deps.resolver, deps.ledger, deps.guard, deps.maps, deps.geocoder, deps.positions, cfg)
	return service, deps
}

func allowed(requested int) domain.QuotaDecision {
	return domain.QuotaDecision{Allowed: true, Used: 1, Limit: 10, Remaining: 9 - requested}
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func intPtr(i int) *int { return &i }

func TestParseKeywords(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{name: "Vírgulas e quebras de linha", raw: "seo murcia, abogados\nclinica dental", expected: []string{"seo murcia", "abogados", "clinica dental"}},
		{name: "Descarta vazias", raw: " ,\n\n, seo ,", expected: []string{"seo"}},
		{name: "Descarta repetidas", raw: "seo,seo\nseo", expected: []string{"seo"}},
		{name: "Somente separadores", raw: ",\n,", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseKeywords(tt.raw))
		})
	}
}

func TestParseDevices(t *testing.T) {
	devices, err := ParseDevices(nil)
	require.NoError(t, err)
	assert.Equal(t, []domain.Device{domain.DeviceDesktop}, devices)

	devices, err = ParseDevices([]string{"mobile", "google_local", "mobile"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Device{domain.DeviceMobile, domain.DeviceGoogleLocal}, devices)

	_, err = ParseDevices([]string{"tablet"})
	assert.ErrorIs(t, err, ErrInvalidDevice)
}

func TestSearchEngineLabel(t *testing.T) {
	assert.Equal(t, "google", SearchEngineLabel(domain.DeviceDesktop, ""))
	assert.Equal(t, "bing", SearchEngineLabel(domain.DeviceMobile, "bing"))
	assert.Equal(t, "google_local", SearchEngineLabel(domain.DeviceGoogleLocal, "bing"))
	assert.Equal(t, "google_maps", SearchEngineLabel(domain.DeviceGoogleMaps, ""))
}

func TestFormatLL(t *testing.T) {
	assert.Equal(t, "@37.98,-1.13,14z", FormatLL(37.98, -1.13))
	assert.Equal(t, "@40,-3,14z", FormatLL(40, -3))
}

func TestService_Search_Validation(t *testing.T) {
	tests := []struct {
		name        string
		request     domain.SearchRequest
		expectedErr error
		code        string
	}{
		{name: "Sem palavras-chave", request: domain.SearchRequest{Keywords: " , ", Domain: "example.com"}, expectedErr: ErrKeywordsRequired, code: apiErrors.ErrMissingRequiredData},
		{name: "Sem domínio", request: domain.SearchRequest{Keywords: "seo"}, expectedErr: ErrDomainRequired, code: apiErrors.ErrMissingRequiredData},
		{name: "Domínio inválido", request: domain.SearchRequest{Keywords: "seo", Domain: "exa mple.com"}, expectedErr: ErrInvalidDomain, code: apiErrors.ErrInvalidFormat},
		{name: "Dispositivo inválido", request: domain.SearchRequest{Keywords: "seo", Domain: "example.com", Devices: []string{"tv"}}, expectedErr: ErrInvalidDevice, code: apiErrors.ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, _ := newTestService(ctrl)

			response, err := service.Search(context.Background(), 1, tt.request)

			assert.Nil(t, response)
			assert.ErrorIs(t, err, tt.expectedErr)

			var trackingErr *TrackingError
			require.ErrorAs(t, err, &trackingErr)
			assert.Equal(t, tt.code, trackingErr.Code)
		})
	}
}

func TestService_Search_QuotaDenied(t *testing.T) {
	tests := []struct {
		name     string
		decision domain.QuotaDecision
		code     string
	}{
		{
			name:     "Limite atingido",
			decision: domain.QuotaDecision{Allowed: false, Used: 9, Limit: 10, Remaining: 1, Reason: domain.QuotaReasonLimitReached},
			code:     apiErrors.ErrKeywordLimitReached,
		},
		{
			name:     "Plano sem acesso",
			decision: domain.QuotaDecision{Allowed: false, Reason: domain.QuotaReasonPlanWithoutAccess},
			code:     apiErrors.ErrPlanWithoutAccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, deps := newTestService(ctrl)

			// duas palavras-chave em dois dispositivos pedem quatro combinações
			deps.guard.EXPECT().CheckKeywords(gomock.Any(), 7, 4).Return(tt.decision, nil)

			_, err := service.Search(context.Background(), 7, domain.SearchRequest{
				Keywords: "seo, sem",
				Domain:   "example.com",
				Devices:  []string{"desktop", "mobile"},
			})

			assert.ErrorIs(t, err, ErrQuotaDenied)

			var trackingErr *TrackingError
			require.ErrorAs(t, err, &trackingErr)
			assert.Equal(t, tt.code, trackingErr.Code)
			require.NotNil(t, trackingErr.Quota)
			assert.Equal(t, tt.decision, *trackingErr.Quota)
		})
	}
}

func TestService_Search_FoundAndNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, deps := newTestService(ctrl)

	deps.guard.EXPECT().CheckKeywords(gomock.Any(), 1, 2).Return(allowed(2), nil)

	deps.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, query domain.RankQuery) (*domain.Resolution, error) {
			assert.Equal(t, "example.com", query.TargetDomain)
			assert.Equal(t, domain.DeviceDesktop, query.Device)
			assert.Equal(t, "Murcia", *query.Location)

			if query.Keyword == "seo" {
				return &domain.Resolution{Found: true, Position: 3, ResolvedDomain: "example.com"}, nil
			}
			return &domain.Resolution{Found: false}, nil
		}).Times(2)

	record := &domain.PositionRecord{ID: 10, Keyword: "seo", CurrentPosition: 3}
	deps.ledger.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, update domain.PositionUpdate) (*domain.PositionRecord, error) {
			assert.Equal(t, "seo", update.Key.Keyword)
			assert.Equal(t, "example.com", update.Key.FilteredDomain)
			assert.Equal(t, 3, update.Position)
			assert.Equal(t, "google", update.SearchEngineLabel)
			return record, nil
		})
	deps.ledger.EXPECT().Trends(gomock.Any(), record).Return(nil)

	response, err := service.Search(context.Background(), 1, domain.SearchRequest{
		Keywords: "seo\nabogados",
		Domain:   "https://www.example.com/",
		Location: strPtr("  Murcia "),
	})

	require.NoError(t, err)
	require.Len(t, response.Results, 2)
	assert.Empty(t, response.Failures)
	assert.Equal(t, "seo", response.Results[0].Keyword)
	assert.Equal(t, record, response.Results[0].Record)
	assert.Equal(t, "abogados", response.Results[1].Keyword)
	assert.False(t, response.Results[1].Resolution.Found)
	assert.Nil(t, response.Results[1].Record)
	assert.True(t, response.Quota.Allowed)
}

func TestService_Search_PartialFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, deps := newTestService(ctrl)

	deps.guard.EXPECT().CheckKeywords(gomock.Any(), 1, 2).Return(allowed(2), nil)

	deps.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, query domain.RankQuery) (*domain.Resolution, error) {
			if query.Device == domain.DeviceMobile {
				return nil, errors.New("provider timeout")
			}
			return &domain.Resolution{Found: false}, nil
		}).Times(2)

	response, err := service.Search(context.Background(), 1, domain.SearchRequest{
		Keywords: "seo",
		Domain:   "example.com",
		Devices:  []string{"desktop", "mobile"},
	})

	require.NoError(t, err)
	require.Len(t, response.Results, 1)
	require.Len(t, response.Failures, 1)
	assert.Equal(t, domain.DeviceMobile, response.Failures[0].Device)
	assert.Contains(t, response.Failures[0].Error, "provider timeout")
}

func TestService_Search_AllUnitsFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, deps := newTestService(ctrl)

	deps.guard.EXPECT().CheckKeywords(gomock.Any(), 1, 1).Return(allowed(1), nil)
	deps.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(nil, errors.New("provider down"))

	response, err := service.Search(context.Background(), 1, domain.SearchRequest{Keywords: "seo", Domain: "example.com"})

	assert.Nil(t, response)
	assert.ErrorIs(t, err, ErrAllUnitsFailed)

	var trackingErr *TrackingError
	require.ErrorAs(t, err, &trackingErr)
	assert.Equal(t, apiErrors.ErrExternalService, trackingErr.Code)
}

func TestService_Search_LocalUsesLocalLabel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, deps := newTestService(ctrl)

	deps.guard.EXPECT().CheckKeywords(gomock.Any(), 1, 1).Return(allowed(1), nil)
	deps.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, query domain.RankQuery) (*domain.Resolution, error) {
			assert.Equal(t, domain.SearchTypeLocal, query.SearchType)
			return &domain.Resolution{Found: true, Position: 2, ResolvedDomain: "example.com", Rating: floatPtr(4.7), ReviewCount: intPtr(31)}, nil
		})

	record := &domain.PositionRecord{ID: 5}
	deps.ledger.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, update domain.PositionUpdate) (*domain.PositionRecord, error) {
			assert.Equal(t, "google_local", update.SearchEngineLabel)
			assert.Equal(t, 4.7, *update.Rating)
			assert.Equal(t, 31, *update.ReviewCount)
			return record, nil
		})
	deps.ledger.EXPECT().Trends(gomock.Any(), record).Return(errors.New("snapshot indisponível"))

	response, err := service.Search(context.Background(), 1, domain.SearchRequest{
		Keywords:     "dentista",
		Domain:       "example.com",
		SearchEngine: "bing",
		Devices:      []string{"google_local"},
	})

	require.NoError(t, err)
	require.Len(t, response.Results, 1)
	assert.Equal(t, record, response.Results[0].Record)
}

func TestService_RankMap_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _ := newTestService(ctrl)

	_, err := service.RankMap(context.Background(), 1, domain.RankMapRequest{Location: "Murcia"})
	assert.ErrorIs(t, err, ErrKeywordRequired)

	_, err = service.RankMap(context.Background(), 1, domain.RankMapRequest{Keyword: "dentista"})
	assert.ErrorIs(t, err, ErrLocationRequired)

	_, err = service.RankMap(context.Background(), 1, domain.RankMapRequest{Keyword: "dentista", Location: "Murcia", Domain: "https://"})
	assert.ErrorIs(t, err, ErrInvalidDomain)
}

func TestService_RankMap_CoordinatesAndDomainNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, deps := newTestService(ctrl)

	deps.guard.EXPECT().CheckKeywords(gomock.Any(), 1, 1).Return(allowed(1), nil)
	deps.maps.EXPECT().MapsSearch(gomock.Any(), domain.MapsSearchParams{Keyword: "dentista", LL: "@37.98,-1.13,14z"}).
		Return([]domain.Place{
			{Title: "Clínica A", Domain: strPtr("a.com"), Rating: floatPtr(4.5), Reviews: intPtr(10), Position: 1},
		}, nil)

	record := &domain.PositionRecord{ID: 3}
	deps.ledger.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, update domain.PositionUpdate) (*domain.PositionRecord, error) {
			assert.Equal(t, domain.DeviceGoogleMaps, update.Key.Device)
			assert.Equal(t, "37.98,-1.13", *update.Key.Location)
			assert.Equal(t, 0, update.Position)
			assert.Equal(t, "google_maps", update.SearchEngineLabel)
			assert.Nil(t, update.Rating)
			return record, nil
		})

	response, err := service.RankMap(context.Background(), 1, domain.RankMapRequest{
		Keyword:  "dentista",
		Location: "37.98,-1.13",
		Domain:   "example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, 0, response.Analysis.Overall.DomainPosition)
	assert.Equal(t, record, response.Record)
}

func TestService_RankMap_PassthroughAndFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, deps := newTestService(ctrl)

	deps.guard.EXPECT().CheckKeywords(gomock.Any(), 1, 1).Return(allowed(1), nil)
	deps.maps.EXPECT().MapsSearch(gomock.Any(), domain.MapsSearchParams{Keyword: "dentista", LL: "@40.4,-3.7,15z"}).
		Return([]domain.Place{
			{Title: "Clínica A", Domain: strPtr("a.com"), Position: 1},
			{Title: "Example", Domain: strPtr("example.com"), Rating: floatPtr(4.9), Reviews: intPtr(80), Position: 2},
		}, nil)

	record := &domain.PositionRecord{ID: 4}
	deps.ledger.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, update domain.PositionUpdate) (*domain.PositionRecord, error) {
			assert.Equal(t, 2, update.Position)
			assert.Equal(t, 4.9, *update.Rating)
			assert.Equal(t, 80, *update.ReviewCount)
			return record, nil
		})
	deps.ledger.EXPECT().Trends(gomock.Any(), record).Return(nil)

	response, err := service.RankMap(context.Background(), 1, domain.RankMapRequest{
		Keyword:  "dentista",
		Location: "@40.4,-3.7,15z",
		Domain:   "www.example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, 2, response.Analysis.Overall.DomainPosition)
}

func TestService_RankMap_Geocoding(t *testing.T) {
	tests := []struct {
		name        string
		geocodeErr  error
		expectedErr error
		code        string
	}{
		{name: "Endereço não encontrado", geocodeErr: mapsdomain.ErrAddressNotFound, expectedErr: ErrAddressNotFound, code: apiErrors.ErrAddressNotFound},
		{name: "Falha do provedor", geocodeErr: errors.New("timeout"), expectedErr: ErrProviderFailure, code: apiErrors.ErrExternalService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, deps := newTestService(ctrl)

			deps.guard.EXPECT().CheckKeywords(gomock.Any(), 1, 1).Return(allowed(1), nil)
			deps.geocoder.EXPECT().Geocode(gomock.Any(), "Calle Falsa 123").Return(nil, tt.geocodeErr)

			_, err := service.RankMap(context.Background(), 1, domain.RankMapRequest{Keyword: "dentista", Location: "Calle Falsa 123"})

			assert.ErrorIs(t, err, tt.expectedErr)
			var trackingErr *TrackingError
			require.ErrorAs(t, err, &trackingErr)
			assert.Equal(t, tt.code, trackingErr.Code)
		})
	}
}

func TestService_RankMap_WithoutDomainSkipsLedger(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, deps := newTestService(ctrl)

	deps.guard.EXPECT().CheckKeywords(gomock.Any(), 1, 1).Return(allowed(1), nil)
	deps.geocoder.EXPECT().Geocode(gomock.Any(), "Murcia").Return(&domain.Coordinates{Lat: 37.99, Lng: -1.13}, nil)
	deps.maps.EXPECT().MapsSearch(gomock.Any(), domain.MapsSearchParams{Keyword: "dentista", LL: "@37.99,-1.13,14z"}).Return(nil, nil)

	response, err := service.RankMap(context.Background(), 1, domain.RankMapRequest{Keyword: "dentista", Location: "Murcia"})

	require.NoError(t, err)
	assert.Nil(t, response.Record)
	assert.Equal(t, 0, response.Analysis.Overall.TotalResults)
}

func TestService_RankMap_ProviderFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, deps := newTestService(ctrl)

	deps.guard.EXPECT().CheckKeywords(gomock.Any(), 1, 1).Return(allowed(1), nil)
	deps.maps.EXPECT().MapsSearch(gomock.Any(), gomock.Any()).Return(nil, errors.New("502"))

	_, err := service.RankMap(context.Background(), 1, domain.RankMapRequest{Keyword: "dentista", Location: "@1,2,14z"})

	assert.ErrorIs(t, err, ErrProviderFailure)
}

func TestService_RefreshAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, deps := newTestService(ctrl)

	combinations := []*domain.TrackedCombination{
		{Keyword: "seo", FilteredDomain: "example.com", Device: domain.DeviceDesktop, UserIDs: []int{1, 2}},
		{Keyword: "sem", FilteredDomain: "example.com", Device: domain.DeviceMobile, UserIDs: []int{1}},
		{Keyword: "ads", FilteredDomain: "example.com", Device: domain.DeviceGoogleLocal, Location: strPtr("Murcia"), UserIDs: []int{3}},
	}
	deps.positions.EXPECT().ListTrackedCombinations(gomock.Any()).Return(combinations, nil)

	deps.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, query domain.RankQuery) (*domain.Resolution, error) {
			switch query.Keyword {
			case "seo":
				return &domain.Resolution{Found: true, Position: 4, ResolvedDomain: "example.com"}, nil
			case "sem":
				return &domain.Resolution{Found: false}, nil
			default:
				return nil, errors.New("provider down")
			}
		}).Times(3)

	deps.ledger.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, update domain.PositionUpdate) (*domain.PositionRecord, error) {
			assert.Equal(t, "seo", update.Key.Keyword)
			assert.Equal(t, 4, update.Position)
			return &domain.PositionRecord{UserID: update.Key.UserID}, nil
		}).Times(2)

	deps.ledger.EXPECT().PruneHistory(gomock.Any(), 90).Return(int64(12), nil)

	summary, err := service.RefreshAll(context.Background(), domain.RefreshOptions{MaxConcurrent: 2})

	require.NoError(t, err)
	assert.Equal(t, &domain.RefreshSummary{
		Combinations:    3,
		Found:           1,
		NotFound:        1,
		Failed:          1,
		Updated:         2,
		PrunedSnapshots: 12,
	}, summary)
}

func TestService_RefreshAll_MapsCombination(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, deps := newTestService(ctrl)

	deps.positions.EXPECT().ListTrackedCombinations(gomock.Any()).Return([]*domain.TrackedCombination{
		{Keyword: "dentista", FilteredDomain: "example.com", Device: domain.DeviceGoogleMaps, Location: strPtr("37.98,-1.13"), UserIDs: []int{4}},
	}, nil)

	deps.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).Times(0)
	deps.maps.EXPECT().MapsSearch(gomock.Any(), domain.MapsSearchParams{Keyword: "dentista", LL: "@37.98,-1.13,14z"}).
		Return([]domain.Place{
			{Title: "Clínica A", Domain: strPtr("a.com"), Position: 1},
			{Title: "Clínica B", Domain: strPtr("example.com"), Rating: floatPtr(4.8), Reviews: intPtr(31), Position: 2},
		}, nil)

	deps.ledger.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, update domain.PositionUpdate) (*domain.PositionRecord, error) {
			assert.Equal(t, domain.DeviceGoogleMaps, update.Key.Device)
			assert.Equal(t, 4, update.Key.UserID)
			assert.Equal(t, 2, update.Position)
			assert.Equal(t, "google_maps", update.SearchEngineLabel)
			assert.Equal(t, 4.8, *update.Rating)
			return &domain.PositionRecord{UserID: 4}, nil
		})

	deps.ledger.EXPECT().PruneHistory(gomock.Any(), 90).Return(int64(0), nil)

	summary, err := service.RefreshAll(context.Background(), domain.RefreshOptions{MaxConcurrent: 1})

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Found)
	assert.Equal(t, 1, summary.Updated)
}

func TestService_RefreshAll_Canceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, deps := newTestService(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	deps.positions.EXPECT().ListTrackedCombinations(gomock.Any()).Return([]*domain.TrackedCombination{
		{Keyword: "seo", FilteredDomain: "example.com", Device: domain.DeviceDesktop, UserIDs: []int{1}},
	}, nil)

	summary, err := service.RefreshAll(ctx, domain.RefreshOptions{MaxConcurrent: 1})

	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, summary)
	assert.Equal(t, 0, summary.Updated)
}

func TestService_RefreshAll_ListError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, deps := newTestService(ctrl)

	deps.positions.EXPECT().ListTrackedCombinations(gomock.Any()).Return(nil, errors.New("db down"))

	_, err := service.RefreshAll(context.Background(), domain.RefreshOptions{})

	assert.ErrorIs(t, err, ErrDatabaseOperation)
}

func TestService_ListTracked(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, deps := newTestService(ctrl)

	records := []*domain.PositionRecord{{ID: 1}, {ID: 2}}
	deps.positions.EXPECT().ListByUser(gomock.Any(), 5).Return(records, nil)
	deps.ledger.EXPECT().Trends(gomock.Any(), records[0]).Return(errors.New("falha"))
	deps.ledger.EXPECT().Trends(gomock.Any(), records[1]).Return(nil)

	result, err := service.ListTracked(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, records, result)
}

func TestService_HistoryOptions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, deps := newTestService(ctrl)

	deps.positions.EXPECT().DistinctKeywords(gomock.Any(), 5).Return([]string{"seo"}, nil)
	deps.positions.EXPECT().DistinctDomains(gomock.Any(), 5).Return([]string{"example.com"}, nil)

	options, err := service.HistoryOptions(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, &domain.HistoryOptions{Keywords: []string{"seo"}, Domains: []string{"example.com"}}, options)
}

func TestService_KeywordQuota_UserNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, deps := newTestService(ctrl)

	deps.guard.EXPECT().CheckKeywords(gomock.Any(), 5, 1).Return(domain.QuotaDecision{}, quota.ErrUserNotFound)

	_, err := service.KeywordQuota(context.Background(), 5)

	var trackingErr *TrackingError
	require.ErrorAs(t, err, &trackingErr)
	assert.Equal(t, apiErrors.ErrUserNotFound, trackingErr.Code)
}
