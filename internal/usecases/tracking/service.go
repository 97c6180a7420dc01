package tracking

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	mapsdomain "github.com/vfg2006/rank-tracker-api/infrastructure/integrator/googlemaps/domain"
	"github.com/vfg2006/rank-tracker-api/infrastructure/repository"
	"github.com/vfg2006/rank-tracker-api/internal/config"
	"github.com/vfg2006/rank-tracker-api/internal/domain"
	"github.com/vfg2006/rank-tracker-api/internal/usecases/analyzing"
	"github.com/vfg2006/rank-tracker-api/internal/usecases/quota"
	"github.com/vfg2006/rank-tracker-api/internal/usecases/ranking"
	"github.com/vfg2006/rank-tracker-api/internal/usecases/resolving"
	"github.com/vfg2006/rank-tracker-api/pkg/apiErrors"
)

const (
	defaultSearchEngine = "google"
	mapsZoom            = "14z"
)

var (
	keywordSeparator  = regexp.MustCompile(`[\n,]+`)
	coordinatePattern = regexp.MustCompile(`^[\d.-]+,[\d.-]+$`)
)

type TrackingService interface {
	Search(ctx context.Context, userID int, request domain.SearchRequest) (*domain.SearchResponse, error)
	RankMap(ctx context.Context, userID int, request domain.RankMapRequest) (*domain.RankMapResponse, error)
	RefreshAll(ctx context.Context, options domain.RefreshOptions) (*domain.RefreshSummary, error)
	ListTracked(ctx context.Context, userID int) ([]*domain.PositionRecord, error)
	HistoryOptions(ctx context.Context, userID int) (*domain.HistoryOptions, error)
	KeywordQuota(ctx context.Context, userID int) (domain.QuotaDecision, error)
}

type Service struct {
	resolver           resolving.Resolver
	ledger             ranking.Ledger
	guard              quota.Guard
	maps               MapsSearcher
	geocoder           Geocoder
	positionRepository repository.PositionRepository
	cfg                config.Tracking
}

func NewService(
	resolver resolving.Resolver,
	ledger ranking.Ledger,
	guard quota.Guard,
	maps MapsSearcher,
	geocoder Geocoder,
	positionRepository repository.PositionRepository,
	cfg *config.Config,
) TrackingService {
	return &Service{
		resolver:           resolver,
		ledger:             ledger,
		guard:              guard,
		maps:               maps,
		geocoder:           geocoder,
		positionRepository: positionRepository,
		cfg:                cfg.Tracking,
	}
}

type unit struct {
	index   int
	keyword string
	device  domain.Device
}

// Search resolve cada combinação palavra-chave × dispositivo e grava as encontradas.
// Falhas de uma combinação não interrompem as demais.
func (s *Service) Search(ctx context.Context, userID int, request domain.SearchRequest) (*domain.SearchResponse, error) {
	keywords := ParseKeywords(request.Keywords)
	if len(keywords) == 0 {
		return nil, NewTrackingError(ErrKeywordsRequired, apiErrors.ErrMissingRequiredData, "Informe ao menos uma palavra-chave")
	}

	if strings.TrimSpace(request.Domain) == "" {
		return nil, NewTrackingError(ErrDomainRequired, apiErrors.ErrMissingRequiredData, "Informe o domínio")
	}

	target, ok := resolving.NormalizeDomain(request.Domain)
	if !ok {
		return nil, NewTrackingError(ErrInvalidDomain, apiErrors.ErrInvalidFormat, request.Domain)
	}

	devices, err := ParseDevices(request.Devices)
	if err != nil {
		return nil, err
	}

	location := optionalLocation(request.Location)

	decision, err := s.checkQuota(ctx, userID, len(keywords)*len(devices))
	if err != nil {
		return nil, err
	}

	units := make([]unit, 0, len(keywords)*len(devices))
	for _, keyword := range keywords {
		for _, device := range devices {
			units = append(units, unit{index: len(units), keyword: keyword, device: device})
		}
	}

	results := make([]*domain.UnitResult, len(units))
	failures := make([]*domain.UnitFailure, len(units))

	semaphore := make(chan struct{}, s.maxConcurrentUnits())
	var wg sync.WaitGroup

	for _, u := range units {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(u unit) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			result, err := s.resolveUnit(ctx, userID, target, location, request.SearchEngine, u)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"user_id": userID,
					"keyword": u.keyword,
					"device":  u.device,
					"domain":  target,
					"error":   err.Error(),
				}).Error("Erro ao resolver combinação de busca")

				failures[u.index] = &domain.UnitFailure{Keyword: u.keyword, Device: u.device, Error: err.Error()}
				return
			}
			results[u.index] = result
		}(u)
	}

	wg.Wait()

	response := &domain.SearchResponse{
		Results:  make([]domain.UnitResult, 0, len(units)),
		Failures: make([]domain.UnitFailure, 0),
		Quota:    decision,
	}
	for i := range units {
		if results[i] != nil {
			response.Results = append(response.Results, *results[i])
		}
		if failures[i] != nil {
			response.Failures = append(response.Failures, *failures[i])
		}
	}

	if len(response.Results) == 0 {
		return nil, &TrackingError{
			Err:     ErrAllUnitsFailed,
			Code:    apiErrors.ErrExternalService,
			Details: response.Failures[0].Error,
		}
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"domain":   target,
		"units":    len(units),
		"results":  len(response.Results),
		"failures": len(response.Failures),
	}).Info("Busca de palavras-chave concluída")

	return response, nil
}

func (s *Service) resolveUnit(ctx context.Context, userID int, target string, location *string, engine string, u unit) (*domain.UnitResult, error) {
	resolution, err := s.resolver.Resolve(ctx, domain.RankQuery{
		Keyword:      u.keyword,
		TargetDomain: target,
		Location:     location,
		Device:       u.device,
		SearchType:   u.device.SearchType(),
		Engine:       engine,
	})
	if err != nil {
		return nil, err
	}

	result := &domain.UnitResult{
		Keyword:    u.keyword,
		Device:     u.device,
		Resolution: *resolution,
	}

	if !resolution.Found {
		return result, nil
	}

	record, err := s.ledger.Upsert(ctx, domain.PositionUpdate{
		Key: domain.PositionKey{
			UserID:         userID,
			Keyword:        u.keyword,
			FilteredDomain: target,
			Device:         u.device,
			Location:       location,
		},
		Position:          resolution.Position,
		ResolvedDomain:    resolution.ResolvedDomain,
		Rating:            resolution.Rating,
		ReviewCount:       resolution.ReviewCount,
		SearchEngineLabel: SearchEngineLabel(u.device, engine),
	})
	if err != nil {
		return nil, err
	}

	s.attachTrends(ctx, record)
	result.Record = record

	return result, nil
}

// RankMap analisa a concorrência no Google Maps e grava a posição do domínio, mesmo quando não encontrado
func (s *Service) RankMap(ctx context.Context, userID int, request domain.RankMapRequest) (*domain.RankMapResponse, error) {
	keyword := strings.TrimSpace(request.Keyword)
	if keyword == "" {
		return nil, NewTrackingError(ErrKeywordRequired, apiErrors.ErrMissingRequiredData, "Informe a palavra-chave")
	}

	location := strings.TrimSpace(request.Location)
	if location == "" {
		return nil, NewTrackingError(ErrLocationRequired, apiErrors.ErrMissingRequiredData, "Informe a localização")
	}

	var target string
	if strings.TrimSpace(request.Domain) != "" {
		normalized, ok := resolving.NormalizeDomain(request.Domain)
		if !ok {
			return nil, NewTrackingError(ErrInvalidDomain, apiErrors.ErrInvalidFormat, request.Domain)
		}
		target = normalized
	}

	if _, err := s.checkQuota(ctx, userID, 1); err != nil {
		return nil, err
	}

	ll, err := s.resolveLL(ctx, location)
	if err != nil {
		return nil, err
	}

	places, err := s.maps.MapsSearch(ctx, domain.MapsSearchParams{Keyword: keyword, LL: ll})
	if err != nil {
		return nil, NewTrackingError(fmt.Errorf("%w: %v", ErrProviderFailure, err), apiErrors.ErrExternalService, "Falha ao consultar o Google Maps")
	}

	response := &domain.RankMapResponse{
		Analysis: analyzing.Analyze(places, target, request.DistanceFilter),
	}

	if target == "" {
		return response, nil
	}

	overall := response.Analysis.Overall
	record, err := s.ledger.Upsert(ctx, domain.PositionUpdate{
		Key: domain.PositionKey{
			UserID:         userID,
			Keyword:        keyword,
			FilteredDomain: target,
			Device:         domain.DeviceGoogleMaps,
			Location:       &location,
		},
		Position:          overall.DomainPosition,
		ResolvedDomain:    target,
		Rating:            overall.DomainRating,
		ReviewCount:       overall.DomainReviews,
		SearchEngineLabel: SearchEngineLabel(domain.DeviceGoogleMaps, ""),
	})
	if err != nil {
		return nil, NewTrackingError(fmt.Errorf("%w: %v", ErrDatabaseOperation, err), apiErrors.ErrDatabaseOperation, "Falha ao gravar a posição")
	}

	if overall.DomainPosition > 0 {
		s.attachTrends(ctx, record)
	}
	response.Record = record

	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"keyword":  keyword,
		"domain":   target,
		"position": overall.DomainPosition,
		"results":  overall.TotalResults,
	}).Info("RankMap concluído")

	return response, nil
}

// resolveMaps refaz a busca do RankMap para uma combinação gravada com DeviceGoogleMaps
func (s *Service) resolveMaps(ctx context.Context, combination *domain.TrackedCombination) (*domain.Resolution, error) {
	if combination.Location == nil || strings.TrimSpace(*combination.Location) == "" {
		return nil, NewTrackingError(ErrLocationRequired, apiErrors.ErrMissingRequiredData, "Combinação do Maps sem localização")
	}

	ll, err := s.resolveLL(ctx, strings.TrimSpace(*combination.Location))
	if err != nil {
		return nil, err
	}

	places, err := s.maps.MapsSearch(ctx, domain.MapsSearchParams{Keyword: combination.Keyword, LL: ll})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}

	overall := analyzing.Analyze(places, combination.FilteredDomain, nil).Overall
	if overall.DomainPosition == 0 {
		return &domain.Resolution{Found: false}, nil
	}

	return &domain.Resolution{
		Found:          true,
		Position:       overall.DomainPosition,
		ResolvedDomain: combination.FilteredDomain,
		Rating:         overall.DomainRating,
		ReviewCount:    overall.DomainReviews,
	}, nil
}

// resolveLL converte a localização no parâmetro ll do Google Maps
func (s *Service) resolveLL(ctx context.Context, location string) (string, error) {
	if strings.HasPrefix(location, "@") {
		return location, nil
	}

	if coordinatePattern.MatchString(location) {
		parts := strings.SplitN(location, ",", 2)
		lat, latErr := strconv.ParseFloat(parts[0], 64)
		lng, lngErr := strconv.ParseFloat(parts[1], 64)
		if latErr != nil || lngErr != nil {
			return "", NewTrackingError(ErrInvalidLocation, apiErrors.ErrInvalidFormat, location)
		}
		return FormatLL(lat, lng), nil
	}

	coordinates, err := s.geocoder.Geocode(ctx, location)
	if errors.Is(err, mapsdomain.ErrAddressNotFound) {
		return "", NewTrackingError(ErrAddressNotFound, apiErrors.ErrAddressNotFound, location)
	}
	if err != nil {
		return "", NewTrackingError(fmt.Errorf("%w: %v", ErrProviderFailure, err), apiErrors.ErrExternalService, "Falha ao geocodificar a localização")
	}

	return FormatLL(coordinates.Lat, coordinates.Lng), nil
}

// RefreshAll resolve uma vez cada combinação acompanhada e atualiza todos os usuários que a acompanham.
// Falhas individuais são contadas e ignoradas; o cancelamento do contexto encerra o lote inteiro.
func (s *Service) RefreshAll(ctx context.Context, options domain.RefreshOptions) (*domain.RefreshSummary, error) {
	combinations, err := s.positionRepository.ListTrackedCombinations(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}

	summary := &domain.RefreshSummary{Combinations: len(combinations)}

	maxConcurrent := options.MaxConcurrent
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	semaphore := make(chan struct{}, maxConcurrent)
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	for _, combination := range combinations {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		semaphore <- struct{}{}

		go func(combination *domain.TrackedCombination) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			found, updated, err := s.refreshCombination(ctx, combination)

			mu.Lock()
			switch {
			case err != nil:
				summary.Failed++
			case found:
				summary.Found++
			default:
				summary.NotFound++
			}
			summary.Updated += updated
			mu.Unlock()

			if options.Delay > 0 {
				select {
				case <-ctx.Done():
				case <-time.After(options.Delay):
				}
			}
		}(combination)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		logrus.WithFields(logrus.Fields{
			"combinations": summary.Combinations,
			"updated":      summary.Updated,
		}).Warn("Atualização de palavras-chave cancelada")
		return summary, err
	}

	pruned, err := s.ledger.PruneHistory(ctx, s.cfg.SnapshotRetentionDays)
	if err != nil {
		logrus.WithError(err).Error("Erro ao remover histórico antigo de posições")
	}
	summary.PrunedSnapshots = pruned

	logrus.WithFields(logrus.Fields{
		"combinations": summary.Combinations,
		"found":        summary.Found,
		"not_found":    summary.NotFound,
		"failed":       summary.Failed,
		"updated":      summary.Updated,
		"pruned":       summary.PrunedSnapshots,
	}).Info("Atualização de palavras-chave concluída")

	return summary, nil
}

func (s *Service) refreshCombination(ctx context.Context, combination *domain.TrackedCombination) (bool, int, error) {
	var (
		resolution *domain.Resolution
		err        error
	)
	if combination.Device == domain.DeviceGoogleMaps {
		resolution, err = s.resolveMaps(ctx, combination)
	} else {
		resolution, err = s.resolver.Resolve(ctx, domain.RankQuery{
			Keyword:      combination.Keyword,
			TargetDomain: combination.FilteredDomain,
			Location:     combination.Location,
			Device:       combination.Device,
			SearchType:   combination.Device.SearchType(),
		})
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"keyword": combination.Keyword,
			"domain":  combination.FilteredDomain,
			"device":  combination.Device,
			"error":   err.Error(),
		}).Error("Erro ao resolver combinação acompanhada")
		return false, 0, err
	}

	if !resolution.Found {
		return false, 0, nil
	}

	updated := 0
	var lastErr error
	for _, userID := range combination.UserIDs {
		_, err := s.ledger.Upsert(ctx, domain.PositionUpdate{
			Key: domain.PositionKey{
				UserID:         userID,
				Keyword:        combination.Keyword,
				FilteredDomain: combination.FilteredDomain,
				Device:         combination.Device,
				Location:       combination.Location,
			},
			Position:          resolution.Position,
			ResolvedDomain:    resolution.ResolvedDomain,
			Rating:            resolution.Rating,
			ReviewCount:       resolution.ReviewCount,
			SearchEngineLabel: SearchEngineLabel(combination.Device, ""),
		})
		if err != nil {
			lastErr = err
			continue
		}
		updated++
	}

	return true, updated, lastErr
}

// ListTracked devolve as posições do usuário com as comparações de 24h e 7 dias
func (s *Service) ListTracked(ctx context.Context, userID int) ([]*domain.PositionRecord, error) {
	records, err := s.positionRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewTrackingError(fmt.Errorf("%w: %v", ErrDatabaseOperation, err), apiErrors.ErrDatabaseOperation, "Falha ao listar posições")
	}

	for _, record := range records {
		s.attachTrends(ctx, record)
	}

	return records, nil
}

func (s *Service) HistoryOptions(ctx context.Context, userID int) (*domain.HistoryOptions, error) {
	keywords, err := s.positionRepository.DistinctKeywords(ctx, userID)
	if err != nil {
		return nil, NewTrackingError(fmt.Errorf("%w: %v", ErrDatabaseOperation, err), apiErrors.ErrDatabaseOperation, "Falha ao listar palavras-chave")
	}

	domains, err := s.positionRepository.DistinctDomains(ctx, userID)
	if err != nil {
		return nil, NewTrackingError(fmt.Errorf("%w: %v", ErrDatabaseOperation, err), apiErrors.ErrDatabaseOperation, "Falha ao listar domínios")
	}

	return &domain.HistoryOptions{Keywords: keywords, Domains: domains}, nil
}

// KeywordQuota informa se o usuário ainda pode acompanhar mais uma combinação
func (s *Service) KeywordQuota(ctx context.Context, userID int) (domain.QuotaDecision, error) {
	decision, err := s.guard.CheckKeywords(ctx, userID, 1)
	if err != nil {
		return domain.QuotaDecision{}, s.quotaLookupError(err)
	}
	return decision, nil
}

func (s *Service) checkQuota(ctx context.Context, userID int, requested int) (domain.QuotaDecision, error) {
	decision, err := s.guard.CheckKeywords(ctx, userID, requested)
	if err != nil {
		return domain.QuotaDecision{}, s.quotaLookupError(err)
	}

	if !decision.Allowed {
		code := apiErrors.ErrKeywordLimitReached
		if decision.Reason == domain.QuotaReasonPlanWithoutAccess {
			code = apiErrors.ErrPlanWithoutAccess
		}
		return decision, &TrackingError{
			Err:     ErrQuotaDenied,
			Code:    code,
			Details: decision.Reason,
			Quota:   &decision,
		}
	}

	return decision, nil
}

func (s *Service) quotaLookupError(err error) error {
	if errors.Is(err, quota.ErrUserNotFound) {
		return NewTrackingError(err, apiErrors.ErrUserNotFound, "")
	}
	return NewTrackingError(fmt.Errorf("%w: %v", ErrDatabaseOperation, err), apiErrors.ErrDatabaseOperation, "Falha ao verificar a cota")
}

func (s *Service) attachTrends(ctx context.Context, record *domain.PositionRecord) {
	if err := s.ledger.Trends(ctx, record); err != nil {
		logrus.WithFields(logrus.Fields{
			"record_id": record.ID,
			"error":     err.Error(),
		}).Warn("Erro ao calcular tendências da posição")
	}
}

func (s *Service) maxConcurrentUnits() int {
	if s.cfg.MaxConcurrentUnits < 1 {
		return 1
	}
	return s.cfg.MaxConcurrentUnits
}

// ParseKeywords separa por vírgula ou quebra de linha, descartando vazias e repetidas
func ParseKeywords(raw string) []string {
	seen := make(map[string]bool)
	keywords := make([]string, 0)

	for _, part := range keywordSeparator.Split(raw, -1) {
		keyword := strings.TrimSpace(part)
		if keyword == "" || seen[keyword] {
			continue
		}
		seen[keyword] = true
		keywords = append(keywords, keyword)
	}

	return keywords
}

// ParseDevices valida os dispositivos pedidos; sem nenhum, usa desktop
func ParseDevices(raw []string) ([]domain.Device, error) {
	if len(raw) == 0 {
		return []domain.Device{domain.DeviceDesktop}, nil
	}

	seen := make(map[domain.Device]bool)
	devices := make([]domain.Device, 0, len(raw))
	for _, value := range raw {
		device, ok := domain.ParseDevice(value)
		if !ok {
			return nil, NewTrackingError(ErrInvalidDevice, apiErrors.ErrInvalidFormat, value)
		}
		if seen[device] {
			continue
		}
		seen[device] = true
		devices = append(devices, device)
	}

	return devices, nil
}

// SearchEngineLabel é o buscador gravado no ledger
func SearchEngineLabel(device domain.Device, engine string) string {
	if device == domain.DeviceGoogleLocal || device == domain.DeviceGoogleMaps {
		return string(device)
	}
	if engine == "" {
		return defaultSearchEngine
	}
	return engine
}

// FormatLL monta o parâmetro ll centrado nas coordenadas
func FormatLL(lat, lng float64) string {
	return fmt.Sprintf("@%s,%s,%s",
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(lng, 'f', -1, 64),
		mapsZoom,
	)
}

func optionalLocation(location *string) *string {
	if location == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*location)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
