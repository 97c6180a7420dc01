package scanning

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	mapsdomain "github.com/vfg2006/rank-tracker-api/infrastructure/integrator/googlemaps/domain"
	"github.com/vfg2006/rank-tracker-api/infrastructure/repository"
	"github.com/vfg2006/rank-tracker-api/internal/domain"
	"github.com/vfg2006/rank-tracker-api/internal/metrics"
	"github.com/vfg2006/rank-tracker-api/internal/usecases/quota"
	"github.com/vfg2006/rank-tracker-api/internal/usecases/resolving"
	"github.com/vfg2006/rank-tracker-api/internal/usecases/tracking"
	"github.com/vfg2006/rank-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/rank-tracker-api/pkg/utils"
)

type ScanService interface {
	CreateCampaign(ctx context.Context, userID int, request domain.CreateScanCampaignRequest) (*domain.ScanCampaign, error)
	Usage(ctx context.Context, userID int) (*domain.ScanUsage, error)
	GrantCredits(ctx context.Context, userID int, amount int) (*domain.User, error)
}

type Service struct {
	scanCampaignRepository repository.ScanCampaignRepository
	userRepository         repository.UserRepository
	guard                  quota.Guard
	geocoder               tracking.Geocoder
	policy                 repository.AdmissionPolicy
	generateID             func() (string, error)
	now                    func() time.Time
}

func NewService(
	scanCampaignRepository repository.ScanCampaignRepository,
	userRepository repository.UserRepository,
	guard quota.Guard,
	geocoder tracking.Geocoder,
) ScanService {
	return &Service{
		scanCampaignRepository: scanCampaignRepository,
		userRepository:         userRepository,
		guard:                  guard,
		geocoder:               geocoder,
		policy:                 quota.ScanPolicy{},
		generateID:             utils.GenerateID,
		now:                    time.Now,
	}
}

// CreateCampaign confere a cota antes de geocodificar o endereço e admite a campanha
// consumindo a franquia do ciclo ou, esgotada, um crédito comprado
func (s *Service) CreateCampaign(ctx context.Context, userID int, request domain.CreateScanCampaignRequest) (*domain.ScanCampaign, error) {
	campaign, err := s.buildCampaign(userID, request)
	if err != nil {
		return nil, err
	}

	// leitura sem lock; a decisão definitiva é refeita dentro do Admit
	usage, err := s.Usage(ctx, userID)
	if err != nil {
		return nil, err
	}
	precheck := s.policy.Decide(domain.ScanAccounting{
		Plan:          usage.Plan,
		CycleStart:    usage.CycleStart,
		UsedThisCycle: usage.UsedThisCycle,
		CreditBalance: usage.CreditsAvailable,
	})
	if !precheck.Allowed {
		return nil, s.denied(userID, precheck.Reason)
	}

	center, err := s.geocoder.Geocode(ctx, campaign.Address)
	if errors.Is(err, mapsdomain.ErrAddressNotFound) {
		return nil, NewScanError(ErrAddressNotFound, apiErrors.ErrAddressNotFound, campaign.Address)
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"address": campaign.Address,
			"error":   err.Error(),
		}).Error("Erro ao geocodificar endereço da campanha")
		return nil, NewScanError(ErrGeocoding, apiErrors.ErrExternalService, "Falha ao geocodificar o endereço")
	}
	campaign.Center = *center

	id, err := s.generateID()
	if err != nil {
		return nil, NewScanError(ErrGenerateID, apiErrors.ErrInternalServer, "Falha ao gerar identificador da campanha")
	}
	campaign.ID = id
	campaign.CreatedAt = s.now()

	decision, err := s.scanCampaignRepository.Admit(ctx, campaign, s.policy)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		return nil, NewScanError(ErrUserNotFound, apiErrors.ErrUserNotFound, "")
	case errors.Is(err, repository.ErrInsufficientCredits):
		decision = domain.ScanDecision{Reason: domain.QuotaReasonCreditsExhausted}
	case err != nil:
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("Erro ao admitir campanha de scan")
		return nil, NewScanError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao gravar a campanha")
	}

	if !decision.Allowed {
		return nil, s.denied(userID, decision.Reason)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":     userID,
		"campaign_id": campaign.ID,
		"funding":     campaign.Funding,
	}).Info("Campanha de scan criada")

	return campaign, nil
}

func (s *Service) denied(userID int, reason string) error {
	metrics.ObserveQuotaDenial("scan", reason)
	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"reason":  reason,
	}).Info("Campanha de scan negada por cota")
	return NewScanError(ErrCreditsExhausted, apiErrors.ErrScanCreditsExhausted, reason)
}

func (s *Service) buildCampaign(userID int, request domain.CreateScanCampaignRequest) (*domain.ScanCampaign, error) {
	keyword := strings.TrimSpace(request.Keyword)
	if keyword == "" {
		return nil, NewScanError(ErrKeywordRequired, apiErrors.ErrMissingRequiredData, "Informe a palavra-chave")
	}

	if strings.TrimSpace(request.Domain) == "" {
		return nil, NewScanError(ErrDomainRequired, apiErrors.ErrMissingRequiredData, "Informe o domínio")
	}
	target, ok := resolving.NormalizeDomain(request.Domain)
	if !ok {
		return nil, NewScanError(ErrInvalidDomain, apiErrors.ErrInvalidFormat, request.Domain)
	}

	address := strings.TrimSpace(request.Address)
	if address == "" {
		return nil, NewScanError(ErrAddressRequired, apiErrors.ErrMissingRequiredData, "Informe o endereço")
	}

	radius := request.MaxRadiusMeters
	if radius == 0 {
		radius = domain.DefaultScanMaxRadiusMeters
	}
	step := request.StepMeters
	if step == 0 {
		step = domain.DefaultScanStepMeters
	}
	if radius < 0 || step < 0 || step > radius {
		return nil, NewScanError(ErrInvalidRadius, apiErrors.ErrInvalidFormat, "O passo deve ser positivo e menor ou igual ao raio")
	}

	return &domain.ScanCampaign{
		UserID:          userID,
		Keyword:         keyword,
		Domain:          target,
		Address:         address,
		MaxRadiusMeters: radius,
		StepMeters:      step,
		Status:          domain.ScanCampaignStatusProcessing,
	}, nil
}

func (s *Service) Usage(ctx context.Context, userID int) (*domain.ScanUsage, error) {
	usage, err := s.guard.ScanUsage(ctx, userID)
	if errors.Is(err, quota.ErrUserNotFound) {
		return nil, NewScanError(ErrUserNotFound, apiErrors.ErrUserNotFound, "")
	}
	if err != nil {
		return nil, NewScanError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar o uso de scans")
	}
	return usage, nil
}

// GrantCredits registra uma compra de créditos de scan
func (s *Service) GrantCredits(ctx context.Context, userID int, amount int) (*domain.User, error) {
	if amount <= 0 {
		return nil, NewScanError(ErrInvalidAmount, apiErrors.ErrInvalidFormat, "")
	}

	user, err := s.userRepository.GrantScanCredits(ctx, userID, amount)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, NewScanError(ErrUserNotFound, apiErrors.ErrUserNotFound, "")
	}
	if err != nil {
		return nil, NewScanError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao conceder créditos")
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"amount":  amount,
		"balance": user.ScanCreditBalance,
	}).Info("Créditos de scan concedidos")

	return user, nil
}
