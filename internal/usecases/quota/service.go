package quota

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/rank-tracker-api/infrastructure/repository"
	"github.com/vfg2006/rank-tracker-api/internal/domain"
	"github.com/vfg2006/rank-tracker-api/internal/metrics"
)

var ErrUserNotFound = errors.New("usuário não encontrado")

// Guard controla a admissão antes de qualquer chamada ao provedor de busca
type Guard interface {
	CheckKeywords(ctx context.Context, userID int, requested int) (domain.QuotaDecision, error)
	ScanUsage(ctx context.Context, userID int) (*domain.ScanUsage, error)
}

type QuotaGuard struct {
	userRepository         repository.UserRepository
	positionRepository     repository.PositionRepository
	scanCampaignRepository repository.ScanCampaignRepository
	policy                 ScanPolicy
	now                    func() time.Time
}

func NewQuotaGuard(
	userRepository repository.UserRepository,
	positionRepository repository.PositionRepository,
	scanCampaignRepository repository.ScanCampaignRepository,
) *QuotaGuard {
	return &QuotaGuard{
		userRepository:         userRepository,
		positionRepository:     positionRepository,
		scanCampaignRepository: scanCampaignRepository,
		now:                    time.Now,
	}
}

// CheckKeywords verifica se o usuário pode acompanhar mais requested combinações
func (g *QuotaGuard) CheckKeywords(ctx context.Context, userID int, requested int) (domain.QuotaDecision, error) {
	user, err := g.loadUser(ctx, userID)
	if err != nil {
		return domain.QuotaDecision{}, err
	}

	used, err := g.positionRepository.CountTrackedKeywords(ctx, userID)
	if err != nil {
		return domain.QuotaDecision{}, fmt.Errorf("erro ao contar palavras-chave do usuário: %w", err)
	}

	decision := EvaluateKeywords(user.Plan, used, requested)
	if !decision.Allowed {
		metrics.ObserveQuotaDenial("keywords", decision.Reason)
		logrus.WithFields(logrus.Fields{
			"user_id":   userID,
			"plan":      user.Plan,
			"used":      used,
			"requested": requested,
			"limit":     decision.Limit,
			"reason":    decision.Reason,
		}).Info("Cota de palavras-chave negada")
	}

	return decision, nil
}

// EvaluateKeywords aplica o limite do plano ao uso atual
func EvaluateKeywords(plan domain.Plan, used, requested int) domain.QuotaDecision {
	limit := plan.KeywordLimit()

	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}

	decision := domain.QuotaDecision{
		Allowed:   true,
		Used:      used,
		Limit:     limit,
		Remaining: remaining,
	}

	switch {
	case limit == 0:
		decision.Allowed = false
		decision.Reason = domain.QuotaReasonPlanWithoutAccess
	case used+requested > limit:
		decision.Allowed = false
		decision.Reason = domain.QuotaReasonLimitReached
	}

	return decision
}

// ScanUsage resume a franquia do ciclo e o saldo de créditos do usuário
func (g *QuotaGuard) ScanUsage(ctx context.Context, userID int) (*domain.ScanUsage, error) {
	user, err := g.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	cycleStart := g.policy.CycleStartAt(user, g.now())

	usedThisCycle, err := g.scanCampaignRepository.CountBaseSince(ctx, userID, cycleStart)
	if err != nil {
		return nil, fmt.Errorf("erro ao contar campanhas do ciclo: %w", err)
	}

	creditsUsed, err := g.scanCampaignRepository.CountByFunding(ctx, userID, domain.ScanFundingCredit)
	if err != nil {
		return nil, fmt.Errorf("erro ao contar campanhas pagas com crédito: %w", err)
	}

	baseLimit := user.Plan.ScanBaseLimit()
	baseRemaining := baseLimit - usedThisCycle
	if baseRemaining < 0 {
		baseRemaining = 0
	}

	return &domain.ScanUsage{
		Plan:             user.Plan,
		CycleStart:       cycleStart,
		UsedThisCycle:    usedThisCycle,
		BaseLimit:        baseLimit,
		BaseRemaining:    baseRemaining,
		CreditsPurchased: user.ScanCreditsPurchased,
		CreditsUsed:      creditsUsed,
		CreditsAvailable: user.ScanCreditBalance,
	}, nil
}

func (g *QuotaGuard) loadUser(ctx context.Context, userID int) (*domain.User, error) {
	user, err := g.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar usuário: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ScanPolicy decide a admissão de campanhas de scan: primeiro a franquia do
// ciclo, depois o saldo de créditos comprados
type ScanPolicy struct{}

var _ repository.AdmissionPolicy = ScanPolicy{}

func (p ScanPolicy) CycleStart(user *domain.User) time.Time {
	return p.CycleStartAt(user, time.Now())
}

// CycleStartAt devolve o aniversário mensal mais recente, até now, do início da
// assinatura paga ativa ou, sem ela, da criação da conta. Dias inexistentes no
// mês caem no último dia (31/01 vira 29/02 em ano bissexto).
func (ScanPolicy) CycleStartAt(user *domain.User, now time.Time) time.Time {
	anchor := user.CreatedAt
	if user.HasActivePaidSubscription() {
		anchor = *user.SubscriptionStartedAt
	}

	now = now.In(anchor.Location())
	months := (now.Year()-anchor.Year())*12 + int(now.Month()-anchor.Month())
	if months <= 0 {
		return anchor
	}

	start := addMonthsClamped(anchor, months)
	if start.After(now) {
		start = addMonthsClamped(anchor, months-1)
	}
	return start
}

func addMonthsClamped(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := time.Date(first.Year(), first.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()

	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func (ScanPolicy) Decide(accounting domain.ScanAccounting) domain.ScanDecision {
	if accounting.UsedThisCycle < accounting.Plan.ScanBaseLimit() {
		return domain.ScanDecision{Allowed: true, Funding: domain.ScanFundingBase}
	}

	if accounting.CreditBalance > 0 {
		return domain.ScanDecision{Allowed: true, Funding: domain.ScanFundingCredit}
	}

	return domain.ScanDecision{Reason: domain.QuotaReasonCreditsExhausted}
}
