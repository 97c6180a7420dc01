package domain

import "time"

// Plan é o plano de assinatura do usuário
type Plan string

const (
	PlanGratuito Plan = "Gratuito"
	PlanBasico   Plan = "Basico"
	PlanPro      Plan = "Pro"
	PlanUltra    Plan = "Ultra"
)

// KeywordLimit retorna o limite de palavras-chave acompanhadas do plano
func (p Plan) KeywordLimit() int {
	switch p {
	case PlanBasico:
		return 250
	case PlanPro:
		return 500
	case PlanUltra:
		return 7
	default:
		return 0
	}
}

// ScanBaseLimit retorna a franquia mensal de campanhas de scan do plano
func (p Plan) ScanBaseLimit() int {
	switch p {
	case PlanBasico:
		return 5
	case PlanPro:
		return 10
	case PlanUltra:
		return 25
	default:
		return 0
	}
}

// IsPaid indica se o plano é pago
func (p Plan) IsPaid() bool {
	return p == PlanBasico || p == PlanPro || p == PlanUltra
}

const (
	QuotaReasonPlanWithoutAccess = "plan_without_access"
	QuotaReasonLimitReached      = "limit_reached"
	QuotaReasonCreditsExhausted  = "scan_credits_exhausted"
)

// QuotaDecision é o resultado de uma verificação de cota de palavras-chave
type QuotaDecision struct {
	Allowed   bool   `json:"allowed"`
	Used      int    `json:"used"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
	Reason    string `json:"reason,omitempty"`
}

// ScanFunding indica de onde saiu a cota consumida por uma campanha
type ScanFunding string

const (
	ScanFundingBase   ScanFunding = "base"
	ScanFundingCredit ScanFunding = "credit"
)

// ScanAccounting é o estado lido dentro da transação de admissão
type ScanAccounting struct {
	Plan          Plan
	CycleStart    time.Time
	UsedThisCycle int
	CreditBalance int
}

type ScanDecision struct {
	Allowed bool        `json:"allowed"`
	Funding ScanFunding `json:"funding,omitempty"`
	Reason  string      `json:"reason,omitempty"`
}

type ScanUsage struct {
	Plan             Plan      `json:"plan"`
	CycleStart       time.Time `json:"cycle_start"`
	UsedThisCycle    int       `json:"used_this_cycle"`
	BaseLimit        int       `json:"base_limit"`
	BaseRemaining    int       `json:"base_remaining"`
	CreditsPurchased int       `json:"credits_purchased"`
	CreditsUsed      int       `json:"credits_used"`
	CreditsAvailable int       `json:"credits_available"`
}

// CreditReconciliation compara o saldo persistido com o histórico de campanhas
type CreditReconciliation struct {
	UserID           int `json:"user_id"`
	CreditsPurchased int `json:"credits_purchased"`
	CreditCampaigns  int `json:"credit_campaigns"`
	CreditBalance    int `json:"credit_balance"`
}

// Expected é o saldo que o usuário deveria ter
func (c CreditReconciliation) Expected() int {
	return c.CreditsPurchased - c.CreditCampaigns
}

func (c CreditReconciliation) Consistent() bool {
	return c.Expected() == c.CreditBalance
}
