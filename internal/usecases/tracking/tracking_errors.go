package tracking

import (
	"errors"
	"fmt"

	"github.com/vfg2006/rank-tracker-api/internal/domain"
)

// Erros específicos para o acompanhamento de palavras-chave
var (
	// Erros de validação
	ErrKeywordsRequired = errors.New("keywords are required")
	ErrKeywordRequired  = errors.New("keyword is required")
	ErrDomainRequired   = errors.New("domain is required")
	ErrInvalidDomain    = errors.New("invalid domain")
	ErrInvalidDevice    = errors.New("invalid device")
	ErrLocationRequired = errors.New("location is required")
	ErrInvalidLocation  = errors.New("invalid location")

	// Erros de cota
	ErrQuotaDenied = errors.New("keyword quota denied")

	// Erros de serviços externos
	ErrAddressNotFound = errors.New("address not found")
	ErrProviderFailure = errors.New("search provider failure")
	ErrAllUnitsFailed  = errors.New("every keyword and device combination failed")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("database operation error")
)

// TrackingError é um erro com o código da API e, quando negado por cota, a decisão
type TrackingError struct {
	Err     error
	Code    string
	Details string
	Quota   *domain.QuotaDecision
}

func (e *TrackingError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *TrackingError) Unwrap() error {
	return e.Err
}

func NewTrackingError(err error, code string, details string) *TrackingError {
	return &TrackingError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
