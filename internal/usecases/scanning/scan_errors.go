package scanning

import (
	"errors"
	"fmt"
)

// Erros específicos para campanhas de scan
var (
	// Erros de validação
	ErrKeywordRequired = errors.New("keyword is required")
	ErrDomainRequired  = errors.New("domain is required")
	ErrInvalidDomain   = errors.New("invalid domain")
	ErrAddressRequired = errors.New("address is required")
	ErrInvalidRadius   = errors.New("invalid radius or step")
	ErrInvalidAmount   = errors.New("credit amount must be positive")

	// Erros de cota
	ErrCreditsExhausted = errors.New("scan allowance and credits exhausted")
	ErrUserNotFound     = errors.New("user not found")

	// Erros de serviços externos
	ErrAddressNotFound = errors.New("address not found")
	ErrGeocoding       = errors.New("error geocoding address")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("database operation error")
	ErrGenerateID        = errors.New("error generating campaign ID")
)

// ScanError é um erro com contexto adicional para campanhas de scan
type ScanError struct {
	Err     error
	Code    string
	Details string
}

func (e *ScanError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

func NewScanError(err error, code string, details string) *ScanError {
	return &ScanError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
