package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

// RetryConfig define a estratégia de novas tentativas com back-off exponencial
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	// ShouldRetry decide se o erro é transitório. Quando nil, todo erro é repetido.
	ShouldRetry func(error) bool
}

func (r RetryConfig) attempts() int {
	if r.MaxAttempts < 1 {
		return 1
	}
	return r.MaxAttempts
}

func (r RetryConfig) backOff(ctx context.Context) backoff.BackOffContext {
	exponential := backoff.NewExponentialBackOff()
	exponential.InitialInterval = r.BaseDelay
	exponential.Multiplier = 2
	exponential.RandomizationFactor = 0
	exponential.MaxInterval = r.BaseDelay << uint(r.attempts())
	exponential.MaxElapsedTime = 0
	exponential.Reset()

	return backoff.WithContext(backoff.WithMaxRetries(exponential, uint64(r.attempts()-1)), ctx)
}

// Do executa fn até obter sucesso, esgotar as tentativas ou o contexto ser cancelado
func (r RetryConfig) Do(ctx context.Context, operationName string, fn func() error) error {
	var (
		attempt   int
		lastErr   error
		permanent bool
	)

	operation := func() error {
		attempt++
		lastErr = fn()
		if lastErr != nil && r.ShouldRetry != nil && !r.ShouldRetry(lastErr) {
			permanent = true
			return backoff.Permanent(lastErr)
		}
		return lastErr
	}

	notify := func(err error, wait time.Duration) {
		logrus.WithFields(logrus.Fields{
			"operation": operationName,
			"attempt":   attempt,
			"max":       r.attempts(),
			"delay":     wait.String(),
			"error":     err.Error(),
		}).Warn("Operação falhou, tentando novamente")
	}

	err := backoff.RetryNotify(operation, r.backOff(ctx), notify)
	switch {
	case err == nil:
		return nil
	case permanent:
		return lastErr
	case ctx.Err() != nil:
		return fmt.Errorf("%s cancelada após %d tentativas: %w", operationName, attempt, lastErr)
	}

	return fmt.Errorf("%s falhou após %d tentativas: %w", operationName, attempt, lastErr)
}
