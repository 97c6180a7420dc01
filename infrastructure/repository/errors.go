package repository

import "errors"

var (
	// ErrConcurrentUpdate indica que o registro mudou entre a leitura e a gravação
	ErrConcurrentUpdate = errors.New("registro alterado concorrentemente")
	ErrUserNotFound     = errors.New("usuário não encontrado")
	// ErrInsufficientCredits indica saldo de créditos zerado no momento do débito
	ErrInsufficientCredits = errors.New("saldo de créditos de scan insuficiente")
)
