package ledger

import "errors"

var (
	// ErrInsufficientBalance indica stake maior que o saldo atual
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidBetParameters indica valor não positivo, odd inválida,
	// resultado desconhecido ou jogo sem id
	ErrInvalidBetParameters = errors.New("invalid bet parameters")

	// ErrBetNotFound indica cancelamento de aposta inexistente ou já liquidada
	ErrBetNotFound = errors.New("bet not found")
)
