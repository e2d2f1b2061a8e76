package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound           = errors.New("recurso não encontrado")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrEmailAlreadyExists = errors.New("o email já está cadastrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("não autorizado")
	ErrForbidden          = errors.New("acesso negado")
	ErrConflict           = errors.New("conflito com o estado atual")

	// ErrMalformedInvoice indica um documento que não é uma NF-e bem formada
	// ou que não possui o número da nota (nNF), campo obrigatório.
	ErrMalformedInvoice = errors.New("NF-e malformada ou sem número da nota")

	// ErrInvalidPeriod indica um período trimestral fora do formato Q[1-4]-AAAA.
	ErrInvalidPeriod = errors.New("período inválido: use Q1-2025, Q2-2025, Q3-2025 ou Q4-2025")

	// ErrDuplicateNFe indica uma NF-e cuja chave de acesso já foi enviada pelo usuário.
	ErrDuplicateNFe = errors.New("NF-e com esta chave de acesso já foi enviada")
)
