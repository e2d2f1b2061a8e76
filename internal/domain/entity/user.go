package entity

import "time"

// User representa um usuário do sistema (estabelecimento que declara ao MAPA).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca em texto plano no domínio após persistir
	FullName     string
	CompanyName  string // razão social do estabelecimento declarante (cabeçalho do relatório)
	CNPJ         string
	IsActive     bool
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
