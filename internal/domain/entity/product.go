package entity

import "time"

// Product representa um produto vinculado a uma empresa do catálogo.
// MAPARegistration guarda o registro MAPA parcial do produto (ex: "6.000001").
type Product struct {
	ID               string
	CompanyID        string
	Name             string // descrição exatamente como aparece no <prod>/<xProd> da NF-e
	MAPARegistration string
	Reference        string // descrição amigável para o relatório; opcional
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
