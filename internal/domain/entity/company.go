package entity

import "time"

// Company representa uma empresa cadastrada no catálogo do usuário.
// MAPARegistration guarda o registro MAPA parcial da empresa (ex: "PR-12345").
// O registro completo de um produto é Company.MAPARegistration + "-" + Product.MAPARegistration.
type Company struct {
	ID               string
	UserID           string
	Name             string // razão social exatamente como aparece no <emit>/<xNome> da NF-e
	MAPARegistration string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
