package dto

import "time"

// CreateCompanyRequest cadastra uma empresa no catálogo do usuário.
type CreateCompanyRequest struct {
	Name             string `json:"name" validate:"required,min=1,max=200"`
	MAPARegistration string `json:"mapa_registration" validate:"required,min=1,max=50"`
}

// UpdateCompanyRequest altera uma empresa do catálogo.
type UpdateCompanyRequest struct {
	Name             string `json:"name" validate:"required,min=1,max=200"`
	MAPARegistration string `json:"mapa_registration" validate:"required,min=1,max=50"`
}

// CompanyResponse saída de uma empresa do catálogo.
type CompanyResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	MAPARegistration string    `json:"mapa_registration"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CreateProductRequest cadastra um produto de uma empresa do catálogo.
type CreateProductRequest struct {
	CompanyID        string `json:"company_id" validate:"required,uuid"`
	Name             string `json:"name" validate:"required,min=1,max=300"`
	MAPARegistration string `json:"mapa_registration" validate:"required,min=1,max=50"`
	Reference        string `json:"reference" validate:"omitempty,max=300"`
}

// UpdateProductRequest altera um produto do catálogo.
type UpdateProductRequest struct {
	Name             string `json:"name" validate:"required,min=1,max=300"`
	MAPARegistration string `json:"mapa_registration" validate:"required,min=1,max=50"`
	Reference        string `json:"reference" validate:"omitempty,max=300"`
}

// CatalogCompanyOverview empresa com os produtos aninhados, para a visão
// completa do catálogo.
type CatalogCompanyOverview struct {
	Company  CompanyResponse    `json:"company"`
	Products []*ProductResponse `json:"products"`
}

// CatalogOverviewResponse catálogo inteiro do usuário com totais.
type CatalogOverviewResponse struct {
	Companies      []*CatalogCompanyOverview `json:"companies"`
	TotalCompanies int                       `json:"total_companies"`
	TotalProducts  int                       `json:"total_products"`
}

// ProductResponse saída de um produto do catálogo.
type ProductResponse struct {
	ID               string    `json:"id"`
	CompanyID        string    `json:"company_id"`
	Name             string    `json:"name"`
	MAPARegistration string    `json:"mapa_registration"`
	Reference        string    `json:"reference,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
