package repository

import "github.com/agrofiscal/mapa-api/internal/domain/entity"

// ProductRepository define o porto de persistência do catálogo de produtos.
// Produtos pertencem a uma empresa do catálogo, nunca ao usuário direto.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByName(companyID, name string) (*entity.Product, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error)
	// ListAllByUser devolve todos os produtos de todas as empresas do
	// usuário. Usado para montar o snapshot de índice do processamento.
	ListAllByUser(userID string) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
}
