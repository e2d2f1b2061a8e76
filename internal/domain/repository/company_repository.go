package repository

import "github.com/agrofiscal/mapa-api/internal/domain/entity"

// CompanyRepository define o porto de persistência do catálogo de empresas.
// Todo o catálogo é particionado por usuário dono.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByName(userID, name string) (*entity.Company, error)
	List(userID string, limit, offset int) ([]*entity.Company, error)
	// ListAll devolve o catálogo inteiro do usuário, sem paginação.
	// Usado para montar o snapshot de índice do processamento.
	ListAll(userID string) ([]*entity.Company, error)
	Update(company *entity.Company) error
	Delete(id string) error
}
