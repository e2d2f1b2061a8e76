// Package catalog implementa os casos de uso do catálogo de cadastros MAPA:
// empresas (código parcial do estabelecimento) e seus produtos (código parcial
// do registro). O catálogo é a fonte de verdade do processamento; NF-es só
// agregam quando emitente e produto resolvem contra ele.
package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/agrofiscal/mapa-api/internal/application/dto"
	"github.com/agrofiscal/mapa-api/internal/domain"
	"github.com/agrofiscal/mapa-api/internal/domain/entity"
	"github.com/agrofiscal/mapa-api/internal/domain/repository"
)

// CompanyUseCase casos de uso CRUD para empresas do catálogo.
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase constrói o caso de uso.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create cadastra uma empresa no catálogo do usuário.
// Nome duplicado dentro do mesmo catálogo devolve ErrDuplicate.
func (uc *CompanyUseCase) Create(userID string, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	existing, err := uc.repo.GetByName(userID, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	company := &entity.Company{
		ID:               uuid.New().String(),
		UserID:           userID,
		Name:             in.Name,
		MAPARegistration: in.MAPARegistration,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// GetByID devolve uma empresa do catálogo do usuário; nil quando inexistente
// ou pertencente a outro usuário.
func (uc *CompanyUseCase) GetByID(userID, id string) (*dto.CompanyResponse, error) {
	company, err := uc.ownedCompany(userID, id)
	if err != nil || company == nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// List pagina as empresas do catálogo do usuário.
func (uc *CompanyUseCase) List(userID string, page dto.PageRequest) ([]*dto.CompanyResponse, error) {
	page.DefaultPage()
	companies, err := uc.repo.List(userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		out = append(out, toCompanyResponse(c))
	}
	return out, nil
}

// Update altera nome e código parcial de uma empresa do catálogo.
func (uc *CompanyUseCase) Update(userID, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.ownedCompany(userID, id)
	if err != nil || company == nil {
		return nil, err
	}
	if in.Name != company.Name {
		dup, err := uc.repo.GetByName(userID, in.Name)
		if err != nil {
			return nil, err
		}
		if dup != nil && dup.ID != id {
			return nil, domain.ErrDuplicate
		}
	}
	company.Name = in.Name
	company.MAPARegistration = in.MAPARegistration
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// Delete remove uma empresa do catálogo do usuário.
func (uc *CompanyUseCase) Delete(userID, id string) error {
	company, err := uc.ownedCompany(userID, id)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// ownedCompany carrega a empresa e confere a propriedade pelo usuário.
func (uc *CompanyUseCase) ownedCompany(userID, id string) (*entity.Company, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil || company.UserID != userID {
		return nil, nil
	}
	return company, nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:               c.ID,
		Name:             c.Name,
		MAPARegistration: c.MAPARegistration,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}
