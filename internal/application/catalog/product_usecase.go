package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/agrofiscal/mapa-api/internal/application/dto"
	"github.com/agrofiscal/mapa-api/internal/domain"
	"github.com/agrofiscal/mapa-api/internal/domain/entity"
	"github.com/agrofiscal/mapa-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para produtos do catálogo.
// Produtos pertencem a uma empresa; todo acesso confere a cadeia de
// propriedade usuário -> empresa -> produto.
type ProductUseCase struct {
	products  repository.ProductRepository
	companies repository.CompanyRepository
}

// NewProductUseCase constrói o caso de uso.
func NewProductUseCase(products repository.ProductRepository, companies repository.CompanyRepository) *ProductUseCase {
	return &ProductUseCase{products: products, companies: companies}
}

// Create cadastra um produto de uma empresa do catálogo.
// Descrição duplicada na mesma empresa devolve ErrDuplicate.
func (uc *ProductUseCase) Create(userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	company, err := uc.companies.GetByID(in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil || company.UserID != userID {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.products.GetByName(in.CompanyID, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:               uuid.New().String(),
		CompanyID:        in.CompanyID,
		Name:             in.Name,
		MAPARegistration: in.MAPARegistration,
		Reference:        in.Reference,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.products.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID devolve um produto do catálogo do usuário; nil quando inexistente
// ou fora da cadeia de propriedade.
func (uc *ProductUseCase) GetByID(userID, id string) (*dto.ProductResponse, error) {
	product, err := uc.ownedProduct(userID, id)
	if err != nil || product == nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// ListByCompany pagina os produtos de uma empresa do catálogo do usuário.
func (uc *ProductUseCase) ListByCompany(userID, companyID string, page dto.PageRequest) ([]*dto.ProductResponse, error) {
	company, err := uc.companies.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil || company.UserID != userID {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage()
	products, err := uc.products.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Overview devolve o catálogo completo do usuário: empresas com os produtos
// aninhados e os totais. É a mesma visão que o processamento enxerga.
func (uc *ProductUseCase) Overview(userID string) (*dto.CatalogOverviewResponse, error) {
	companies, err := uc.companies.ListAll(userID)
	if err != nil {
		return nil, err
	}
	products, err := uc.products.ListAllByUser(userID)
	if err != nil {
		return nil, err
	}

	byCompany := make(map[string][]*dto.ProductResponse, len(companies))
	for _, p := range products {
		byCompany[p.CompanyID] = append(byCompany[p.CompanyID], toProductResponse(p))
	}

	out := &dto.CatalogOverviewResponse{
		Companies:      make([]*dto.CatalogCompanyOverview, 0, len(companies)),
		TotalCompanies: len(companies),
		TotalProducts:  len(products),
	}
	for _, c := range companies {
		items := byCompany[c.ID]
		if items == nil {
			items = []*dto.ProductResponse{}
		}
		out.Companies = append(out.Companies, &dto.CatalogCompanyOverview{
			Company:  *toCompanyResponse(c),
			Products: items,
		})
	}
	return out, nil
}

// Update altera descrição, código parcial e referência de um produto.
func (uc *ProductUseCase) Update(userID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.ownedProduct(userID, id)
	if err != nil || product == nil {
		return nil, err
	}
	if in.Name != product.Name {
		dup, err := uc.products.GetByName(product.CompanyID, in.Name)
		if err != nil {
			return nil, err
		}
		if dup != nil && dup.ID != id {
			return nil, domain.ErrDuplicate
		}
	}
	product.Name = in.Name
	product.MAPARegistration = in.MAPARegistration
	product.Reference = in.Reference
	product.UpdatedAt = time.Now()
	if err := uc.products.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete remove um produto do catálogo do usuário.
func (uc *ProductUseCase) Delete(userID, id string) error {
	product, err := uc.ownedProduct(userID, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.products.Delete(id)
}

func (uc *ProductUseCase) ownedProduct(userID, id string) (*entity.Product, error) {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	company, err := uc.companies.GetByID(product.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil || company.UserID != userID {
		return nil, nil
	}
	return product, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:               p.ID,
		CompanyID:        p.CompanyID,
		Name:             p.Name,
		MAPARegistration: p.MAPARegistration,
		Reference:        p.Reference,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
