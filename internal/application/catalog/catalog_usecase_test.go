package catalog_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrofiscal/mapa-api/internal/application/catalog"
	"github.com/agrofiscal/mapa-api/internal/application/dto"
	"github.com/agrofiscal/mapa-api/internal/domain"
	"github.com/agrofiscal/mapa-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória dos repositórios
// ──────────────────────────────────────────────────────────────────────────────

type fakeCompanyRepo struct {
	items map[string]*entity.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{items: make(map[string]*entity.Company)}
}

func (f *fakeCompanyRepo) Create(c *entity.Company) error { f.items[c.ID] = c; return nil }
func (f *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	return f.items[id], nil
}
func (f *fakeCompanyRepo) GetByName(userID, name string) (*entity.Company, error) {
	for _, c := range f.items {
		if c.UserID == userID && strings.EqualFold(strings.TrimSpace(c.Name), strings.TrimSpace(name)) {
			return c, nil
		}
	}
	return nil, nil
}
func (f *fakeCompanyRepo) List(userID string, _, _ int) ([]*entity.Company, error) {
	return f.ListAll(userID)
}
func (f *fakeCompanyRepo) ListAll(userID string) ([]*entity.Company, error) {
	var out []*entity.Company
	for _, c := range f.items {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}
func (f *fakeCompanyRepo) Update(c *entity.Company) error { f.items[c.ID] = c; return nil }
func (f *fakeCompanyRepo) Delete(id string) error         { delete(f.items, id); return nil }

type fakeProductRepo struct {
	companies *fakeCompanyRepo
	items     map[string]*entity.Product
}

func newFakeProductRepo(companies *fakeCompanyRepo) *fakeProductRepo {
	return &fakeProductRepo{companies: companies, items: make(map[string]*entity.Product)}
}

func (f *fakeProductRepo) Create(p *entity.Product) error { f.items[p.ID] = p; return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return f.items[id], nil
}
func (f *fakeProductRepo) GetByName(companyID, name string) (*entity.Product, error) {
	for _, p := range f.items {
		if p.CompanyID == companyID && strings.EqualFold(strings.TrimSpace(p.Name), strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return nil, nil
}
func (f *fakeProductRepo) ListByCompany(companyID string, _, _ int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.items {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (f *fakeProductRepo) ListAllByUser(userID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.items {
		company := f.companies.items[p.CompanyID]
		if company != nil && company.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (f *fakeProductRepo) Update(p *entity.Product) error { f.items[p.ID] = p; return nil }
func (f *fakeProductRepo) Delete(id string) error         { delete(f.items, id); return nil }

const (
	ownerID = "user-1"
	otherID = "user-2"
)

func buildUseCases() (*catalog.CompanyUseCase, *catalog.ProductUseCase, *fakeCompanyRepo, *fakeProductRepo) {
	companies := newFakeCompanyRepo()
	products := newFakeProductRepo(companies)
	return catalog.NewCompanyUseCase(companies), catalog.NewProductUseCase(products, companies), companies, products
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CompanyUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestCompanyCreate_NomeDuplicadoRejeitado(t *testing.T) {
	companyUC, _, _, _ := buildUseCases()

	_, err := companyUC.Create(ownerID, dto.CreateCompanyRequest{Name: "Acme Fertilizantes", MAPARegistration: "PR-100"})
	require.NoError(t, err)

	// Mesmo nome com caixa diferente ainda é duplicado.
	_, err = companyUC.Create(ownerID, dto.CreateCompanyRequest{Name: "ACME FERTILIZANTES", MAPARegistration: "PR-200"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Outro usuário pode cadastrar o mesmo nome no próprio catálogo.
	_, err = companyUC.Create(otherID, dto.CreateCompanyRequest{Name: "Acme Fertilizantes", MAPARegistration: "SP-900"})
	assert.NoError(t, err)
}

func TestCompanyGetByID_OutroUsuarioNaoEnxerga(t *testing.T) {
	companyUC, _, _, _ := buildUseCases()

	created, err := companyUC.Create(ownerID, dto.CreateCompanyRequest{Name: "Beta Agro", MAPARegistration: "SP-200"})
	require.NoError(t, err)

	mine, err := companyUC.GetByID(ownerID, created.ID)
	require.NoError(t, err)
	require.NotNil(t, mine)
	assert.Equal(t, "Beta Agro", mine.Name)

	foreign, err := companyUC.GetByID(otherID, created.ID)
	require.NoError(t, err)
	assert.Nil(t, foreign, "empresa de outro usuário deve ser invisível")
}

func TestCompanyDelete_Inexistente(t *testing.T) {
	companyUC, _, _, _ := buildUseCases()

	err := companyUC.Delete(ownerID, "nao-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ProductUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_EmpresaDeOutroUsuario(t *testing.T) {
	companyUC, productUC, _, _ := buildUseCases()

	company, err := companyUC.Create(ownerID, dto.CreateCompanyRequest{Name: "Acme", MAPARegistration: "PR-100"})
	require.NoError(t, err)

	_, err = productUC.Create(otherID, dto.CreateProductRequest{
		CompanyID:        company.ID,
		Name:             "Ureia",
		MAPARegistration: "6.01",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"cadastrar produto em empresa alheia deve falhar como não encontrada")
}

func TestProductCreate_DescricaoDuplicadaNaEmpresa(t *testing.T) {
	companyUC, productUC, _, _ := buildUseCases()

	company, err := companyUC.Create(ownerID, dto.CreateCompanyRequest{Name: "Acme", MAPARegistration: "PR-100"})
	require.NoError(t, err)

	_, err = productUC.Create(ownerID, dto.CreateProductRequest{CompanyID: company.ID, Name: "Ureia", MAPARegistration: "6.01"})
	require.NoError(t, err)

	_, err = productUC.Create(ownerID, dto.CreateProductRequest{CompanyID: company.ID, Name: "ureia", MAPARegistration: "6.02"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCatalogOverview_EmpresasComProdutosETotais(t *testing.T) {
	companyUC, productUC, _, _ := buildUseCases()

	acme, err := companyUC.Create(ownerID, dto.CreateCompanyRequest{Name: "Acme", MAPARegistration: "PR-100"})
	require.NoError(t, err)
	beta, err := companyUC.Create(ownerID, dto.CreateCompanyRequest{Name: "Beta", MAPARegistration: "SP-200"})
	require.NoError(t, err)

	_, err = productUC.Create(ownerID, dto.CreateProductRequest{CompanyID: acme.ID, Name: "Ureia", MAPARegistration: "6.01"})
	require.NoError(t, err)
	_, err = productUC.Create(ownerID, dto.CreateProductRequest{CompanyID: acme.ID, Name: "Cloreto de Potássio", MAPARegistration: "7.02"})
	require.NoError(t, err)

	overview, err := productUC.Overview(ownerID)
	require.NoError(t, err)

	assert.Equal(t, 2, overview.TotalCompanies)
	assert.Equal(t, 2, overview.TotalProducts)
	require.Len(t, overview.Companies, 2)

	for _, c := range overview.Companies {
		switch c.Company.ID {
		case acme.ID:
			assert.Len(t, c.Products, 2)
		case beta.ID:
			assert.Empty(t, c.Products, "empresa sem produtos aparece com lista vazia")
		default:
			t.Fatalf("empresa inesperada no overview: %s", c.Company.ID)
		}
	}

	// O catálogo de outro usuário fica de fora.
	foreign, err := productUC.Overview(otherID)
	require.NoError(t, err)
	assert.Zero(t, foreign.TotalCompanies)
}
