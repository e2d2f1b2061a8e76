package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrofiscal/mapa-api/internal/domain"
	"github.com/agrofiscal/mapa-api/internal/domain/entity"
	"github.com/agrofiscal/mapa-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementação do porto ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
}

// NewProductRepository constrói o adaptador de persistência do catálogo de produtos.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

const productColumns = `id, company_id, name, mapa_registration, reference, created_at, updated_at`

// Create persiste um novo produto do catálogo.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO catalog_products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(context.Background(), query,
		product.ID, product.CompanyID, product.Name, product.MAPARegistration,
		product.Reference, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtém um produto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM catalog_products WHERE id = $1`
	var p entity.Product
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.MAPARegistration, &p.Reference, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// GetByName obtém um produto de uma empresa pela descrição, insensível a caixa.
func (r *ProductRepo) GetByName(companyID, name string) (*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM catalog_products
		WHERE company_id = $1 AND lower(name) = lower(trim($2))`
	var p entity.Product
	err := r.pool.QueryRow(context.Background(), query, companyID, name).Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.MAPARegistration, &p.Reference, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by name: %w", err)
	}
	return &p, nil
}

// ListByCompany pagina os produtos de uma empresa do catálogo.
func (r *ProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM catalog_products
		WHERE company_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3`
	return r.queryMany(query, companyID, limit, offset)
}

// ListAllByUser devolve todos os produtos de todas as empresas do usuário,
// para o snapshot do processamento.
func (r *ProductRepo) ListAllByUser(userID string) ([]*entity.Product, error) {
	query := `
		SELECT p.id, p.company_id, p.name, p.mapa_registration, p.reference, p.created_at, p.updated_at
		FROM catalog_products p
		JOIN catalog_companies c ON c.id = p.company_id
		WHERE c.user_id = $1
		ORDER BY p.name`
	return r.queryMany(query, userID)
}

// Update atualiza um produto do catálogo.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE catalog_products
		SET name = $2, mapa_registration = $3, reference = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		product.ID, product.Name, product.MAPARegistration, product.Reference, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete remove um produto do catálogo.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM catalog_products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) queryMany(query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Name, &p.MAPARegistration, &p.Reference, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
