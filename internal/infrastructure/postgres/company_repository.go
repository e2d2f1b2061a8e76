package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrofiscal/mapa-api/internal/domain"
	"github.com/agrofiscal/mapa-api/internal/domain/entity"
	"github.com/agrofiscal/mapa-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementação do porto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository constrói o adaptador de persistência do catálogo de empresas.
func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepo {
	return &CompanyRepo{pool: pool}
}

const companyColumns = `id, user_id, name, mapa_registration, created_at, updated_at`

// Create persiste uma nova empresa do catálogo.
func (r *CompanyRepo) Create(company *entity.Company) error {
	query := `
		INSERT INTO catalog_companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(context.Background(), query,
		company.ID, company.UserID, company.Name, company.MAPARegistration,
		company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtém uma empresa por ID.
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM catalog_companies WHERE id = $1`
	var c entity.Company
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.UserID, &c.Name, &c.MAPARegistration, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// GetByName obtém uma empresa do catálogo do usuário pelo nome.
// A comparação é insensível a caixa, igual à resolução do processamento.
func (r *CompanyRepo) GetByName(userID, name string) (*entity.Company, error) {
	query := `
		SELECT ` + companyColumns + `
		FROM catalog_companies
		WHERE user_id = $1 AND lower(name) = lower(trim($2))`
	var c entity.Company
	err := r.pool.QueryRow(context.Background(), query, userID, name).Scan(
		&c.ID, &c.UserID, &c.Name, &c.MAPARegistration, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company by name: %w", err)
	}
	return &c, nil
}

// List pagina as empresas do catálogo do usuário.
func (r *CompanyRepo) List(userID string, limit, offset int) ([]*entity.Company, error) {
	query := `
		SELECT ` + companyColumns + `
		FROM catalog_companies
		WHERE user_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3`
	return r.queryMany(query, userID, limit, offset)
}

// ListAll devolve o catálogo inteiro do usuário, para o snapshot do processamento.
func (r *CompanyRepo) ListAll(userID string) ([]*entity.Company, error) {
	query := `
		SELECT ` + companyColumns + `
		FROM catalog_companies
		WHERE user_id = $1
		ORDER BY name`
	return r.queryMany(query, userID)
}

// Update atualiza uma empresa do catálogo.
func (r *CompanyRepo) Update(company *entity.Company) error {
	query := `
		UPDATE catalog_companies
		SET name = $2, mapa_registration = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		company.ID, company.Name, company.MAPARegistration, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// Delete remove uma empresa do catálogo. Os produtos caem junto por FK.
func (r *CompanyRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM catalog_companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	return nil
}

func (r *CompanyRepo) queryMany(query string, args ...any) ([]*entity.Company, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var out []*entity.Company
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.MAPARegistration, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
