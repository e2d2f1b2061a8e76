package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrofiscal/mapa-api/internal/domain/entity"
	"github.com/agrofiscal/mapa-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo implementação do porto ReportRepository sobre PostgreSQL.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository constrói o adaptador de persistência do histórico de relatórios.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// Create persiste uma entrada no histórico.
func (r *ReportRepo) Create(report *entity.Report) error {
	query := `
		INSERT INTO reports (id, user_id, period, total_nfes, generated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(context.Background(), query,
		report.ID, report.UserID, report.Period, report.TotalNFes, report.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

// GetByID obtém uma entrada do histórico por ID.
func (r *ReportRepo) GetByID(id string) (*entity.Report, error) {
	query := `SELECT id, user_id, period, total_nfes, generated_at FROM reports WHERE id = $1`
	var rep entity.Report
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&rep.ID, &rep.UserID, &rep.Period, &rep.TotalNFes, &rep.GeneratedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get report: %w", err)
	}
	return &rep, nil
}

// ListByUser pagina o histórico do usuário, mais recentes primeiro.
func (r *ReportRepo) ListByUser(userID string, limit, offset int) ([]*entity.Report, error) {
	query := `
		SELECT id, user_id, period, total_nfes, generated_at
		FROM reports
		WHERE user_id = $1
		ORDER BY generated_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var out []*entity.Report
	for rows.Next() {
		var rep entity.Report
		if err := rows.Scan(&rep.ID, &rep.UserID, &rep.Period, &rep.TotalNFes, &rep.GeneratedAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		out = append(out, &rep)
	}
	return out, rows.Err()
}

// Delete remove uma entrada do histórico.
func (r *ReportRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	return nil
}
