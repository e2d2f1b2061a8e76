package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrofiscal/mapa-api/internal/domain"
	"github.com/agrofiscal/mapa-api/internal/domain/entity"
	"github.com/agrofiscal/mapa-api/internal/domain/repository"
)

var _ repository.UploadRepository = (*UploadRepo)(nil)

// UploadRepo implementação do porto UploadRepository sobre PostgreSQL.
type UploadRepo struct {
	pool *pgxpool.Pool
}

// NewUploadRepository constrói o adaptador de persistência dos uploads de NF-e.
func NewUploadRepository(pool *pgxpool.Pool) *UploadRepo {
	return &UploadRepo{pool: pool}
}

const uploadColumns = `id, user_id, filename, stored_path, access_key, period, status, error_message, uploaded_at`

// Create persiste um novo upload. Chave de acesso repetida para o mesmo
// usuário devolve ErrDuplicateNFe (constraint única parcial em access_key).
func (r *UploadRepo) Create(upload *entity.NFeUpload) error {
	query := `
		INSERT INTO nfe_uploads (` + uploadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(context.Background(), query,
		upload.ID, upload.UserID, upload.Filename, upload.StoredPath, upload.AccessKey,
		upload.Period, upload.Status, upload.ErrorMessage, upload.UploadedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateNFe
		}
		return fmt.Errorf("insert upload: %w", err)
	}
	return nil
}

// GetByID obtém um upload por ID.
func (r *UploadRepo) GetByID(id string) (*entity.NFeUpload, error) {
	return r.getOne(`SELECT `+uploadColumns+` FROM nfe_uploads WHERE id = $1`, id)
}

// GetByAccessKey localiza um envio anterior pela chave de acesso do usuário.
func (r *UploadRepo) GetByAccessKey(userID, accessKey string) (*entity.NFeUpload, error) {
	query := `SELECT ` + uploadColumns + ` FROM nfe_uploads WHERE user_id = $1 AND access_key = $2`
	return r.getOne(query, userID, accessKey)
}

// ListByPeriod devolve todos os envios de um trimestre, na ordem de chegada.
func (r *UploadRepo) ListByPeriod(userID string, period string) ([]*entity.NFeUpload, error) {
	query := `
		SELECT ` + uploadColumns + `
		FROM nfe_uploads
		WHERE user_id = $1 AND period = $2
		ORDER BY uploaded_at`
	return r.queryMany(query, userID, period)
}

// List pagina os envios do usuário, mais recentes primeiro.
func (r *UploadRepo) List(userID string, limit, offset int) ([]*entity.NFeUpload, error) {
	query := `
		SELECT ` + uploadColumns + `
		FROM nfe_uploads
		WHERE user_id = $1
		ORDER BY uploaded_at DESC
		LIMIT $2 OFFSET $3`
	return r.queryMany(query, userID, limit, offset)
}

// Update atualiza período, status e mensagem de erro de um envio.
func (r *UploadRepo) Update(upload *entity.NFeUpload) error {
	query := `
		UPDATE nfe_uploads
		SET period = $2, status = $3, error_message = $4
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		upload.ID, upload.Period, upload.Status, upload.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("update upload: %w", err)
	}
	return nil
}

// Delete remove um envio.
func (r *UploadRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM nfe_uploads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete upload: %w", err)
	}
	return nil
}

func (r *UploadRepo) getOne(query string, args ...any) (*entity.NFeUpload, error) {
	var u entity.NFeUpload
	err := r.pool.QueryRow(context.Background(), query, args...).Scan(
		&u.ID, &u.UserID, &u.Filename, &u.StoredPath, &u.AccessKey,
		&u.Period, &u.Status, &u.ErrorMessage, &u.UploadedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get upload: %w", err)
	}
	return &u, nil
}

func (r *UploadRepo) queryMany(query string, args ...any) ([]*entity.NFeUpload, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	defer rows.Close()

	var out []*entity.NFeUpload
	for rows.Next() {
		var u entity.NFeUpload
		if err := rows.Scan(&u.ID, &u.UserID, &u.Filename, &u.StoredPath, &u.AccessKey,
			&u.Period, &u.Status, &u.ErrorMessage, &u.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan upload: %w", err)
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}
