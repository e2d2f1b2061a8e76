package repository

import "github.com/agrofiscal/mapa-api/internal/domain/entity"

// ReportRepository define o porto de persistência do histórico de relatórios
// gerados.
type ReportRepository interface {
	Create(report *entity.Report) error
	GetByID(id string) (*entity.Report, error)
	ListByUser(userID string, limit, offset int) ([]*entity.Report, error)
	Delete(id string) error
}
