package repository

import "github.com/agrofiscal/mapa-api/internal/domain/entity"

// UploadRepository define o porto de persistência dos XMLs de NF-e enviados.
type UploadRepository interface {
	Create(upload *entity.NFeUpload) error
	GetByID(id string) (*entity.NFeUpload, error)
	// GetByAccessKey localiza um envio anterior pela chave de acesso,
	// dentro do escopo do usuário. Base da deduplicação de uploads.
	GetByAccessKey(userID, accessKey string) (*entity.NFeUpload, error)
	ListByPeriod(userID string, period string) ([]*entity.NFeUpload, error)
	List(userID string, limit, offset int) ([]*entity.NFeUpload, error)
	Update(upload *entity.NFeUpload) error
	Delete(id string) error
}
