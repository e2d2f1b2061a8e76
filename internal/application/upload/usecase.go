package upload

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agrofiscal/mapa-api/internal/application/dto"
	"github.com/agrofiscal/mapa-api/internal/domain"
	"github.com/agrofiscal/mapa-api/internal/domain/entity"
	"github.com/agrofiscal/mapa-api/internal/domain/mapa"
	"github.com/agrofiscal/mapa-api/internal/domain/nfe"
	"github.com/agrofiscal/mapa-api/internal/domain/repository"
	"github.com/agrofiscal/mapa-api/pkg/logger"
)

// UploadUseCase recebe XMLs de NF-e: valida, deduplica pela chave de acesso,
// deriva o trimestre da data de emissão e arquiva o original para o
// processamento posterior.
type UploadUseCase struct {
	uploads repository.UploadRepository
	store   FileStore
	maxSize int64
	log     *logger.Logger
}

// NewUploadUseCase constrói o caso de uso de uploads.
func NewUploadUseCase(uploads repository.UploadRepository, store FileStore, maxSize int64, log *logger.Logger) *UploadUseCase {
	return &UploadUseCase{uploads: uploads, store: store, maxSize: maxSize, log: log}
}

// Upload processa um arquivo enviado. O XML é parseado imediatamente para
// extrair a chave de acesso (deduplicação) e a data de emissão (derivação do
// trimestre); NF-e já enviada devolve ErrDuplicateNFe. Nota sem data de
// emissão fica pendente até o usuário informar o período manualmente.
func (uc *UploadUseCase) Upload(userID, filename string, data []byte) (*dto.UploadResponse, error) {
	if err := ValidateFile(filename, data, uc.maxSize); err != nil {
		return nil, err
	}
	safeName := SanitizeFilename(filename)

	doc, parseErr := nfe.Parse(data)
	if parseErr != nil {
		return nil, parseErr
	}

	// Verificação informativa de integridade: digest divergente gera alerta
	// no log, nunca rejeita o envio (a validade jurídica é da SEFAZ).
	if nfe.CheckSignatureDigest(data) == nfe.SignatureDigestMismatch {
		uc.log.Warn().
			Str("user_id", userID).
			Str("access_key", doc.AccessKey).
			Msg("digest da assinatura não confere com o conteúdo do XML")
	}

	if doc.AccessKey != "" {
		existing, err := uc.uploads.GetByAccessKey(userID, doc.AccessKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: chave %s", domain.ErrDuplicateNFe, doc.AccessKey)
		}
	}

	storedPath, err := uc.store.Save(userID, safeName, data)
	if err != nil {
		return nil, fmt.Errorf("armazenar upload: %w", err)
	}

	record := &entity.NFeUpload{
		ID:         uuid.New().String(),
		UserID:     userID,
		Filename:   safeName,
		StoredPath: storedPath,
		AccessKey:  doc.AccessKey,
		Status:     entity.UploadStatusProcessed,
		UploadedAt: time.Now(),
	}
	if doc.IssuedAt != nil {
		record.Period = string(mapa.PeriodFromDate(*doc.IssuedAt))
	} else {
		record.Status = entity.UploadStatusPending
	}

	if err := uc.uploads.Create(record); err != nil {
		// Best effort: não deixar arquivo órfão quando o insert falha.
		if rmErr := uc.store.Remove(storedPath); rmErr != nil {
			uc.log.Warn().Err(rmErr).Str("path", storedPath).Msg("falha ao remover arquivo órfão")
		}
		return nil, err
	}

	uc.log.Info().
		Str("user_id", userID).
		Str("access_key", doc.AccessKey).
		Str("period", record.Period).
		Msg("nfe recebida")

	return toUploadResponse(record), nil
}

// Get devolve um envio do usuário; nil quando inexistente ou de outro usuário.
func (uc *UploadUseCase) Get(userID, id string) (*dto.UploadResponse, error) {
	record, err := uc.ownedUpload(userID, id)
	if err != nil || record == nil {
		return nil, err
	}
	return toUploadResponse(record), nil
}

// List pagina os envios do usuário.
func (uc *UploadUseCase) List(userID string, page dto.PageRequest) ([]*dto.UploadResponse, error) {
	page.DefaultPage()
	records, err := uc.uploads.List(userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UploadResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toUploadResponse(r))
	}
	return out, nil
}

// UpdatePeriod corrige o trimestre de um envio (notas sem data de emissão,
// ou emitidas fora do trimestre declarado).
func (uc *UploadUseCase) UpdatePeriod(userID, id string, in dto.UpdateUploadPeriodRequest) (*dto.UploadResponse, error) {
	period, err := mapa.ParsePeriod(in.Period)
	if err != nil {
		return nil, err
	}
	record, err := uc.ownedUpload(userID, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	record.Period = string(period)
	if record.Status == entity.UploadStatusPending {
		record.Status = entity.UploadStatusProcessed
	}
	if err := uc.uploads.Update(record); err != nil {
		return nil, err
	}
	return toUploadResponse(record), nil
}

// Delete remove o envio e o arquivo arquivado.
func (uc *UploadUseCase) Delete(userID, id string) error {
	record, err := uc.ownedUpload(userID, id)
	if err != nil {
		return err
	}
	if record == nil {
		return domain.ErrNotFound
	}
	if err := uc.uploads.Delete(id); err != nil {
		return err
	}
	if err := uc.store.Remove(record.StoredPath); err != nil {
		uc.log.Warn().Err(err).Str("path", record.StoredPath).Msg("falha ao remover arquivo do upload")
	}
	return nil
}

func (uc *UploadUseCase) ownedUpload(userID, id string) (*entity.NFeUpload, error) {
	record, err := uc.uploads.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil || record.UserID != userID {
		return nil, nil
	}
	return record, nil
}

func toUploadResponse(u *entity.NFeUpload) *dto.UploadResponse {
	return &dto.UploadResponse{
		ID:           u.ID,
		Filename:     u.Filename,
		AccessKey:    u.AccessKey,
		Period:       u.Period,
		Status:       u.Status,
		ErrorMessage: u.ErrorMessage,
		UploadedAt:   u.UploadedAt,
	}
}
