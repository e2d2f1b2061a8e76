package upload_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrofiscal/mapa-api/internal/application/dto"
	"github.com/agrofiscal/mapa-api/internal/application/upload"
	"github.com/agrofiscal/mapa-api/internal/domain"
	"github.com/agrofiscal/mapa-api/internal/domain/entity"
	"github.com/agrofiscal/mapa-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória
// ──────────────────────────────────────────────────────────────────────────────

type fakeUploadRepo struct {
	records map[string]*entity.NFeUpload
	failOn  string // userID cujo Create deve falhar
}

func newFakeUploadRepo() *fakeUploadRepo {
	return &fakeUploadRepo{records: make(map[string]*entity.NFeUpload)}
}

func (f *fakeUploadRepo) Create(u *entity.NFeUpload) error {
	if f.failOn != "" && u.UserID == f.failOn {
		return fmt.Errorf("insert upload: falha simulada")
	}
	f.records[u.ID] = u
	return nil
}
func (f *fakeUploadRepo) GetByID(id string) (*entity.NFeUpload, error) { return f.records[id], nil }
func (f *fakeUploadRepo) GetByAccessKey(userID, accessKey string) (*entity.NFeUpload, error) {
	for _, r := range f.records {
		if r.UserID == userID && r.AccessKey == accessKey {
			return r, nil
		}
	}
	return nil, nil
}
func (f *fakeUploadRepo) ListByPeriod(string, string) ([]*entity.NFeUpload, error) { return nil, nil }
func (f *fakeUploadRepo) List(userID string, _, _ int) ([]*entity.NFeUpload, error) {
	var out []*entity.NFeUpload
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}
func (f *fakeUploadRepo) Update(u *entity.NFeUpload) error { f.records[u.ID] = u; return nil }
func (f *fakeUploadRepo) Delete(id string) error           { delete(f.records, id); return nil }

type fakeStore struct {
	files   map[string][]byte
	removed []string
}

func newFakeStore() *fakeStore { return &fakeStore{files: make(map[string][]byte)} }

func (f *fakeStore) Save(userID, filename string, data []byte) (string, error) {
	path := userID + "/" + filename
	f.files[path] = data
	return path, nil
}
func (f *fakeStore) Read(path string) ([]byte, error) { return f.files[path], nil }
func (f *fakeStore) Remove(path string) error {
	delete(f.files, path)
	f.removed = append(f.removed, path)
	return nil
}

// nfeXML monta uma NF-e mínima com a chave e data de emissão dadas.
func nfeXML(accessKey, dhEmi string) []byte {
	return []byte(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<NFe xmlns="http://www.portalfiscal.inf.br/nfe">
  <infNFe Id="NFe%s" versao="4.00">
    <ide><nNF>1234</nNF><serie>1</serie><dhEmi>%s</dhEmi></ide>
    <emit><xNome>FERTILIZANTES ACME LTDA</xNome></emit>
    <det nItem="1"><prod><xProd>UREIA</xProd><uCom>KG</uCom><qCom>500</qCom></prod></det>
  </infNFe>
</NFe>`, accessKey, dhEmi))
}

const testAccessKey = "41250312345678000190550010000012341000012349"

func buildUploadUC(repo *fakeUploadRepo, store *fakeStore) *upload.UploadUseCase {
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	return upload.NewUploadUseCase(repo, store, 10*1024*1024, log)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Upload
// ──────────────────────────────────────────────────────────────────────────────

func TestUpload_DerivaTrimestreDaEmissao(t *testing.T) {
	repo, store := newFakeUploadRepo(), newFakeStore()
	uc := buildUploadUC(repo, store)

	out, err := uc.Upload("user-1", "nota.xml", nfeXML(testAccessKey, "2025-03-15T10:00:00-03:00"))
	require.NoError(t, err)

	assert.Equal(t, "Q1-2025", out.Period, "emissão em março deriva Q1")
	assert.Equal(t, entity.UploadStatusProcessed, out.Status)
	assert.Equal(t, testAccessKey, out.AccessKey)
	assert.Len(t, store.files, 1, "o XML original deve ser arquivado")
}

func TestUpload_ChaveDuplicadaRejeitada(t *testing.T) {
	repo, store := newFakeUploadRepo(), newFakeStore()
	uc := buildUploadUC(repo, store)

	_, err := uc.Upload("user-1", "nota.xml", nfeXML(testAccessKey, "2025-03-15T10:00:00-03:00"))
	require.NoError(t, err)

	_, err = uc.Upload("user-1", "outra.xml", nfeXML(testAccessKey, "2025-03-16T10:00:00-03:00"))
	assert.ErrorIs(t, err, domain.ErrDuplicateNFe)
	assert.Len(t, store.files, 1, "o duplicado não deve ser arquivado")

	// A mesma chave em outro usuário não conta como duplicada.
	_, err = uc.Upload("user-2", "nota.xml", nfeXML(testAccessKey, "2025-03-15T10:00:00-03:00"))
	assert.NoError(t, err)
}

func TestUpload_SemDataDeEmissaoFicaPendente(t *testing.T) {
	repo, store := newFakeUploadRepo(), newFakeStore()
	uc := buildUploadUC(repo, store)

	out, err := uc.Upload("user-1", "nota.xml", nfeXML(testAccessKey, ""))
	require.NoError(t, err)

	assert.Equal(t, entity.UploadStatusPending, out.Status)
	assert.Empty(t, out.Period)
}

func TestUpload_ArquivoInvalido(t *testing.T) {
	repo, store := newFakeUploadRepo(), newFakeStore()
	uc := buildUploadUC(repo, store)

	_, err := uc.Upload("user-1", "nota.txt", []byte("não é xml"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Upload("user-1", "nota.xml", []byte("<outro><doc/></outro>"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "XML sem namespace de NF-e deve ser rejeitado")
}

func TestUpload_InsertFalhouRemoveArquivoOrfao(t *testing.T) {
	repo, store := newFakeUploadRepo(), newFakeStore()
	repo.failOn = "user-1"
	uc := buildUploadUC(repo, store)

	_, err := uc.Upload("user-1", "nota.xml", nfeXML(testAccessKey, "2025-03-15T10:00:00-03:00"))
	require.Error(t, err)
	assert.Empty(t, store.files, "falha no insert não pode deixar arquivo órfão")
	assert.Len(t, store.removed, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests UpdatePeriod / Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdatePeriod_PendenteVaiParaProcessado(t *testing.T) {
	repo, store := newFakeUploadRepo(), newFakeStore()
	uc := buildUploadUC(repo, store)

	created, err := uc.Upload("user-1", "nota.xml", nfeXML(testAccessKey, ""))
	require.NoError(t, err)
	require.Equal(t, entity.UploadStatusPending, created.Status)

	out, err := uc.UpdatePeriod("user-1", created.ID, dto.UpdateUploadPeriodRequest{Period: "Q2-2025"})
	require.NoError(t, err)
	assert.Equal(t, "Q2-2025", out.Period)
	assert.Equal(t, entity.UploadStatusProcessed, out.Status)
}

func TestUpdatePeriod_FormatoInvalido(t *testing.T) {
	repo, store := newFakeUploadRepo(), newFakeStore()
	uc := buildUploadUC(repo, store)

	_, err := uc.UpdatePeriod("user-1", "qualquer", dto.UpdateUploadPeriodRequest{Period: "T1/2025"})
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestDelete_RemoveRegistroEArquivo(t *testing.T) {
	repo, store := newFakeUploadRepo(), newFakeStore()
	uc := buildUploadUC(repo, store)

	created, err := uc.Upload("user-1", "nota.xml", nfeXML(testAccessKey, "2025-03-15T10:00:00-03:00"))
	require.NoError(t, err)

	// Outro usuário não pode remover.
	err = uc.Delete("user-2", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, uc.Delete("user-1", created.ID))
	assert.Empty(t, repo.records)
	assert.Empty(t, store.files)
}
