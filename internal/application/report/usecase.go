// Package report orquestra o processamento trimestral: relê os XMLs
// arquivados do período, monta o snapshot do catálogo, executa o motor de
// agregação e materializa o resultado em resposta, PDF ou planilha.
package report

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

// ReportUseCase casos de uso do relatório trimestral MAPA.
type ReportUseCase struct {
	uploads   repository.UploadRepository
	companies repository.CompanyRepository
	products  repository.ProductRepository
	reports   repository.ReportRepository
	users     repository.UserRepository
	reader    FileReader
	pdf       PDFGenerator
	xlsx      XLSXGenerator
	log       *logger.Logger
}

// NewReportUseCase constrói o caso de uso de relatórios.
func NewReportUseCase(
	uploads repository.UploadRepository,
	companies repository.CompanyRepository,
	products repository.ProductRepository,
	reports repository.ReportRepository,
	users repository.UserRepository,
	reader FileReader,
	pdf PDFGenerator,
	xlsx XLSXGenerator,
	log *logger.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		uploads:   uploads,
		companies: companies,
		products:  products,
		reports:   reports,
		users:     users,
		reader:    reader,
		pdf:       pdf,
		xlsx:      xlsx,
		log:       log,
	}
}

// Process executa o motor de agregação para um trimestre. Sucesso persiste
// uma entrada no histórico; falha devolve a lista completa de pendências de
// cadastro sem persistir nada.
func (uc *ReportUseCase) Process(userID string, in dto.ProcessRequest) (*dto.ProcessResponse, error) {
	period, err := mapa.ParsePeriod(in.Period)
	if err != nil {
		return nil, err
	}

	nfes, err := uc.loadNFes(userID, period)
	if err != nil {
		return nil, err
	}

	result, err := uc.run(userID, nfes)
	if err != nil {
		return nil, err
	}

	resp := toProcessResponse(period, result)

	if result.OK() {
		rep := &entity.Report{
			ID:          uuid.New().String(),
			UserID:      userID,
			Period:      string(period),
			TotalNFes:   result.TotalNFes(),
			GeneratedAt: time.Now(),
		}
		if err := uc.reports.Create(rep); err != nil {
			return nil, err
		}
		resp.ReportID = rep.ID

		uc.log.Info().
			Str("user_id", userID).
			Str("period", string(period)).
			Int("nfes", result.TotalNFes()).
			Int("rows", len(result.Rows())).
			Msg("relatório processado")
	} else {
		uc.log.Warn().
			Str("user_id", userID).
			Str("period", string(period)).
			Int("pendências", len(result.Unregistered())).
			Msg("processamento com pendências de cadastro")
	}

	return resp, nil
}

// GeneratePDF processa o trimestre e renderiza o PDF do relatório.
// Pendências de cadastro devolvem ErrConflict: não existe PDF parcial.
func (uc *ReportUseCase) GeneratePDF(userID, period string) ([]byte, error) {
	data, err := uc.reportData(userID, period)
	if err != nil {
		return nil, err
	}
	return uc.pdf.Generate(data)
}

// GenerateXLSX processa o trimestre e renderiza a planilha de declaração.
func (uc *ReportUseCase) GenerateXLSX(userID, period string) ([]byte, error) {
	data, err := uc.reportData(userID, period)
	if err != nil {
		return nil, err
	}
	return uc.xlsx.Generate(data)
}

// ListReports pagina o histórico de relatórios gerados pelo usuário.
func (uc *ReportUseCase) ListReports(userID string, page dto.PageRequest) ([]*dto.ReportResponse, error) {
	page.DefaultPage()
	reports, err := uc.reports.ListByUser(userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ReportResponse, 0, len(reports))
	for _, r := range reports {
		out = append(out, &dto.ReportResponse{
			ID:          r.ID,
			Period:      r.Period,
			TotalNFes:   r.TotalNFes,
			GeneratedAt: r.GeneratedAt,
		})
	}
	return out, nil
}

// DeleteReport remove uma entrada do histórico do usuário.
func (uc *ReportUseCase) DeleteReport(userID, id string) error {
	rep, err := uc.reports.GetByID(id)
	if err != nil {
		return err
	}
	if rep == nil || rep.UserID != userID {
		return domain.ErrNotFound
	}
	return uc.reports.Delete(id)
}

// loadNFes relê e parseia os XMLs arquivados do trimestre.
// Trimestre sem nenhum envio devolve ErrInvalidInput.
func (uc *ReportUseCase) loadNFes(userID string, period mapa.Period) ([]*entity.NFe, error) {
	records, err := uc.uploads.ListByPeriod(userID, string(period))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: nenhum XML enviado para %s", domain.ErrInvalidInput, period)
	}
	nfes := make([]*entity.NFe, 0, len(records))
	for _, rec := range records {
		raw, err := uc.reader.Read(rec.StoredPath)
		if err != nil {
			return nil, fmt.Errorf("reler upload %s: %w", rec.ID, err)
		}
		doc, err := nfe.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", rec.Filename, err)
		}
		nfes = append(nfes, doc)
	}
	return nfes, nil
}

// run monta o snapshot do catálogo e executa o motor.
func (uc *ReportUseCase) run(userID string, nfes []*entity.NFe) (*mapa.Result, error) {
	companies, err := uc.companies.ListAll(userID)
	if err != nil {
		return nil, err
	}
	products, err := uc.products.ListAllByUser(userID)
	if err != nil {
		return nil, err
	}
	index := mapa.BuildIndex(companies, products)
	return mapa.NewProcessor(index).Process(nfes), nil
}

// reportData processa o trimestre e prepara o insumo dos geradores.
func (uc *ReportUseCase) reportData(userID, rawPeriod string) (*ReportData, error) {
	period, err := mapa.ParsePeriod(rawPeriod)
	if err != nil {
		return nil, err
	}
	nfes, err := uc.loadNFes(userID, period)
	if err != nil {
		return nil, err
	}
	result, err := uc.run(userID, nfes)
	if err != nil {
		return nil, err
	}
	if !result.OK() {
		return nil, fmt.Errorf("%w: %s", domain.ErrConflict, result.Summary())
	}
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return &ReportData{
		Period:      period,
		GeneratedAt: time.Now(),
		CompanyName: user.CompanyName,
		CNPJ:        user.CNPJ,
		TotalNFes:   result.TotalNFes(),
		Rows:        result.Rows(),
	}, nil
}

func toProcessResponse(period mapa.Period, result *mapa.Result) *dto.ProcessResponse {
	resp := &dto.ProcessResponse{
		OK:        result.OK(),
		Period:    string(period),
		TotalNFes: result.TotalNFes(),
		Summary:   result.Summary(),
	}
	for _, row := range result.Rows() {
		resp.Rows = append(resp.Rows, dto.ReportRow{
			FullRegistration: row.Key.String(),
			ProductName:      row.ProductName,
			ProductReference: row.ProductReference,
			Unit:             row.Unit,
			QuantityImport:   mapa.FormatQuantity(row.QuantityImport),
			QuantityDomestic: mapa.FormatQuantity(row.QuantityDomestic),
			QuantityTotal:    mapa.FormatQuantity(row.Total()),
			SourceNFes:       row.SourceNFes,
		})
	}
	for _, e := range result.Unregistered() {
		// Pendências reportam a quantidade original da nota, sem conversão
		// nem arredondamento, para o usuário conferir contra o XML.
		resp.Unregistered = append(resp.Unregistered, dto.UnregisteredItem{
			Kind:        e.Kind,
			CompanyName: e.CompanyName,
			ProductName: e.ProductName,
			NFeNumber:   e.NFeNumber,
			Quantity:    e.Quantity.String(),
			Unit:        e.Unit,
		})
	}
	for _, w := range result.Warnings() {
		resp.Warnings = append(resp.Warnings, dto.UnitWarningItem{
			Unit:       w.Unit,
			NFeNumber:  w.NFeNumber,
			ItemNumber: w.ItemNumber,
		})
	}
	return resp
}
