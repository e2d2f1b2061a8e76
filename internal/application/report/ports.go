package report

import (
	"time"

	"github.com/agrofiscal/mapa-api/internal/domain/mapa"
)

// ReportData é o insumo dos geradores de arquivo: o resultado agregado de um
// trimestre mais a identificação do declarante.
type ReportData struct {
	Period      mapa.Period
	GeneratedAt time.Time
	CompanyName string
	CNPJ        string
	TotalNFes   int
	Rows        []*mapa.AggregatedRow
}

// FileReader relê um XML arquivado pelo caminho interno do upload.
type FileReader interface {
	Read(storedPath string) ([]byte, error)
}

// PDFGenerator porto do render do relatório em PDF.
type PDFGenerator interface {
	Generate(data *ReportData) ([]byte, error)
}

// XLSXGenerator porto do render da planilha oficial de declaração.
type XLSXGenerator interface {
	Generate(data *ReportData) ([]byte, error)
}
