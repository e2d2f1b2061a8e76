package excel_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/agrofiscal/mapa-api/internal/application/report"
	"github.com/agrofiscal/mapa-api/internal/domain/mapa"
	"github.com/agrofiscal/mapa-api/internal/infrastructure/excel"
)

func sampleData() *report.ReportData {
	return &report.ReportData{
		Period:      mapa.Period("Q1-2025"),
		GeneratedAt: time.Date(2025, 4, 10, 9, 30, 0, 0, time.UTC),
		CompanyName: "AGRO DECLARANTE LTDA",
		CNPJ:        "12.345.678/0001-90",
		TotalNFes:   2,
		Rows: []*mapa.AggregatedRow{
			{
				Key:              mapa.NewRegistrationKey("PR-100", "6.01"),
				ProductName:      "Ureia",
				ProductReference: "Ureia 45-00-00",
				Unit:             mapa.CanonicalUnit,
				QuantityImport:   decimal.NewFromInt(2),
				QuantityDomestic: decimal.RequireFromString("0.5"),
				SourceNFes:       []string{"1234", "5678"},
			},
		},
	}
}

func TestGenerate_PlanilhaNoLayoutOficial(t *testing.T) {
	out, err := excel.NewExcelizeReportGenerator().Generate(sampleData())
	require.NoError(t, err)
	require.NotEmpty(t, out)

	// Reabrir a planilha gerada e conferir o layout.
	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	const sheet = "Relatório MAPA"
	require.Contains(t, f.GetSheetList(), sheet, "a planilha oficial deve existir")

	title, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "MINISTÉRIO DA AGRICULTURA, PECUÁRIA E ABASTECIMENTO", title)

	header, err := f.GetCellValue(sheet, "A14")
	require.NoError(t, err)
	assert.Equal(t, "Material/Produto", header, "cabeçalhos de coluna na linha 14")

	reg, err := f.GetCellValue(sheet, "B15")
	require.NoError(t, err)
	assert.Equal(t, "PR-100-6.01", reg, "dados a partir da linha 15")

	sources, err := f.GetCellValue(sheet, "H15")
	require.NoError(t, err)
	assert.Equal(t, "1234, 5678", sources)
}

func TestGenerate_SemLinhas(t *testing.T) {
	data := sampleData()
	data.Rows = nil

	out, err := excel.NewExcelizeReportGenerator().Generate(data)
	require.NoError(t, err, "relatório de trimestre sem movimentação ainda gera a planilha")
	assert.NotEmpty(t, out)
}
