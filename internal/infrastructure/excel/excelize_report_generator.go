// Package excel renderiza a planilha de declaração trimestral no layout
// oficial do Ministério da Agricultura: cabeçalho institucional nas linhas
// 1 a 10, cabeçalhos de coluna na linha 14 e dados a partir da linha 15.
package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/agrofiscal/mapa-api/internal/application/report"
)

const sheetName = "Relatório MAPA"

var columnHeaders = []string{
	"Material/Produto",
	"Nº Registro MAPA",
	"Referência",
	"Unidade",
	"Compra Nacional (Ton)",
	"Compra Importada (Ton)",
	"Total (Ton)",
	"NF-es Origem",
}

var columnWidths = map[string]float64{
	"A": 25, "B": 20, "C": 30, "D": 12,
	"E": 18, "F": 18, "G": 15, "H": 30,
}

var _ report.XLSXGenerator = (*ExcelizeReportGenerator)(nil)

// ExcelizeReportGenerator implementa report.XLSXGenerator usando excelize.
type ExcelizeReportGenerator struct{}

// NewExcelizeReportGenerator constrói o gerador.
func NewExcelizeReportGenerator() *ExcelizeReportGenerator { return &ExcelizeReportGenerator{} }

// Generate monta a planilha e devolve seus bytes.
func (g *ExcelizeReportGenerator) Generate(data *report.ReportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("xlsx: criar planilha: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("xlsx: remover planilha padrão: %w", err)
	}

	if err := g.writeHeader(f, data); err != nil {
		return nil, err
	}
	if err := g.writeColumnHeaders(f); err != nil {
		return nil, err
	}
	if err := g.writeRows(f, data); err != nil {
		return nil, err
	}
	if err := g.applyLayout(f); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: serializar: %w", err)
	}
	return buf.Bytes(), nil
}

// writeHeader escreve o cabeçalho institucional (linhas 1 a 10).
func (g *ExcelizeReportGenerator) writeHeader(f *excelize.File, data *report.ReportData) error {
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("xlsx: estilo do título: %w", err)
	}
	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("xlsx: estilo do subtítulo: %w", err)
	}

	cells := map[string]string{
		"A1":  "MINISTÉRIO DA AGRICULTURA, PECUÁRIA E ABASTECIMENTO",
		"A2":  "CFIC - CONTROLE FISCAL DE INSUMOS AGRÍCOLAS",
		"A3":  "RELATÓRIO TRIMESTRAL DE PRODUÇÃO E COMERCIALIZAÇÃO",
		"A5":  "Estabelecimento: " + data.CompanyName,
		"A6":  "CNPJ: " + data.CNPJ,
		"A8":  fmt.Sprintf("Trimestre: Q%d", data.Period.Quarter()),
		"B8":  fmt.Sprintf("Ano: %d", data.Period.Year()),
		"A10": "Data de Geração: " + data.GeneratedAt.Format("02/01/2006 15:04"),
	}
	for cell, value := range cells {
		if err := f.SetCellValue(sheetName, cell, value); err != nil {
			return fmt.Errorf("xlsx: célula %s: %w", cell, err)
		}
	}

	for row, style := range map[string]int{"A1": titleStyle, "A2": subtitleStyle, "A3": subtitleStyle} {
		if err := f.SetCellStyle(sheetName, row, row, style); err != nil {
			return fmt.Errorf("xlsx: estilo do cabeçalho: %w", err)
		}
	}
	for _, cell := range []string{"A1", "A2", "A3"} {
		merged := strings.Replace(cell, "A", "H", 1)
		if err := f.MergeCell(sheetName, cell, merged); err != nil {
			return fmt.Errorf("xlsx: mesclar %s: %w", cell, err)
		}
	}
	return nil
}

// writeColumnHeaders escreve os cabeçalhos das colunas (linha 14).
func (g *ExcelizeReportGenerator) writeColumnHeaders(f *excelize.File) error {
	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"CCCCCC"}},
		Border:    thinBorder(),
	})
	if err != nil {
		return fmt.Errorf("xlsx: estilo dos cabeçalhos: %w", err)
	}
	for i, header := range columnHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 14)
		if err != nil {
			return fmt.Errorf("xlsx: coordenada do cabeçalho: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return fmt.Errorf("xlsx: cabeçalho %s: %w", header, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, style); err != nil {
			return fmt.Errorf("xlsx: estilo de %s: %w", cell, err)
		}
	}
	return nil
}

// writeRows escreve as linhas agregadas (a partir da linha 15).
// Colunas numéricas recebem o valor decimal exato como número da planilha.
func (g *ExcelizeReportGenerator) writeRows(f *excelize.File, data *report.ReportData) error {
	numberStyle, err := f.NewStyle(&excelize.Style{
		NumFmt: 4, // #,##0.00
		Border: thinBorder(),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("xlsx: estilo numérico: %w", err)
	}
	textStyle, err := f.NewStyle(&excelize.Style{
		Border:    thinBorder(),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("xlsx: estilo de texto: %w", err)
	}

	for i, r := range data.Rows {
		rowNum := 15 + i
		domestic, _ := r.QuantityDomestic.Round(3).Float64()
		imported, _ := r.QuantityImport.Round(3).Float64()
		total, _ := r.Total().Round(3).Float64()

		values := []any{
			r.ProductName,
			r.Key.String(),
			r.ProductReference,
			r.Unit,
			domestic,
			imported,
			total,
			strings.Join(r.SourceNFes, ", "),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return fmt.Errorf("xlsx: coordenada de dado: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("xlsx: célula %s: %w", cell, err)
			}
			style := textStyle
			if col >= 4 && col <= 6 {
				style = numberStyle
			}
			if err := f.SetCellStyle(sheetName, cell, cell, style); err != nil {
				return fmt.Errorf("xlsx: estilo de %s: %w", cell, err)
			}
		}
	}
	return nil
}

// applyLayout ajusta as larguras das colunas.
func (g *ExcelizeReportGenerator) applyLayout(f *excelize.File) error {
	for col, width := range columnWidths {
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return fmt.Errorf("xlsx: largura da coluna %s: %w", col, err)
		}
	}
	return nil
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Style: 1},
		{Type: "right", Style: 1},
		{Type: "top", Style: 1},
		{Type: "bottom", Style: 1},
	}
}
