package dto

import "time"

// ProcessRequest dispara o processamento de um trimestre.
type ProcessRequest struct {
	Period string `json:"period" validate:"required"`
}

// ReportRow linha agregada do relatório, já formatada para apresentação.
type ReportRow struct {
	FullRegistration string   `json:"full_registration"`
	ProductName      string   `json:"product_name"`
	ProductReference string   `json:"product_reference"`
	Unit             string   `json:"unit"`
	QuantityImport   string   `json:"quantity_import"`
	QuantityDomestic string   `json:"quantity_domestic"`
	QuantityTotal    string   `json:"quantity_total"`
	SourceNFes       []string `json:"source_nfes"`
}

// UnregisteredItem pendência de cadastro encontrada no processamento.
type UnregisteredItem struct {
	Kind        string `json:"kind"` // company | product
	CompanyName string `json:"company_name"`
	ProductName string `json:"product_name"`
	NFeNumber   string `json:"nfe_number"`
	Quantity    string `json:"quantity"`
	Unit        string `json:"unit"`
}

// UnitWarningItem diagnóstico de unidade não reconhecida.
type UnitWarningItem struct {
	Unit       string `json:"unit"`
	NFeNumber  string `json:"nfe_number"`
	ItemNumber string `json:"item_number"`
}

// ProcessResponse resultado terminal de um processamento: ou sucesso com as
// linhas agregadas, ou falha com a lista completa de pendências.
type ProcessResponse struct {
	OK           bool               `json:"ok"`
	Period       string             `json:"period"`
	TotalNFes    int                `json:"total_nfes"`
	Rows         []ReportRow        `json:"rows,omitempty"`
	Unregistered []UnregisteredItem `json:"unregistered,omitempty"`
	Warnings     []UnitWarningItem  `json:"warnings,omitempty"`
	Summary      string             `json:"summary,omitempty"`
	ReportID     string             `json:"report_id,omitempty"`
}

// ReportResponse entrada do histórico de relatórios gerados.
type ReportResponse struct {
	ID          string    `json:"id"`
	Period      string    `json:"period"`
	TotalNFes   int       `json:"total_nfes"`
	GeneratedAt time.Time `json:"generated_at"`
}
