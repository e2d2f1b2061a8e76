package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Address endereço de uma das partes da NF-e.
type Address struct {
	Street       string
	Number       string
	Complement   string
	District     string
	Municipality string
	UF           string // "EX" indica origem estrangeira (importação)
	CEP          string
}

// Party identifica emitente ou destinatário da NF-e.
type Party struct {
	CNPJCPF   string
	LegalName string // <xNome>, chave de matching com o catálogo de empresas
	TradeName string
	StateReg  string // inscrição estadual
	Address   Address
	Phone     string
	Email     string
}

// LineItem é um item <det> da NF-e.
// Quantity, UnitPrice e Total são decimais exatos; nunca float (os totais
// agregados alimentam uma declaração regulatória).
type LineItem struct {
	ItemNumber     string // atributo nItem
	Code           string // <cProd>, código interno do emitente
	Description    string // <xProd>, chave de matching com o catálogo de produtos
	NCM            string
	CFOP           string
	Unit           string // <uCom>, unidade comercial (KG, TON, ...)
	Quantity       decimal.Decimal
	UnitPrice      decimal.Decimal
	Total          decimal.Decimal
	AdditionalInfo string            // <infAdProd>, texto livre
	Guarantees     map[string]string // garantias de nutrientes extraídas de AdditionalInfo (legado, não bloqueia agregação)
	MAPACode       string            // registro MAPA minerado do texto livre (apenas informativo)
}

// Totals totais financeiros da NF-e (<ICMSTot>).
type Totals struct {
	Products  decimal.Decimal
	Freight   decimal.Decimal
	Insurance decimal.Decimal
	Discount  decimal.Decimal
	Invoice   decimal.Decimal
}

// Transport dados de transporte da NF-e.
type Transport struct {
	FreightMode string
	CarrierID   string
	CarrierName string
	CarrierUF   string
}

// NFe é o registro estruturado de uma Nota Fiscal Eletrônica.
// Imutável depois do parse; o motor de agregação só lê.
type NFe struct {
	AccessKey    string // chave de acesso de 44 dígitos; pode estar ausente
	Number       string // <nNF>, obrigatório
	Series       string
	IssuedAt     *time.Time // nil quando a data não pôde ser interpretada
	Emitter      Party
	Recipient    Party
	Items        []LineItem
	Totals       Totals
	Transport    Transport
	ExtraInfo    string // <infCpl>
	FiscoInfo    string // <infAdFisco>
}
