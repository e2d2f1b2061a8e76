// Package nfe extrai dados estruturados de XMLs de Nota Fiscal Eletrônica
// (layout nacional, namespace http://www.portalfiscal.inf.br/nfe).
//
// O parse é tolerante por campo: a ausência de um campo escalar nunca é erro,
// apenas resulta no valor zero (string vazia, decimal zero, data nil). O único
// campo obrigatório é o número da nota (<nNF>); sem ele o documento é rejeitado
// com domain.ErrMalformedInvoice.
package nfe

import (
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/agrofiscal/mapa-api/internal/domain"
	"github.com/agrofiscal/mapa-api/internal/domain/entity"
)

// NamespaceNFe namespace oficial do layout da NF-e.
const NamespaceNFe = "http://www.portalfiscal.inf.br/nfe"

// Formatos de data aceitos em <dhEmi>/<dEmi>, do mais ao menos específico.
var issueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Parse interpreta um XML de NF-e e devolve o registro estruturado.
// Aceita tanto <nfeProc> (nota processada, com protocolo) quanto <NFe> pura.
func Parse(raw []byte) (*entity.NFe, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedInvoice, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: documento vazio", domain.ErrMalformedInvoice)
	}
	if root.Tag != "nfeProc" && root.Tag != "NFe" {
		return nil, fmt.Errorf("%w: raiz <%s> não é NF-e", domain.ErrMalformedInvoice, root.Tag)
	}

	number := findText(root, "//ide/nNF")
	if number == "" {
		return nil, fmt.Errorf("%w: <nNF> ausente", domain.ErrMalformedInvoice)
	}

	nfe := &entity.NFe{
		AccessKey: extractAccessKey(root),
		Number:    number,
		Series:    findText(root, "//ide/serie"),
		IssuedAt:  parseIssueDate(findText(root, "//ide/dhEmi"), findText(root, "//ide/dEmi")),
		Emitter:   extractParty(root.FindElement("//emit"), "enderEmit"),
		Recipient: extractParty(root.FindElement("//dest"), "enderDest"),
		Totals:    extractTotals(root),
		Transport: extractTransport(root),
		ExtraInfo: findText(root, "//infAdic/infCpl"),
		FiscoInfo: findText(root, "//infAdic/infAdFisco"),
	}
	nfe.Items = extractItems(root, nfe.ExtraInfo)

	return nfe, nil
}

// extractAccessKey lê a chave de acesso do atributo Id de <infNFe>, sem o prefixo "NFe".
func extractAccessKey(root *etree.Element) string {
	inf := root.FindElement("//infNFe")
	if inf == nil {
		return ""
	}
	return strings.TrimPrefix(inf.SelectAttrValue("Id", ""), "NFe")
}

func extractParty(el *etree.Element, addrTag string) entity.Party {
	if el == nil {
		return entity.Party{}
	}
	id := findText(el, "CNPJ")
	if id == "" {
		id = findText(el, "CPF")
	}
	return entity.Party{
		CNPJCPF:   id,
		LegalName: findText(el, "xNome"),
		TradeName: findText(el, "xFant"),
		StateReg:  findText(el, "IE"),
		Phone:     findText(el, addrTag+"/fone"),
		Email:     findText(el, "email"),
		Address: entity.Address{
			Street:       findText(el, addrTag+"/xLgr"),
			Number:       findText(el, addrTag+"/nro"),
			Complement:   findText(el, addrTag+"/xCpl"),
			District:     findText(el, addrTag+"/xBairro"),
			Municipality: findText(el, addrTag+"/xMun"),
			UF:           findText(el, addrTag+"/UF"),
			CEP:          findText(el, addrTag+"/CEP"),
		},
	}
}

func extractItems(root *etree.Element, extraInfo string) []entity.LineItem {
	dets := root.FindElements("//det")
	items := make([]entity.LineItem, 0, len(dets))
	for _, det := range dets {
		item := entity.LineItem{
			ItemNumber:     det.SelectAttrValue("nItem", ""),
			Code:           findText(det, "prod/cProd"),
			Description:    findText(det, "prod/xProd"),
			NCM:            findText(det, "prod/NCM"),
			CFOP:           findText(det, "prod/CFOP"),
			Unit:           findText(det, "prod/uCom"),
			Quantity:       findDecimal(det, "prod/qCom"),
			UnitPrice:      findDecimal(det, "prod/vUnCom"),
			Total:          findDecimal(det, "prod/vProd"),
			AdditionalInfo: findText(det, "infAdProd"),
		}
		// Mineração de texto legada: garantias e registro MAPA informativos.
		// Nunca bloqueia a agregação, que depende só do catálogo.
		item.Guarantees = ExtractGuarantees(item.AdditionalInfo)
		item.MAPACode = ExtractMAPACode(item.AdditionalInfo + " " + extraInfo)
		items = append(items, item)
	}
	return items
}

func extractTotals(root *etree.Element) entity.Totals {
	tot := root.FindElement("//total/ICMSTot")
	if tot == nil {
		return entity.Totals{}
	}
	return entity.Totals{
		Products:  findDecimal(tot, "vProd"),
		Freight:   findDecimal(tot, "vFrete"),
		Insurance: findDecimal(tot, "vSeg"),
		Discount:  findDecimal(tot, "vDesc"),
		Invoice:   findDecimal(tot, "vNF"),
	}
}

func extractTransport(root *etree.Element) entity.Transport {
	transp := root.FindElement("//transp")
	if transp == nil {
		return entity.Transport{}
	}
	t := entity.Transport{FreightMode: findText(transp, "modFrete")}
	if carrier := transp.FindElement("transporta"); carrier != nil {
		t.CarrierID = findText(carrier, "CNPJ")
		if t.CarrierID == "" {
			t.CarrierID = findText(carrier, "CPF")
		}
		t.CarrierName = findText(carrier, "xNome")
		t.CarrierUF = findText(carrier, "UF")
	}
	return t
}

// findText devolve o texto do primeiro elemento no caminho, ou "" se ausente.
func findText(el *etree.Element, path string) string {
	found := el.FindElement(path)
	if found == nil {
		return ""
	}
	return strings.TrimSpace(found.Text())
}

// findDecimal devolve o decimal do primeiro elemento no caminho.
// Normaliza vírgula decimal para ponto antes da conversão; texto numérico
// malformado resulta em zero, nunca em falha do parse inteiro.
func findDecimal(el *etree.Element, path string) decimal.Decimal {
	text := findText(el, path)
	if text == "" {
		return decimal.Zero
	}
	text = strings.ReplaceAll(text, ",", ".")
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseIssueDate interpreta a data de emissão de forma permissiva:
// tenta <dhEmi> (formato com timezone), depois <dEmi> (data pura).
// Data não interpretável vira nil, nunca erro.
func parseIssueDate(dhEmi, dEmi string) *time.Time {
	for _, raw := range []string{dhEmi, dEmi} {
		if raw == "" {
			continue
		}
		for _, layout := range issueDateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return &t
			}
		}
	}
	return nil
}
