package mapa

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/agrofiscal/mapa-api/internal/domain/entity"
)

// CanonicalUnit rótulo da unidade canônica em toda saída do relatório.
const CanonicalUnit = "Tonelada"

// thousand divisor exato para a regra quilograma -> tonelada.
var thousand = decimal.NewFromInt(1000)

// Unidades já em toneladas, após normalização.
var tonneUnits = map[string]struct{}{
	"TON": {}, "TONELADA": {}, "TONELADAS": {}, "TN": {}, "T": {}, "TONS": {},
	"TONELADA(S)": {}, "TON(S)": {}, "TONNE": {}, "TONNES": {}, "MT": {},
}

// Unidades em quilogramas, após normalização.
var kgUnits = map[string]struct{}{
	"KG": {}, "QUILOGRAMA": {}, "QUILOGRAMAS": {}, "KGS": {}, "KILO": {}, "KILOS": {},
	"QUILOGRAMA(S)": {}, "KG(S)": {}, "KILOGRAMAS": {}, "KILOGRAMA": {},
}

// UnitWarning diagnóstico estruturado de unidade não reconhecida.
// Não é um erro: a conversão segue a regra de quilogramas (padrão de
// compatibilidade com as declarações já entregues), mas o aviso fica
// disponível para um futuro modo estrito.
type UnitWarning struct {
	Unit       string // unidade original da NF-e
	Normalized string // forma normalizada que não casou
	NFeNumber  string
	ItemNumber string // atributo nItem da NF-e
}

// NormalizeUnit prepara a unidade para classificação: maiúsculas,
// sem pontos, vírgulas ou espaços.
func NormalizeUnit(unit string) string {
	u := strings.ToUpper(strings.TrimSpace(unit))
	u = strings.ReplaceAll(u, ".", "")
	u = strings.ReplaceAll(u, ",", "")
	u = strings.ReplaceAll(u, " ", "")
	return u
}

// ToTonnes converte uma quantidade para toneladas com aritmética decimal exata.
// Toneladas passam inalteradas; quilogramas dividem por 1000. Unidade
// desconhecida (inclusive vazia) segue a regra de quilogramas e devolve
// unknown=true para que o chamador registre o diagnóstico.
func ToTonnes(quantity decimal.Decimal, unit string) (converted decimal.Decimal, unknown bool) {
	normalized := NormalizeUnit(unit)
	if _, ok := tonneUnits[normalized]; ok {
		return quantity, false
	}
	if _, ok := kgUnits[normalized]; ok {
		return quantity.Div(thousand), false
	}
	return quantity.Div(thousand), true
}

// IsImport classifica a NF-e como importação quando a UF do emitente é o
// sentinela "EX" (origem exterior). UF ausente conta como mercado interno.
func IsImport(nfe *entity.NFe) bool {
	return strings.ToUpper(strings.TrimSpace(nfe.Emitter.Address.UF)) == "EX"
}

// FormatQuantity formata um total para apresentação: duas casas decimais com
// zeros e ponto finais removidos. A acumulação interna mantém a precisão
// completa; o arredondamento acontece só aqui, na borda de apresentação,
// usando arredondamento bancário (empate vai para o dígito par).
func FormatQuantity(d decimal.Decimal) string {
	if d.IsZero() {
		return "0"
	}
	return d.RoundBank(2).String()
}
