package mapa

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Tipos de entrada não cadastrada.
const (
	MissCompany = "company"
	MissProduct = "product"
)

// UnregisteredEntry é um item de NF-e que não pôde ser resolvido contra o
// catálogo. Corresponde a exatamente um par (NF-e, item) que nunca foi
// agregado. Imutável após criado.
type UnregisteredEntry struct {
	Kind        string // MissCompany | MissProduct
	CompanyName string
	ProductName string
	NFeNumber   string
	Quantity    decimal.Decimal // quantidade original, sem conversão
	Unit        string          // unidade original da NF-e
}

// AggregatedRow é uma linha do relatório: um registro MAPA completo com os
// acumuladores de importação e mercado interno (sempre em toneladas) e o
// conjunto deduplicado de NF-es de origem.
type AggregatedRow struct {
	Key              RegistrationKey
	ProductName      string
	ProductReference string // referência do catálogo, ou o nome do produto na falta dela
	Unit             string // sempre CanonicalUnit
	QuantityImport   decimal.Decimal
	QuantityDomestic decimal.Decimal
	SourceNFes       []string // ordem de primeira ocorrência, sem duplicatas

	sourceSet map[string]struct{}
}

// Total devolve importação + mercado interno, em toneladas.
func (r *AggregatedRow) Total() decimal.Decimal {
	return r.QuantityImport.Add(r.QuantityDomestic)
}

func (r *AggregatedRow) addSource(nfeNumber string) {
	if nfeNumber == "" {
		return
	}
	if _, seen := r.sourceSet[nfeNumber]; seen {
		return
	}
	r.sourceSet[nfeNumber] = struct{}{}
	r.SourceNFes = append(r.SourceNFes, nfeNumber)
}

// Result é o estado terminal de um processamento, em forma de resultado único:
// ou sucesso com as linhas agregadas, ou falha com a lista completa de
// entradas não cadastradas. Não há sucesso parcial: se qualquer item do lote
// ficou sem resolução, nenhum total agregado é devolvido.
type Result struct {
	rows         map[RegistrationKey]*AggregatedRow
	unregistered []UnregisteredEntry
	warnings     []UnitWarning
	totalNFes    int
}

// OK informa se o processamento foi um sucesso (nenhuma entrada sem cadastro).
func (r *Result) OK() bool {
	return len(r.unregistered) == 0
}

// TotalNFes devolve a quantidade de NF-es visitadas no processamento.
func (r *Result) TotalNFes() int {
	return r.totalNFes
}

// Rows devolve as linhas agregadas ordenadas pelo registro completo.
// Vazia quando o processamento falhou.
func (r *Result) Rows() []*AggregatedRow {
	if !r.OK() {
		return nil
	}
	rows := make([]*AggregatedRow, 0, len(r.rows))
	for _, row := range r.rows {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Key.String() < rows[j].Key.String()
	})
	return rows
}

// Unregistered devolve todas as entradas não cadastradas do lote, na ordem em
// que foram encontradas.
func (r *Result) Unregistered() []UnregisteredEntry {
	return r.unregistered
}

// Warnings devolve os diagnósticos de unidade desconhecida acumulados.
// Presentes tanto em sucesso quanto em falha.
func (r *Result) Warnings() []UnitWarning {
	return r.warnings
}

// Summary devolve a mensagem de remediação para o usuário em caso de falha,
// com as contagens por tipo de erro. Vazia em caso de sucesso.
func (r *Result) Summary() string {
	if r.OK() {
		return ""
	}
	var companies, products int
	for _, e := range r.unregistered {
		switch e.Kind {
		case MissCompany:
			companies++
		case MissProduct:
			products++
		}
	}
	return fmt.Sprintf(
		"Encontrados erros: %d empresa(s) não cadastrada(s), %d produto(s) não cadastrado(s). Cadastre-os no catálogo e processe novamente.",
		companies, products,
	)
}
