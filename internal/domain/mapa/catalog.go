package mapa

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/agrofiscal/mapa-api/internal/domain/entity"
)

// Index é o índice em memória do catálogo de um usuário: empresa por razão
// social e produto por (empresa, descrição). Construído uma vez por
// processamento a partir de um snapshot; alterações concorrentes no catálogo
// só aparecem no próximo processamento.
type Index struct {
	companies map[string]*entity.Company
	products  map[productKey]*entity.Product
}

type productKey struct {
	companyID string
	name      string
}

// NormalizeName é a política única de matching de nomes do catálogo:
// trim + forma Unicode NFC + case fold. Aplicada tanto na construção do
// índice quanto na consulta, para que "UREIA  Granulada" e "ureia granulada"
// resolvam para a mesma entrada.
func NormalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(s)))
}

// BuildIndex monta o índice a partir do snapshot do catálogo.
// Em caso de nomes duplicados após normalização, vale a primeira entrada.
func BuildIndex(companies []*entity.Company, products []*entity.Product) *Index {
	ix := &Index{
		companies: make(map[string]*entity.Company, len(companies)),
		products:  make(map[productKey]*entity.Product, len(products)),
	}
	for _, c := range companies {
		key := NormalizeName(c.Name)
		if _, exists := ix.companies[key]; !exists {
			ix.companies[key] = c
		}
	}
	for _, p := range products {
		key := productKey{companyID: p.CompanyID, name: NormalizeName(p.Name)}
		if _, exists := ix.products[key]; !exists {
			ix.products[key] = p
		}
	}
	return ix
}

// Company resolve uma razão social contra o catálogo; nil quando não cadastrada.
func (ix *Index) Company(name string) *entity.Company {
	return ix.companies[NormalizeName(name)]
}

// Product resolve uma descrição de produto dentro de uma empresa; nil quando
// não cadastrado.
func (ix *Index) Product(companyID, name string) *entity.Product {
	return ix.products[productKey{companyID: companyID, name: NormalizeName(name)}]
}

// Size devolve os totais do índice (empresas, produtos).
func (ix *Index) Size() (int, int) {
	return len(ix.companies), len(ix.products)
}
