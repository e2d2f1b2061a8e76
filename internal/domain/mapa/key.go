// Package mapa implementa o motor do relatório trimestral MAPA de
// movimentação de matérias-primas: índice de catálogo, regras de
// classificação e conversão de unidades, agregação por registro MAPA
// completo e validação tudo-ou-nada do lote.
package mapa

// RegistrationKey identifica uma linha agregada do relatório: o registro MAPA
// completo, composto pelo código parcial da empresa e o código parcial do
// produto. É um tipo próprio (e não uma string montada) para que uma eventual
// mudança de esquema do registro seja uma mudança de tipo, não de formatação.
type RegistrationKey struct {
	CompanyCode string // ex: "PR-12345"
	ProductCode string // ex: "6.000001"
}

// NewRegistrationKey compõe a chave a partir dos códigos parciais.
func NewRegistrationKey(companyCode, productCode string) RegistrationKey {
	return RegistrationKey{CompanyCode: companyCode, ProductCode: productCode}
}

// String devolve a forma oficial do registro completo, ex: "PR-12345-6.000001".
func (k RegistrationKey) String() string {
	return k.CompanyCode + "-" + k.ProductCode
}
