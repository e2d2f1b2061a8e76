package mapa_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/agrofiscal/mapa-api/internal/domain/entity"
	"github.com/agrofiscal/mapa-api/internal/domain/mapa"
)

func TestNormalizeUnit(t *testing.T) {
	cases := map[string]string{
		"kg":        "KG",
		" Ton. ":    "TON",
		"t":         "T",
		"Tonelada":  "TONELADA",
		"K G":       "KG",
		"kg,":       "KG",
		"":          "",
		"QUILOGRAMA": "QUILOGRAMA",
	}
	for in, want := range cases {
		assert.Equal(t, want, mapa.NormalizeUnit(in), "entrada %q", in)
	}
}

func TestToTonnes_QuilogramasSaoExatos(t *testing.T) {
	// 1000 KG deve resultar em exatamente 1 t, sem resíduo de ponto
	// flutuante. É a razão de usar decimal em todo o pipeline.
	got, unknown := mapa.ToTonnes(decimal.NewFromInt(1000), "KG")
	assert.False(t, unknown)
	assert.True(t, got.Equal(decimal.NewFromInt(1)), "obtido %s", got)

	got, unknown = mapa.ToTonnes(decimal.RequireFromString("2500.5"), "kg")
	assert.False(t, unknown)
	assert.True(t, got.Equal(decimal.RequireFromString("2.5005")), "obtido %s", got)
}

func TestToTonnes_ToneladasPassamDireto(t *testing.T) {
	for _, unit := range []string{"TON", "T", "TN", "Tonelada", "TONELADAS", "MT"} {
		got, unknown := mapa.ToTonnes(decimal.RequireFromString("3.25"), unit)
		assert.False(t, unknown, "unidade %q deve ser reconhecida como tonelada", unit)
		assert.True(t, got.Equal(decimal.RequireFromString("3.25")), "unidade %q", unit)
	}
}

func TestToTonnes_UnidadeDesconhecidaUsaFallbackDeKg(t *testing.T) {
	got, unknown := mapa.ToTonnes(decimal.NewFromInt(500), "SC")
	assert.True(t, unknown, "SC (saca) não está nas tabelas de unidade")
	assert.True(t, got.Equal(decimal.RequireFromString("0.5")))
}

func TestIsImport(t *testing.T) {
	ex := &entity.NFe{Emitter: entity.Party{Address: entity.Address{UF: " ex "}}}
	pr := &entity.NFe{Emitter: entity.Party{Address: entity.Address{UF: "PR"}}}
	vazio := &entity.NFe{}

	assert.True(t, mapa.IsImport(ex), "UF \"EX\" marca operação de importação")
	assert.False(t, mapa.IsImport(pr))
	assert.False(t, mapa.IsImport(vazio))
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "0", mapa.FormatQuantity(decimal.Zero))
	assert.Equal(t, "2.5", mapa.FormatQuantity(decimal.RequireFromString("2.50")))
	assert.Equal(t, "1234.57", mapa.FormatQuantity(decimal.RequireFromString("1234.5678")))

	// Empates usam arredondamento bancário: o dígito final fica par.
	assert.Equal(t, "0.12", mapa.FormatQuantity(decimal.RequireFromString("0.125")))
	assert.Equal(t, "0.14", mapa.FormatQuantity(decimal.RequireFromString("0.135")))
}
