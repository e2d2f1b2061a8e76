package nfe_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrofiscal/mapa-api/internal/domain"
	"github.com/agrofiscal/mapa-api/internal/domain/nfe"
)

// ──────────────────────────────────────────────────────────────────────────────
// NF-e mínima porém realista para o pipeline: nota processada (<nfeProc>),
// dois itens de fertilizante com unidades distintas, totais e transporte.
// ──────────────────────────────────────────────────────────────────────────────

const testNFeXML = `<?xml version="1.0" encoding="UTF-8"?>
<nfeProc xmlns="http://www.portalfiscal.inf.br/nfe" versao="4.00">
  <NFe>
    <infNFe Id="NFe41250312345678000190550010000012341000012349" versao="4.00">
      <ide>
        <cUF>41</cUF>
        <nNF>1234</nNF>
        <serie>1</serie>
        <dhEmi>2025-02-10T14:30:00-03:00</dhEmi>
      </ide>
      <emit>
        <CNPJ>12345678000190</CNPJ>
        <xNome>Acme Fertilizantes Ltda</xNome>
        <xFant>Acme</xFant>
        <IE>9012345678</IE>
        <enderEmit>
          <xLgr>Rua das Industrias</xLgr>
          <nro>500</nro>
          <xBairro>Distrito Industrial</xBairro>
          <xMun>Curitiba</xMun>
          <UF>PR</UF>
          <CEP>81000000</CEP>
          <fone>4133334444</fone>
        </enderEmit>
      </emit>
      <dest>
        <CNPJ>98765432000121</CNPJ>
        <xNome>Fazenda Boa Vista SA</xNome>
        <enderDest>
          <xMun>Londrina</xMun>
          <UF>PR</UF>
        </enderDest>
      </dest>
      <det nItem="1">
        <prod>
          <cProd>U46</cProd>
          <xProd>Ureia Granulada</xProd>
          <NCM>31021010</NCM>
          <CFOP>5101</CFOP>
          <uCom>KG</uCom>
          <qCom>500.0000</qCom>
          <vUnCom>2.5000</vUnCom>
          <vProd>1250.00</vProd>
        </prod>
        <infAdProd>N TOTAL 46% REGISTRO MAPA: PR 00551-7</infAdProd>
      </det>
      <det nItem="2">
        <prod>
          <cProd>NPK152025</cProd>
          <xProd>Adubo NPK 15-20-25</xProd>
          <NCM>31052000</NCM>
          <CFOP>5101</CFOP>
          <uCom>TON</uCom>
          <qCom>2.0000</qCom>
          <vUnCom>3100.00</vUnCom>
          <vProd>6200.00</vProd>
        </prod>
      </det>
      <total>
        <ICMSTot>
          <vProd>7450.00</vProd>
          <vFrete>150.00</vFrete>
          <vSeg>0.00</vSeg>
          <vDesc>0.00</vDesc>
          <vNF>7600.00</vNF>
        </ICMSTot>
      </total>
      <transp>
        <modFrete>0</modFrete>
        <transporta>
          <CNPJ>11222333000144</CNPJ>
          <xNome>Transportes Rapidos Ltda</xNome>
          <UF>PR</UF>
        </transporta>
      </transp>
      <infAdic>
        <infCpl>Mercadoria sujeita a registro no MAPA.</infCpl>
      </infAdic>
    </infNFe>
  </NFe>
</nfeProc>`

func TestParse_NotaCompleta(t *testing.T) {
	doc, err := nfe.Parse([]byte(testNFeXML))
	require.NoError(t, err)

	assert.Equal(t, "41250312345678000190550010000012341000012349", doc.AccessKey,
		"chave de acesso vem do atributo Id sem o prefixo NFe")
	assert.Equal(t, "1234", doc.Number)
	assert.Equal(t, "1", doc.Series)

	require.NotNil(t, doc.IssuedAt)
	assert.Equal(t, 2025, doc.IssuedAt.Year())
	assert.Equal(t, time.February, doc.IssuedAt.Month())

	assert.Equal(t, "12345678000190", doc.Emitter.CNPJCPF)
	assert.Equal(t, "Acme Fertilizantes Ltda", doc.Emitter.LegalName)
	assert.Equal(t, "PR", doc.Emitter.Address.UF)
	assert.Equal(t, "Curitiba", doc.Emitter.Address.Municipality)
	assert.Equal(t, "Fazenda Boa Vista SA", doc.Recipient.LegalName)

	require.Len(t, doc.Items, 2)

	ureia := doc.Items[0]
	assert.Equal(t, "1", ureia.ItemNumber)
	assert.Equal(t, "Ureia Granulada", ureia.Description)
	assert.Equal(t, "KG", ureia.Unit)
	assert.True(t, ureia.Quantity.Equal(decimal.NewFromInt(500)))
	assert.True(t, ureia.Total.Equal(decimal.RequireFromString("1250.00")))
	assert.Equal(t, "46", ureia.Guarantees["N"],
		"garantia minerada do <infAdProd>")
	assert.Equal(t, "PR 00551-7", ureia.MAPACode)

	npk := doc.Items[1]
	assert.Equal(t, "TON", npk.Unit)
	assert.True(t, npk.Quantity.Equal(decimal.NewFromInt(2)))

	assert.True(t, doc.Totals.Invoice.Equal(decimal.NewFromInt(7600)))
	assert.True(t, doc.Totals.Freight.Equal(decimal.NewFromInt(150)))

	assert.Equal(t, "Transportes Rapidos Ltda", doc.Transport.CarrierName)
	assert.Equal(t, "PR", doc.Transport.CarrierUF)

	assert.Equal(t, "Mercadoria sujeita a registro no MAPA.", doc.ExtraInfo)
}

func TestParse_NFePuraSemProtocolo(t *testing.T) {
	xml := `<NFe xmlns="http://www.portalfiscal.inf.br/nfe">
	  <infNFe Id="NFe41250300000000000000550010000000011000000010">
	    <ide><nNF>1</nNF><dEmi>2025-05-20</dEmi></ide>
	    <emit><xNome>Beta Insumos SA</xNome></emit>
	  </infNFe>
	</NFe>`

	doc, err := nfe.Parse([]byte(xml))
	require.NoError(t, err)
	assert.Equal(t, "1", doc.Number)
	assert.Equal(t, "Beta Insumos SA", doc.Emitter.LegalName)
	require.NotNil(t, doc.IssuedAt, "<dEmi> (data pura) também é aceito")
	assert.Equal(t, time.May, doc.IssuedAt.Month())
	assert.Empty(t, doc.Items)
}

func TestParse_CamposAusentesNaoSaoErro(t *testing.T) {
	xml := `<NFe xmlns="http://www.portalfiscal.inf.br/nfe">
	  <infNFe><ide><nNF>99</nNF></ide></infNFe>
	</NFe>`

	doc, err := nfe.Parse([]byte(xml))
	require.NoError(t, err, "só <nNF> é obrigatório; o resto é tolerado")
	assert.Equal(t, "99", doc.Number)
	assert.Empty(t, doc.AccessKey)
	assert.Nil(t, doc.IssuedAt)
	assert.True(t, doc.Totals.Invoice.IsZero())
}

func TestParse_NumeroAusenteRejeitaDocumento(t *testing.T) {
	xml := `<NFe xmlns="http://www.portalfiscal.inf.br/nfe">
	  <infNFe><ide><serie>1</serie></ide></infNFe>
	</NFe>`

	_, err := nfe.Parse([]byte(xml))
	assert.ErrorIs(t, err, domain.ErrMalformedInvoice)
}

func TestParse_DocumentosInvalidos(t *testing.T) {
	cases := map[string]string{
		"xml quebrado":    `<nfeProc><NFe>`,
		"raiz nao NFe":    `<pedido><nNF>1</nNF></pedido>`,
		"documento vazio": ``,
	}
	for name, xml := range cases {
		_, err := nfe.Parse([]byte(xml))
		assert.ErrorIs(t, err, domain.ErrMalformedInvoice, name)
	}
}

func TestParse_DecimalComVirgula(t *testing.T) {
	xml := `<NFe xmlns="http://www.portalfiscal.inf.br/nfe">
	  <infNFe><ide><nNF>7</nNF></ide>
	  <det nItem="1"><prod><xProd>Calcario</xProd><uCom>TON</uCom><qCom>1,5</qCom></prod></det>
	  </infNFe>
	</NFe>`

	doc, err := nfe.Parse([]byte(xml))
	require.NoError(t, err)
	require.Len(t, doc.Items, 1)
	assert.True(t, doc.Items[0].Quantity.Equal(decimal.RequireFromString("1.5")),
		"vírgula decimal é normalizada antes da conversão")
}
