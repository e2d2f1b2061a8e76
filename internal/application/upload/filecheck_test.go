package upload_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agrofiscal/mapa-api/internal/application/upload"
	"github.com/agrofiscal/mapa-api/internal/domain"
)

const validHead = `<?xml version="1.0"?><NFe xmlns="http://www.portalfiscal.inf.br/nfe"></NFe>`

func TestValidateFile(t *testing.T) {
	maxSize := int64(1024)

	assert.NoError(t, upload.ValidateFile("nota.xml", []byte(validHead), maxSize))
	assert.NoError(t, upload.ValidateFile("NOTA.XML", []byte(validHead), maxSize),
		"extensão é comparada sem diferenciar caixa")

	cases := map[string]struct {
		filename string
		data     string
	}{
		"extensao errada":     {"nota.pdf", validHead},
		"arquivo vazio":       {"nota.xml", ""},
		"nao e xml":           {"nota.xml", "PK\x03\x04 conteudo binario"},
		"xml sem namespace":   {"nota.xml", `<?xml version="1.0"?><pedido><item/></pedido>`},
		"excede o limite":     {"nota.xml", validHead + strings.Repeat("x", 2048)},
	}
	for name, tc := range cases {
		err := upload.ValidateFile(tc.filename, []byte(tc.data), maxSize)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}
}

func TestValidateFile_ToleraBOMEEspacos(t *testing.T) {
	data := "\xef\xbb\xbf  \n" + validHead
	assert.NoError(t, upload.ValidateFile("nota.xml", []byte(data), 4096))
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"nota.xml":                "nota.xml",
		"../../etc/passwd":        "passwd",
		"nota fiscal 01.xml":      "nota_fiscal_01.xml",
		"açúcar#nota?.xml":        "a__car_nota_.xml",
		"....":                    "upload.xml",
		"":                        "upload.xml",
	}
	for in, want := range cases {
		assert.Equal(t, want, upload.SanitizeFilename(in), "entrada %q", in)
	}
}
