package upload

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/agrofiscal/mapa-api/internal/domain"
)

// Validação defensiva do arquivo antes de qualquer parse: extensão, tamanho,
// conteúdo plausível de XML e presença do namespace da NF-e. Barra cedo o que
// claramente não é uma nota, com mensagem específica por motivo.

const nfeNamespaceMarker = "portalfiscal.inf.br/nfe"

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// ValidateFile confere um upload candidato. Todo erro embrulha ErrInvalidInput.
func ValidateFile(filename string, data []byte, maxSize int64) error {
	if strings.ToLower(filepath.Ext(filename)) != ".xml" {
		return fmt.Errorf("%w: apenas arquivos .xml são aceitos", domain.ErrInvalidInput)
	}
	if len(data) == 0 {
		return fmt.Errorf("%w: arquivo vazio", domain.ErrInvalidInput)
	}
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%w: arquivo excede o limite de %d bytes", domain.ErrInvalidInput, maxSize)
	}
	head := bytes.TrimLeft(data, " \t\r\n\xef\xbb\xbf")
	if len(head) == 0 || head[0] != '<' {
		return fmt.Errorf("%w: conteúdo não é XML", domain.ErrInvalidInput)
	}
	if !bytes.Contains(data, []byte(nfeNamespaceMarker)) {
		return fmt.Errorf("%w: XML não é uma NF-e (namespace ausente)", domain.ErrInvalidInput)
	}
	return nil
}

// SanitizeFilename reduz o nome enviado a um nome de arquivo seguro:
// sem diretórios, sem caracteres fora de [a-zA-Z0-9._-].
func SanitizeFilename(filename string) string {
	base := filepath.Base(filename)
	base = unsafeFilenameChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	if base == "" {
		return "upload.xml"
	}
	return base
}
