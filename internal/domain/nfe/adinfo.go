package nfe

import "regexp"

// Mineração best-effort do texto livre da NF-e (<infAdProd> e <infCpl>):
// garantias de nutrientes ("N TOTAL 46%", "15-15-15") e registro MAPA em
// formato frouxo ("REGISTRO MAPA: PR 00551-7"). Extração puramente
// informativa: o caminho principal de agregação usa apenas o catálogo.

// nutrientPatterns padrões por nutriente, em ordem de prioridade.
// O primeiro grupo de captura é sempre o percentual.
var nutrientPatterns = map[string][]*regexp.Regexp{
	"N": {
		regexp.MustCompile(`(?i)N\s*TOTAL\s*(\d+(?:[.,]\d+)?)\s*%`), // N TOTAL 46%
		regexp.MustCompile(`(?i)N\s*(\d+(?:[.,]\d+)?)\s*%`),         // N 46%
		regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*-\s*\d+`),           // 15-15-15 (primeiro número)
	},
	"P2O5_TOTAL": {
		regexp.MustCompile(`(?i)P2?O5?\s*TOTAL\s*(\d+(?:[.,]\d+)?)\s*%`),
		regexp.MustCompile(`(?i)P2?O5?\s*(\d+(?:[.,]\d+)?)\s*%`),
		regexp.MustCompile(`\d+-(\d+(?:[.,]\d+)?)-`), // 15-15-15 (segundo número)
	},
	"P2O5_SOLUVEL": {
		regexp.MustCompile(`(?i)P2?O5?\s*SOL[UÚ]VEL\s*(\d+(?:[.,]\d+)?)\s*%`),
		regexp.MustCompile(`(?i)P2?O5?\s*SOL\s*(\d+(?:[.,]\d+)?)\s*%`),
	},
	"K2O": {
		regexp.MustCompile(`(?i)K2?O\s*(\d+(?:[.,]\d+)?)\s*%`),
		regexp.MustCompile(`\d+-\d+-(\d+(?:[.,]\d+)?)`), // 15-15-15 (terceiro número)
	},
	"Ca": {
		regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*%?\s*Ca`),
		regexp.MustCompile(`(?i)Ca\s*(\d+(?:[.,]\d+)?)\s*%`),
	},
	"Mg": {
		regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*%?\s*Mg`),
		regexp.MustCompile(`(?i)Mg\s*(\d+(?:[.,]\d+)?)\s*%`),
	},
	"S": {
		regexp.MustCompile(`(?i)S\s*(\d+(?:[.,]\d+)?)\s*%`),
		regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*%?\s*S`),
	},
	"B": {
		regexp.MustCompile(`(?i)B\s*(\d+(?:[.,]\d+)?)\s*%`),
		regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*%?\s*B`),
	},
	"Cl": {regexp.MustCompile(`(?i)Cl\s*(\d+(?:[.,]\d+)?)\s*%`)},
	"Co": {regexp.MustCompile(`(?i)Co\s*(\d+(?:[.,]\d+)?)\s*%`)},
	"Cu": {regexp.MustCompile(`(?i)Cu\s*(\d+(?:[.,]\d+)?)\s*%`)},
	"Fe": {regexp.MustCompile(`(?i)Fe\s*(\d+(?:[.,]\d+)?)\s*%`)},
	"Mn": {regexp.MustCompile(`(?i)Mn\s*(\d+(?:[.,]\d+)?)\s*%`)},
	"Mo": {regexp.MustCompile(`(?i)Mo\s*(\d+(?:[.,]\d+)?)\s*%`)},
	"Ni": {regexp.MustCompile(`(?i)Ni\s*(\d+(?:[.,]\d+)?)\s*%`)},
	"Si": {regexp.MustCompile(`(?i)Si\s*(\d+(?:[.,]\d+)?)\s*%`)},
	"Zn": {regexp.MustCompile(`(?i)Zn\s*(\d+(?:[.,]\d+)?)\s*%`)},
}

// mapaCodePatterns formatos conhecidos de registro MAPA em texto livre.
var mapaCodePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)REGISTRO\s+(?:DO\s+)?MAPA[:\s]+([A-Z]{2}\s*\d{5,6}-\d+(?:\.\d+)?)`), // REGISTRO MAPA: PR 00551-7
	regexp.MustCompile(`(?i)REG[.:]?\s*MAPA[:\s]+([A-Z]{2}\s*\d{5,6}-\d+(?:\.\d+)?)`),           // REG. MAPA: PR00551-7
	regexp.MustCompile(`(?i)(?:EI|EP|EC|MP)[:\s]+([A-Z]{2}\s*\d{5,6}-\d+(?:\.\d+)?)`),           // EI: PR00551-7
	regexp.MustCompile(`([A-Z]{2}\s*\d{5,6}-\d+\.\d+)`),                                         // PR 000328-0.000023
}

// ufSpacing garante espaço entre a UF e os dígitos ("PR00551" -> "PR 00551").
var ufSpacing = regexp.MustCompile(`([A-Z]{2})(\d)`)

// commaDecimal vírgula decimal dentro de percentuais extraídos.
var commaDecimal = regexp.MustCompile(`,`)

// ExtractGuarantees extrai garantias de nutrientes do texto livre.
// Devolve um mapa nutriente -> percentual, ex: {"N": "46", "K2O": "20"}.
// Para cada nutriente vale o primeiro padrão que casar.
func ExtractGuarantees(text string) map[string]string {
	guarantees := map[string]string{}
	if text == "" {
		return guarantees
	}
	for nutrient, patterns := range nutrientPatterns {
		for _, re := range patterns {
			if m := re.FindStringSubmatch(text); m != nil {
				guarantees[nutrient] = commaDecimal.ReplaceAllString(m[1], ".")
				break
			}
		}
	}
	return guarantees
}

// ExtractMAPACode extrai um registro MAPA em formato frouxo do texto livre.
// Devolve "" quando nenhum padrão casa. Ex: "PR 00551-7".
func ExtractMAPACode(text string) string {
	if text == "" {
		return ""
	}
	for _, re := range mapaCodePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			code := ufSpacing.ReplaceAllString(m[1], "$1 $2")
			return code
		}
	}
	return ""
}
