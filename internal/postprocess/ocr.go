package postprocess

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/sergioaramos/mistral-doc-extractor/constants"
)

// Ordered regex alternatives for backfilling a missing tax identifier from the
// raw OCR text, most specific first: explicit labels, punctuation-tolerant
// acronyms, spelled-out labels.
var taxIDPatterns = map[constants.CountryKey]map[string][]*regexp.Regexp{
	constants.Colombia: {
		"NIT": {
			regexp.MustCompile(`(?i)NIT\s*:?\s*(\d{1,3}[.,]?\d{3}[.,]?\d{3}-?\d?)`),
			regexp.MustCompile(`(?i)N\.?I\.?T\.?\s*:?\s*(\d{1,3}[.,]?\d{3}[.,]?\d{3}-?\d?)`),
			regexp.MustCompile(`(?i)(?:Número|Numero)?\s*(?:de)?\s*(?:Identificación|Identificacion)?\s*(?:Tributaria?)?:?\s*(\d{1,3}[.,]?\d{3}[.,]?\d{3}-?\d?)`),
		},
	},
	constants.Panama: {
		"RUC": {
			regexp.MustCompile(`(?i)RUC\s*:?\s*(\d{1,2}-?\d{3,4}-?\d{3,4})`),
			regexp.MustCompile(`(?i)R\.?U\.?C\.?\s*:?\s*(\d{1,2}-?\d{3,4}-?\d{3,4})`),
			regexp.MustCompile(`(?i)Registro\s+[ÚúUu]nico\s+(?:de)?\s*Contribuyente\s*:?\s*(\d{1,2}-?\d{3,4}-?\d{3,4})`),
		},
	},
	constants.Argentina: {
		"CUIT": argentinaCUITPatterns,
		"CUIL": argentinaCUITPatterns,
	},
	constants.Peru: {
		"RUC": {
			regexp.MustCompile(`(?i)RUC\s*:?\s*(\d{11})`),
			regexp.MustCompile(`(?i)R\.?U\.?C\.?\s*:?\s*(\d{11})`),
			regexp.MustCompile(`(?i)Registro\s+[ÚúUu]nico\s+(?:de)?\s*Contribuyente\s*:?\s*(\d{11})`),
		},
	},
}

var argentinaCUITPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)CUIT\s*:?\s*(\d{2}-?\d{8}-?\d)`),
	regexp.MustCompile(`(?i)CUIL\s*:?\s*(\d{2}-?\d{8}-?\d)`),
	regexp.MustCompile(`(?i)C\.?U\.?I\.?T\.?\s*:?\s*(\d{2}-?\d{8}-?\d)`),
	regexp.MustCompile(`(?i)C\.?U\.?I\.?L\.?\s*:?\s*(\d{2}-?\d{8}-?\d)`),
}

// Last-resort searches: a bare digit run of the expected length anywhere in
// the text.
var taxIDFallbacks = map[constants.CountryKey]map[string]*regexp.Regexp{
	constants.Colombia:  {"NIT": regexp.MustCompile(`(\d{9,10})`)},
	constants.Argentina: {"CUIT": regexp.MustCompile(`(\d{11})`), "CUIL": regexp.MustCompile(`(\d{11})`)},
	constants.Peru:      {"RUC": regexp.MustCompile(`(\d{11})`)},
}

// extractTaxIDFromOCR searches the raw text for a tax identifier matching the
// document type and country, trying patterns from most to least specific.
// Returns "" when nothing matches or the combination is unsupported.
func extractTaxIDFromOCR(log *slog.Logger, docType, country, rawText string) string {
	if rawText == "" {
		return ""
	}
	key, ok := constants.MatchCountry(country)
	if !ok {
		return ""
	}
	docType = strings.ToUpper(docType)

	for _, re := range taxIDPatterns[key][docType] {
		if m := re.FindStringSubmatch(rawText); m != nil {
			return m[1]
		}
	}
	if re := taxIDFallbacks[key][docType]; re != nil {
		if m := re.FindStringSubmatch(rawText); m != nil {
			log.Info("ocr.tax_id_fallback", "country", key, "doc_type", docType, "value", m[1])
			return m[1]
		}
	}
	return ""
}
