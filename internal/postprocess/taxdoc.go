package postprocess

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/sergioaramos/mistral-doc-extractor/constants"
	"github.com/sergioaramos/mistral-doc-extractor/internal/record"
)

type labelledType struct {
	re      *regexp.Regexp
	docType string
}

// Keyword/acronym evidence for the fiscal document-type code, per country.
var taxDocTypeOCRPatterns = map[constants.CountryKey][]labelledType{
	constants.Colombia: {
		{regexp.MustCompile(`(?i)NIT\s*:?\s*\d`), "NIT"},
		{regexp.MustCompile(`(?i)C[eé]dula\s*de\s*Ciudadan[ií]a`), "CC"},
		{regexp.MustCompile(`(?i)C\.?C\.?\s*:?\s*\d`), "CC"},
		{regexp.MustCompile(`(?i)C[eé]dula\s*de\s*Extranjer[ií]a`), "CE"},
		{regexp.MustCompile(`(?i)C\.?E\.?\s*:?\s*\d`), "CE"},
	},
	constants.Panama: {
		{regexp.MustCompile(`(?i)RUC\s*:?\s*\d`), "RUC"},
		{regexp.MustCompile(`(?i)C[eé]dula\s*de\s*Identidad`), "CI"},
		{regexp.MustCompile(`(?i)C\.?I\.?\s*:?\s*\d`), "CI"},
	},
	constants.Argentina: {
		{regexp.MustCompile(`(?i)CUIT\s*:?\s*\d`), "CUIT"},
		{regexp.MustCompile(`(?i)CUIL\s*:?\s*\d`), "CUIL"},
		{regexp.MustCompile(`(?i)DNI\s*:?\s*\d`), "DNI"},
	},
	constants.Peru: {
		{regexp.MustCompile(`(?i)RUC\s*:?\s*\d`), "RUC"},
		{regexp.MustCompile(`(?i)DNI\s*:?\s*\d`), "DNI"},
	},
}

// validateTaxDocument corrects tax_document_type against the country's valid
// set: companies get the company code, persons the person code; an extracted
// value that is already valid is kept.
func validateTaxDocument(log *slog.Logger, taxInfo, rec record.Record, country, rawText string) {
	if len(taxInfo) == 0 {
		return
	}

	companyName := rec.Section("company_information").String("legal_name")
	currentType := strings.ToUpper(taxInfo.String("tax_document_type"))

	// Missing type: look for keyword evidence in the raw text.
	fromOCR := false
	if currentType == "" && rawText != "" {
		if key, ok := constants.MatchCountry(country); ok {
			for _, p := range taxDocTypeOCRPatterns[key] {
				if p.re.MatchString(rawText) {
					currentType = p.docType
					fromOCR = true
					log.Info("taxdoc.ocr_detected", "doc_type", p.docType)
					break
				}
			}
		}
	}

	key, ok := constants.MatchCountry(country)
	if !ok {
		return
	}

	var correctType string
	switch key {
	case constants.Colombia:
		// Companies use NIT, natural persons CC.
		if companyName != "" {
			correctType = "NIT"
		} else if constants.IsValidTaxDocType(key, currentType) {
			correctType = currentType
		} else {
			correctType = "CC"
		}
	case constants.Panama:
		// Fiscal documents in Panama are keyed by RUC.
		correctType = "RUC"
	case constants.Argentina:
		if companyName != "" {
			correctType = "CUIT"
		} else if constants.IsValidTaxDocType(key, currentType) {
			correctType = currentType
		} else {
			correctType = "CUIL"
		}
	case constants.Peru:
		if companyName != "" {
			correctType = "RUC"
		} else {
			correctType = "DNI"
		}
	}

	if !constants.IsValidTaxDocType(key, currentType) {
		log.Info("taxdoc.corrected", "from", currentType, "to", correctType)
		taxInfo.SetString("tax_document_type", correctType)
	} else if fromOCR {
		taxInfo.SetString("tax_document_type", currentType)
	}
}
