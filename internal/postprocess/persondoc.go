package postprocess

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/sergioaramos/mistral-doc-extractor/constants"
	"github.com/sergioaramos/mistral-doc-extractor/internal/record"
)

// Contextual patterns keyed by role words near the representative's document.
// A match yields both the document type and, from the capturing group, the
// document number.
var repDocTypeOCRPatterns = map[constants.CountryKey][]labelledType{
	constants.Colombia: {
		{regexp.MustCompile(`(?i)(?:Representante|Gerente|Director).*?(?:C\.?C\.?|C[eé]dula).*?(\d{6,12})`), "CC"},
		{regexp.MustCompile(`(?i)(?:Representante|Gerente|Director).*?(?:C\.?E\.?).*?(\d{6,12})`), "CE"},
		{regexp.MustCompile(`(?i)(?:Representante|Gerente|Director).*?(?:Pasaporte).*?([A-Z0-9]{6,12})`), "PP"},
	},
	constants.Panama: {
		{regexp.MustCompile(`(?i)(?:Representante|Gerente|Director).*?(?:C\.?I\.?|C[eé]dula).*?(\d{1,2}-\d{3,4}-\d{3,4})`), "CI"},
		{regexp.MustCompile(`(?i)(?:Representante|Gerente|Director).*?(?:Pasaporte).*?([A-Z0-9]{6,12})`), "PASAPORTE"},
	},
	constants.Argentina: {
		{regexp.MustCompile(`(?i)(?:Representante|Gerente|Director).*?(?:DNI).*?(\d{7,8})`), "DNI"},
		{regexp.MustCompile(`(?i)(?:Representante|Gerente|Director).*?(?:CUIT|CUIL).*?(\d{2}-\d{8}-\d)`), "CUIT"},
	},
	constants.Peru: {
		{regexp.MustCompile(`(?i)(?:Representante|Gerente|Director).*?(?:DNI).*?(\d{8})`), "DNI"},
		{regexp.MustCompile(`(?i)(?:Representante|Gerente|Director).*?(?:CE).*?([A-Z0-9]{9,12})`), "CE"},
	},
}

// Per-type patterns for the document number alone, used when the type is
// known but the number is still missing.
var repDocNumberOCRPatterns = map[string]*regexp.Regexp{
	"CC":   regexp.MustCompile(`(?i)(?:Representante|Gerente|Director).*?(?:C\.?C\.?|C[eé]dula).*?(?:No\.?|Numero|Número)?:?\s*(\d{6,12})`),
	"CE":   regexp.MustCompile(`(?i)(?:Representante|Gerente|Director).*?(?:C\.?E\.?).*?(?:No\.?|Numero|Número)?:?\s*(\d{6,12})`),
	"TI":   regexp.MustCompile(`(?i)(?:Representante|Gerente|Director).*?(?:T\.?I\.?).*?(?:No\.?|Numero|Número)?:?\s*(\d{6,12})`),
	"PP":   regexp.MustCompile(`(?i)(?:Representante|Gerente|Director).*?(?:Pasaporte).*?(?:No\.?|Numero|Número)?:?\s*([A-Z0-9]{6,12})`),
	"CI":   regexp.MustCompile(`(?i)(?:Representante|Gerente|Director).*?(?:C\.?I\.?|C[eé]dula).*?(?:No\.?|Numero|Número)?:?\s*(\d{1,2}-\d{3,4}-\d{3,4}|\d{5,12})`),
	"DNI":  regexp.MustCompile(`(?i)(?:Representante|Gerente|Director).*?(?:DNI).*?(?:No\.?|Numero|Número)?:?\s*(\d{7,8})`),
	"CUIT": regexp.MustCompile(`(?i)(?:Representante|Gerente|Director).*?(?:CUIT).*?(?:No\.?|Numero|Número)?:?\s*(\d{2}-\d{8}-\d|\d{11})`),
	"CUIL": regexp.MustCompile(`(?i)(?:Representante|Gerente|Director).*?(?:CUIL).*?(?:No\.?|Numero|Número)?:?\s*(\d{2}-\d{8}-\d|\d{11})`),
}

// validatePersonDocument corrects the legal representative's document_type and
// document_number independently.
func validatePersonDocument(log *slog.Logger, rep record.Record, country, rawText string) {
	if len(rep) == 0 {
		return
	}
	validateRepDocumentType(log, rep, country, rawText)
	validateRepDocumentNumber(log, rep, country, rawText)
}

func validateRepDocumentType(log *slog.Logger, rep record.Record, country, rawText string) {
	currentType := strings.ToUpper(rep.String("document_type"))

	if currentType == "" && rawText != "" {
		if key, ok := constants.MatchCountry(country); ok {
			for _, p := range repDocTypeOCRPatterns[key] {
				if m := p.re.FindStringSubmatch(rawText); m != nil {
					currentType = p.docType
					rep.SetString("document_number", m[1])
					log.Info("persondoc.ocr_detected", "doc_type", p.docType, "doc_number", m[1])
					break
				}
			}
		}
	}

	key, ok := constants.MatchCountry(country)

	// Nothing extracted anywhere: assign the country default and stop.
	if currentType == "" {
		if ok {
			def := constants.DefaultPersonDocTypes[key]
			rep.SetString("document_type", def)
			log.Info("persondoc.type_default", "country", key, "document_type", def)
		}
		return
	}

	if !ok {
		return
	}

	if !constants.IsValidPersonDocType(key, currentType) {
		def := constants.DefaultPersonDocTypes[key]
		log.Info("persondoc.type_corrected", "from", currentType, "to", def)
		rep.SetString("document_type", def)
	} else {
		rep.SetString("document_type", currentType)
	}
}

func validateRepDocumentNumber(log *slog.Logger, rep record.Record, country, rawText string) {
	docNumber := rep.String("document_number")
	docType := strings.ToUpper(rep.String("document_type"))

	if docNumber == "" && rawText != "" && docType != "" {
		if re, ok := repDocNumberOCRPatterns[docType]; ok {
			if m := re.FindStringSubmatch(rawText); m != nil {
				docNumber = m[1]
				rep.SetString("document_number", docNumber)
				log.Info("persondoc.number_ocr_detected", "doc_number", docNumber)
			}
		}
	}
	if docNumber == "" {
		return
	}

	// Passport-type codes keep letters; everything else reduces to digits.
	var clean string
	if docType == "PP" || docType == "PASAPORTE" {
		clean = record.AlphaNum(docNumber)
	} else {
		clean = record.Digits(docNumber)
	}

	if key, ok := constants.MatchCountry(country); ok {
		switch key {
		case constants.Colombia:
			if docType == "CC" && (len(clean) < 5 || len(clean) > 12) {
				log.Warn("persondoc.colombia_length", "doc_number", clean, "length", len(clean))
			}
		case constants.Panama:
			if docType == "CI" {
				if strings.Contains(docNumber, "-") && strings.ReplaceAll(docNumber, "-", "") != clean {
					log.Info("persondoc.panama_cleaned", "raw", docNumber, "clean", clean)
				}
				if len(clean) < 5 || len(clean) > 12 {
					log.Warn("persondoc.panama_length", "doc_number", clean, "length", len(clean))
				}
			}
		case constants.Argentina:
			if docType == "DNI" && (len(clean) < 7 || len(clean) > 9) {
				log.Warn("persondoc.argentina_dni_length", "doc_number", clean, "length", len(clean))
			} else if (docType == "CUIT" || docType == "CUIL") && len(clean) != 11 {
				log.Warn("persondoc.argentina_cuit_length", "length", len(clean))
			}
		case constants.Peru:
			if docType == "DNI" && len(clean) != 8 {
				log.Warn("persondoc.peru_dni_length", "length", len(clean))
			}
		}
	}

	rep.SetString("document_number", clean)
}
