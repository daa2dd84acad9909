package postprocess

import (
	"log/slog"
	"strings"

	"github.com/sergioaramos/mistral-doc-extractor/constants"
	"github.com/sergioaramos/mistral-doc-extractor/internal/record"
)

// validateTaxID backfills a missing tax_identification_number from the raw
// text, applies the country's shape repairs (verification-digit extraction,
// separator handling), and finally reduces the stored value to digits only.
// Country repairs run before the final stripping step so an extracted
// verification digit never ends up duplicated inside the base number.
func validateTaxID(log *slog.Logger, taxInfo record.Record, country, rawText string) {
	if len(taxInfo) == 0 {
		return
	}

	taxID := taxInfo.String("tax_identification_number")
	docType := strings.ToUpper(taxInfo.String("tax_document_type"))

	if taxID == "" && rawText != "" {
		if found := extractTaxIDFromOCR(log, docType, country, rawText); found != "" {
			taxID = found
			taxInfo.SetString("tax_identification_number", found)
			log.Info("taxid.ocr_extracted", "value", found)
		}
	}
	if taxID == "" {
		return
	}

	if key, ok := constants.MatchCountry(country); ok {
		switch key {
		case constants.Colombia:
			repairColombiaTaxID(log, taxInfo, docType, taxID)
		case constants.Panama:
			repairPanamaTaxID(log, taxID)
		case constants.Argentina:
			repairArgentinaTaxID(log, taxInfo, docType, taxID)
		case constants.Peru:
			checkPeruTaxID(log, docType, taxID)
		}
	}

	taxInfo.SetString("tax_identification_number", record.Digits(taxInfo.String("tax_identification_number")))
}

// repairColombiaTaxID extracts the NIT verification digit when it is still
// embedded in the number.
func repairColombiaTaxID(log *slog.Logger, taxInfo record.Record, docType, taxID string) {
	if docType != "NIT" {
		return
	}
	clean := record.Digits(taxID)

	if len(clean) > 10 {
		if taxInfo.String("verification_digit") == "" {
			dv := clean[len(clean)-1:]
			base := clean[:len(clean)-1]
			taxInfo.SetString("verification_digit", dv)
			taxInfo.SetString("tax_identification_number", base)
			log.Info("taxid.colombia_dv_extracted", "base", base, "verification_digit", dv)
		}
		return
	}

	// NIT still in 900123456-7 form.
	if strings.Contains(taxID, "-") && taxInfo.String("verification_digit") == "" {
		parts := strings.Split(taxID, "-")
		if len(parts) == 2 && len(parts[1]) == 1 {
			taxInfo.SetString("verification_digit", parts[1])
			taxInfo.SetString("tax_identification_number", parts[0])
			log.Info("taxid.colombia_dv_detected", "verification_digit", parts[1])
		}
	}
}

// repairPanamaTaxID only reports the hyphenated form; the final stripping
// step removes the separators (Panama has no verification digit here).
func repairPanamaTaxID(log *slog.Logger, taxID string) {
	if strings.Contains(taxID, "-") {
		log.Info("taxid.panama_format", "raw", taxID, "clean", record.Digits(taxID))
	}
}

// repairArgentinaTaxID splits the CUIT/CUIL verification digit out, from the
// bare 11-digit form or the hyphenated one.
func repairArgentinaTaxID(log *slog.Logger, taxInfo record.Record, docType, taxID string) {
	if docType != "CUIT" && docType != "CUIL" {
		return
	}
	clean := record.Digits(taxID)

	if len(clean) == 11 {
		if taxInfo.String("verification_digit") == "" {
			taxInfo.SetString("verification_digit", clean[10:])
		}
		taxInfo.SetString("tax_identification_number", clean[:10])
		log.Info("taxid.argentina_dv_extracted", "base", clean[:10], "verification_digit", clean[10:])
		return
	}

	if parts := strings.Split(taxID, "-"); len(parts) == 3 && len(parts[2]) == 1 {
		taxInfo.SetString("verification_digit", parts[2])
		taxInfo.SetString("tax_identification_number", parts[0]+parts[1])
		log.Info("taxid.argentina_dv_detected", "verification_digit", parts[2])
	}
}

// checkPeruTaxID warns on implausible lengths; the value is written in
// cleaned form regardless.
func checkPeruTaxID(log *slog.Logger, docType, taxID string) {
	clean := record.Digits(taxID)
	if len(clean) == 0 {
		return
	}
	switch docType {
	case "RUC":
		if len(clean) != 11 {
			log.Warn("taxid.peru_ruc_length", "digits", len(clean))
		}
	case "DNI":
		if len(clean) != 8 {
			log.Warn("taxid.peru_dni_length", "digits", len(clean))
		}
	}
}
