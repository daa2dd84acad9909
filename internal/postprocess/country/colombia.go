package country

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/sergioaramos/mistral-doc-extractor/constants"
	"github.com/sergioaramos/mistral-doc-extractor/internal/record"
)

type colombiaProcessor struct{}

func (colombiaProcessor) CountryName() constants.CountryKey { return constants.Colombia }

// Dotted NIT with verification digit: 900.123.456-7.
var reDottedNIT = regexp.MustCompile(`(\d{1,3}(?:\.\d{3}){2})-(\d)`)

func (p colombiaProcessor) Process(log *slog.Logger, rec record.Record, rawText string) {
	if log == nil {
		log = slog.Default()
	}
	taxInfo := rec.Ensure("tax_information")

	p.setDocumentType(rec, taxInfo)
	p.processNIT(log, taxInfo)

	if taxInfo.String("tax_office") == "" {
		taxInfo.SetString("tax_office", constants.TaxOffices[constants.Colombia])
	}

	p.processRepresentative(log, rec)
}

// Companies always carry NIT; it is also the fiscal-document default.
func (colombiaProcessor) setDocumentType(rec, taxInfo record.Record) {
	companyName := rec.Section("company_information").String("legal_name")
	if companyName != "" {
		taxInfo.SetString("tax_document_type", "NIT")
	} else if taxInfo.String("tax_document_type") == "" {
		taxInfo.SetString("tax_document_type", "NIT")
	}
}

// processNIT splits a composite NIT into base number and verification digit.
func (colombiaProcessor) processNIT(log *slog.Logger, taxInfo record.Record) {
	taxID := taxInfo.String("tax_identification_number")

	if m := reDottedNIT.FindStringSubmatch(taxID); m != nil {
		base, dv := record.Digits(m[1]), m[2]
		taxInfo.SetString("verification_digit", dv)
		taxInfo.SetString("tax_identification_number", base)
		log.Info("colombia.nit", "base", base, "verification_digit", dv)
		return
	}

	// Undotted but hyphenated: 900123456-7.
	if strings.Contains(taxID, "-") {
		parts := strings.SplitN(taxID, "-", 2)
		if len(parts) == 2 && len(parts[1]) == 1 && record.Digits(parts[1]) == parts[1] {
			base := record.Digits(parts[0])
			taxInfo.SetString("verification_digit", parts[1])
			taxInfo.SetString("tax_identification_number", base)
			log.Info("colombia.nit", "base", base, "verification_digit", parts[1])
		}
	}
}

func (colombiaProcessor) processRepresentative(log *slog.Logger, rec record.Record) {
	rep := rec.Section("legal_representative")
	if len(rep) == 0 {
		return
	}
	if rep.String("document_type") == "" {
		rep.SetString("document_type", "CC")
		log.Info("colombia.representative_default", "document_type", "CC")
	}
}
