package country

import (
	"log/slog"
	"regexp"

	"github.com/sergioaramos/mistral-doc-extractor/constants"
	"github.com/sergioaramos/mistral-doc-extractor/internal/record"
)

type argentinaProcessor struct{}

func (argentinaProcessor) CountryName() constants.CountryKey { return constants.Argentina }

// Hyphenated CUIT/CUIL: 20-12345678-9.
var reHyphenCUIT = regexp.MustCompile(`(\d{2})-(\d{8})-(\d)`)

func (p argentinaProcessor) Process(log *slog.Logger, rec record.Record, rawText string) {
	if log == nil {
		log = slog.Default()
	}
	taxInfo := rec.Ensure("tax_information")

	p.setDocumentType(rec, taxInfo)
	p.processCUIT(log, taxInfo)

	if taxInfo.String("tax_office") == "" {
		taxInfo.SetString("tax_office", constants.TaxOffices[constants.Argentina])
	}

	p.processRepresentative(log, rec)
}

// Companies carry CUIT; it is also the fiscal-document default.
func (argentinaProcessor) setDocumentType(rec, taxInfo record.Record) {
	companyName := rec.Section("company_information").String("legal_name")
	if companyName != "" {
		taxInfo.SetString("tax_document_type", "CUIT")
	} else if taxInfo.String("tax_document_type") == "" {
		taxInfo.SetString("tax_document_type", "CUIT")
	}
}

// processCUIT splits a CUIT/CUIL into base number and verification digit,
// either from the hyphenated form or by peeling the last of 11 bare digits.
func (argentinaProcessor) processCUIT(log *slog.Logger, taxInfo record.Record) {
	taxID := taxInfo.String("tax_identification_number")

	if m := reHyphenCUIT.FindStringSubmatch(taxID); m != nil {
		base := m[1] + m[2]
		taxInfo.SetString("verification_digit", m[3])
		taxInfo.SetString("tax_identification_number", base)
		log.Info("argentina.cuit", "base", base, "verification_digit", m[3])
		return
	}

	if len(taxID) == 11 {
		if taxInfo.String("verification_digit") == "" {
			taxInfo.SetString("verification_digit", taxID[10:])
		}
		taxInfo.SetString("tax_identification_number", taxID[:10])
		log.Info("argentina.cuit", "base", taxID[:10], "verification_digit", taxID[10:])
	}
}

func (argentinaProcessor) processRepresentative(log *slog.Logger, rec record.Record) {
	rep := rec.Section("legal_representative")
	if len(rep) == 0 {
		return
	}
	if rep.String("document_type") == "" {
		rep.SetString("document_type", "DNI")
	}

	// A representative identified by CUIT/CUIL carries the same trailing
	// verification digit; strip it from an 11-digit number.
	docType := rep.String("document_type")
	docNumber := rep.String("document_number")
	if (docType == "CUIT" || docType == "CUIL") && len(docNumber) == 11 {
		rep.SetString("document_number", docNumber[:10])
	}
}
