package country

import (
	"log/slog"

	"github.com/sergioaramos/mistral-doc-extractor/constants"
	"github.com/sergioaramos/mistral-doc-extractor/internal/record"
)

type panamaProcessor struct{}

func (panamaProcessor) CountryName() constants.CountryKey { return constants.Panama }

func (p panamaProcessor) Process(log *slog.Logger, rec record.Record, rawText string) {
	if log == nil {
		log = slog.Default()
	}
	taxInfo := rec.Ensure("tax_information")

	// Fiscal documents in Panama carry RUC.
	if taxInfo.String("tax_document_type") == "" {
		taxInfo.SetString("tax_document_type", "RUC")
		log.Info("panama.document_type_default", "tax_document_type", "RUC")
	}

	p.processRUC(log, taxInfo)

	if taxInfo.String("tax_office") == "" {
		taxInfo.SetString("tax_office", constants.TaxOffices[constants.Panama])
	}

	p.processRepresentative(log, rec)
}

// processRUC strips separators from a hyphenated Panamanian ID (X-XXX-XXXX).
// There is no separate verification digit in this scheme.
func (panamaProcessor) processRUC(log *slog.Logger, taxInfo record.Record) {
	taxID := taxInfo.String("tax_identification_number")
	if rePanamaID.MatchString(taxID) {
		clean := record.Digits(taxID)
		taxInfo.SetString("tax_identification_number", clean)
		log.Info("panama.ruc", "raw", taxID, "clean", clean)
	}
}

func (panamaProcessor) processRepresentative(log *slog.Logger, rec record.Record) {
	rep := rec.Section("legal_representative")
	if len(rep) == 0 {
		return
	}
	if rep.String("document_type") == "" {
		rep.SetString("document_type", "CI")
		log.Info("panama.representative_default", "document_type", "CI")
	}
}
