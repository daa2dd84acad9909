package country

import (
	"log/slog"

	"github.com/sergioaramos/mistral-doc-extractor/constants"
	"github.com/sergioaramos/mistral-doc-extractor/internal/record"
)

type peruProcessor struct{}

func (peruProcessor) CountryName() constants.CountryKey { return constants.Peru }

func (p peruProcessor) Process(log *slog.Logger, rec record.Record, rawText string) {
	if log == nil {
		log = slog.Default()
	}
	taxInfo := rec.Ensure("tax_information")

	// Fiscal documents in Peru carry RUC.
	if taxInfo.String("tax_document_type") == "" {
		taxInfo.SetString("tax_document_type", "RUC")
		log.Info("peru.document_type_default", "tax_document_type", "RUC")
	}

	p.validateRUC(log, taxInfo)

	if taxInfo.String("tax_office") == "" {
		taxInfo.SetString("tax_office", constants.TaxOffices[constants.Peru])
	}

	p.processRepresentative(log, rec)
}

// validateRUC strips separators and warns when the result is not the 11
// digits a Peruvian RUC must have. The cleaned value is kept either way.
func (peruProcessor) validateRUC(log *slog.Logger, taxInfo record.Record) {
	if taxInfo.String("tax_document_type") != "RUC" {
		return
	}
	taxID := taxInfo.String("tax_identification_number")
	if taxID == "" {
		return
	}
	clean := record.Digits(taxID)
	if len(clean) > 0 && len(clean) != 11 {
		log.Warn("peru.ruc_length", "digits", len(clean))
	}
	taxInfo.SetString("tax_identification_number", clean)
}

func (peruProcessor) processRepresentative(log *slog.Logger, rec record.Record) {
	rep := rec.Section("legal_representative")
	if len(rep) == 0 {
		return
	}
	if rep.String("document_type") == "" {
		rep.SetString("document_type", "DNI")
		log.Info("peru.representative_default", "document_type", "DNI")
	}
}
