// Package postprocess is the rule engine that corrects the structured record
// an external OCR+LLM extraction produced for a fiscal identification
// document: country resolution, country-specific repair, generic field
// validation, date normalization, and type coercion. Every entry point takes
// the record as JSON bytes and returns the input unchanged on any failure.
package postprocess

import (
	"log/slog"
	"strings"

	"github.com/sergioaramos/mistral-doc-extractor/internal/postprocess/country"
	"github.com/sergioaramos/mistral-doc-extractor/internal/record"
)

// Processor sequences the post-extraction corrections. It is stateless apart
// from the logger and safe for concurrent use.
type Processor struct {
	log *slog.Logger
}

func NewProcessor(log *slog.Logger) *Processor {
	if log == nil {
		log = slog.Default()
	}
	return &Processor{log: log}
}

// Process corrects the record so its fields are formatted per the resolved
// country's rules. Re-running Process on its own output yields the same
// output. On malformed input or an unexpected failure mid-pipeline the
// original bytes are returned untouched.
func (p *Processor) Process(data []byte, rawText string) (out []byte) {
	out = data

	rec, err := record.Decode(data)
	if err != nil {
		p.log.Error("postprocess.decode_error", "error", err)
		return data
	}

	defer func() {
		if r := recover(); r != nil {
			p.log.Error("postprocess.failed", "panic", r)
			out = data
		}
	}()

	// Resolve the country, inferring it when the extractor left it empty.
	countryVal := rec.Section("location").String("country")
	if countryVal == "" {
		if detected := country.Detect(p.log, rec, rawText); detected != "" {
			rec.Ensure("location").SetString("country", detected)
			countryVal = detected
		}
	}

	if proc := country.ForName(countryVal); proc != nil {
		proc.Process(p.log, rec, rawText)
		p.log.Info("postprocess.country_applied", "country", proc.CountryName())
	}

	p.applyGeneralFixes(rec, rawText)

	encoded, err := rec.Encode()
	if err != nil {
		p.log.Error("postprocess.encode_error", "error", err)
		return data
	}
	p.log.Info("postprocess.done")
	return encoded
}

// applyGeneralFixes runs the country-agnostic corrections, in fixed order.
func (p *Processor) applyGeneralFixes(rec record.Record, rawText string) {
	taxInfo := rec.Ensure("tax_information")
	legalRep := rec.Ensure("legal_representative")
	countryVal := rec.Section("location").String("country")

	validateTaxDocument(p.log, taxInfo, rec, countryVal, rawText)
	validateTaxID(p.log, taxInfo, countryVal, rawText)
	validatePersonDocument(p.log, legalRep, countryVal, rawText)

	normalizeDates(rec)

	// fiscal_document must leave the pipeline as a real boolean.
	if v, ok := rec["fiscal_document"]; ok {
		if _, isBool := v.(bool); !isBool {
			if s, isStr := v.(string); isStr {
				rec["fiscal_document"] = strings.EqualFold(s, "true")
			}
		}
	}
}

// Run applies fiscal-status validation followed by full post-processing, the
// sequence the upload pipeline uses.
func Run(log *slog.Logger, data []byte, rawText string) []byte {
	validated := NewFiscalValidator(log).Validate(data, rawText)
	return NewProcessor(log).Process(validated, rawText)
}
