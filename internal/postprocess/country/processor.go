// Package country holds the per-country correction rules and the detector
// that infers a country from already-extracted fields or raw OCR text.
package country

import (
	"log/slog"
	"regexp"

	"github.com/sergioaramos/mistral-doc-extractor/constants"
	"github.com/sergioaramos/mistral-doc-extractor/internal/record"
)

// Processor applies country-specific defaulting and repair on a record,
// beyond what the generic field validators do. Implementations mutate the
// record in place and never fail.
type Processor interface {
	Process(log *slog.Logger, rec record.Record, rawText string)
	CountryName() constants.CountryKey
}

// registry is built once and never mutated afterwards.
var registry = map[constants.CountryKey]Processor{
	constants.Colombia:  colombiaProcessor{},
	constants.Panama:    panamaProcessor{},
	constants.Argentina: argentinaProcessor{},
	constants.Peru:      peruProcessor{},
}

// ForName resolves a free-form country string ("Colombia", "Panamá",
// "República Argentina") to its processor, or nil when no key is contained
// in the normalized string.
func ForName(country string) Processor {
	key, ok := constants.MatchCountry(country)
	if !ok {
		return nil
	}
	return registry[key]
}

// Structural tax-ID shapes, checked in strict priority order. The bare
// 11-digit Peru heuristic is ambiguous with an unhyphenated Argentine CUIT;
// only this ordering disambiguates, so it must not be reshuffled.
var (
	reNITHyphen = regexp.MustCompile(`\d{9,10}-\d`)
	reNITDotted = regexp.MustCompile(`\d{1,3}\.\d{3}\.\d{3}-\d`)
	rePanamaID  = regexp.MustCompile(`\d{1,2}-\d{3,4}-\d{3,4}`)
	reCUIT      = regexp.MustCompile(`\d{2}-\d{8}-\d`)
	reBareRUC   = regexp.MustCompile(`^\d{11}$`)
)

// Keyword/city evidence per country, scanned in fixed order after the
// structural checks miss.
var keywordEvidence = []struct {
	key constants.CountryKey
	re  *regexp.Regexp
}{
	{constants.Colombia, regexp.MustCompile(`(?i)NIT|DIAN|Colombia|Colombiana|Bogot[aá]|Medell[ií]n|Cali`)},
	{constants.Panama, regexp.MustCompile(`(?i)RUC|Panam[aá]|Ciudad de Panam[aá]|Panamanian`)},
	{constants.Argentina, regexp.MustCompile(`(?i)CUIT|CUIL|AFIP|Argentina|Buenos Aires|Mendoza|C[oó]rdoba`)},
	{constants.Peru, regexp.MustCompile(`(?i)RUC|Per[uú]|SUNAT|Lima|Arequipa|Trujillo`)},
}

// Detect infers the country from the extracted tax ID shape first and the raw
// OCR text second. It returns the display name to write back into
// location.country, or "" when nothing matched.
func Detect(log *slog.Logger, rec record.Record, rawText string) string {
	if log == nil {
		log = slog.Default()
	}
	taxID := rec.Section("tax_information").String("tax_identification_number")

	switch {
	case reNITHyphen.MatchString(taxID) || reNITDotted.MatchString(taxID):
		log.Info("country.detect", "country", constants.Colombia, "evidence", "nit_format")
		return constants.DisplayNames[constants.Colombia]
	case rePanamaID.MatchString(taxID):
		log.Info("country.detect", "country", constants.Panama, "evidence", "id_format")
		return constants.DisplayNames[constants.Panama]
	case reCUIT.MatchString(taxID):
		log.Info("country.detect", "country", constants.Argentina, "evidence", "cuit_format")
		return constants.DisplayNames[constants.Argentina]
	case reBareRUC.MatchString(taxID):
		log.Info("country.detect", "country", constants.Peru, "evidence", "ruc_length")
		return constants.DisplayNames[constants.Peru]
	}

	if rawText != "" {
		for _, ev := range keywordEvidence {
			if ev.re.MatchString(rawText) {
				log.Info("country.detect", "country", ev.key, "evidence", "ocr_keywords")
				return constants.DisplayNames[ev.key]
			}
		}
	}
	return ""
}
