package postprocess

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/sergioaramos/mistral-doc-extractor/constants"
	"github.com/sergioaramos/mistral-doc-extractor/internal/record"
)

// Country-specific evidentiary patterns for fiscal-status reclassification.
// The guard step matches them case-insensitively; the per-country decision
// step matches them exactly as written.
var fiscalPatternSources = map[constants.CountryKey]map[string]string{
	constants.Colombia: {
		"nit":  `\b\d{9,10}[-\s]?\d?\b`,
		"rut":  `\bRUT\b|Registro\s+[Úú]nico\s+Tributario`,
		"dian": `\bDIAN\b|Direcci[óo]n\s+de\s+Impuestos\s+y\s+Aduanas`,
	},
	constants.Panama: {
		"id":       `\b\d{1,2}[-\s]\d{3,4}[-\s]\d{3,4}\b`,
		"business": `PanamaEmprende|Aviso\s+de\s+Operaci[óo]n|establecimiento\s+comercial`,
	},
	constants.Argentina: {
		"cuit": `\b\d{2}[-\s]\d{8}[-\s]\d{1}\b`,
		"afip": `\bAFIP\b|Administraci[óo]n\s+Federal\s+de\s+Ingresos\s+P[úu]blicos`,
	},
	constants.Peru: {
		"ruc":   `\bRUC\s*[:=]?\s*\d{11}\b`,
		"sunat": `\bSUNAT\b|Superintendencia\s+Nacional\s+de\s+Aduanas`,
	},
}

var (
	fiscalPatterns       = map[constants.CountryKey]map[string]*regexp.Regexp{}
	fiscalPatternsFolded = map[constants.CountryKey]map[string]*regexp.Regexp{}
)

func init() {
	for key, named := range fiscalPatternSources {
		fiscalPatterns[key] = map[string]*regexp.Regexp{}
		fiscalPatternsFolded[key] = map[string]*regexp.Regexp{}
		for name, src := range named {
			fiscalPatterns[key][name] = regexp.MustCompile(src)
			fiscalPatternsFolded[key][name] = regexp.MustCompile(`(?i)` + src)
		}
	}
}

// FiscalValidator reclassifies documents the extractor marked as non-fiscal.
// It runs before post-processing, on the unmodified extractor output, and only
// ever flips fiscal_document from false to true.
type FiscalValidator struct {
	log *slog.Logger
}

func NewFiscalValidator(log *slog.Logger) *FiscalValidator {
	if log == nil {
		log = slog.Default()
	}
	return &FiscalValidator{log: log}
}

// Validate returns data with fiscal_document corrected to true when the raw
// text carries enough country-specific evidence. The input is returned
// unchanged when it is not a JSON object or no reclassification applies.
func (v *FiscalValidator) Validate(data []byte, rawText string) []byte {
	rec, err := record.Decode(data)
	if err != nil {
		v.log.Error("fiscal.decode_error", "error", err)
		return data
	}

	v.log.Info("fiscal.validate", "fiscal_document", rec["fiscal_document"])
	if truthy(rec["fiscal_document"]) {
		return data
	}

	if v.determineFiscalStatus(rawText, rec) {
		rec["fiscal_document"] = true
		v.log.Info("fiscal.reclassified")
		if out, err := rec.Encode(); err == nil {
			return out
		}
	}
	return data
}

// determineFiscalStatus applies the per-country evidentiary rules: Colombia
// needs any one signal, Panama all three, Argentina and Peru both of theirs.
func (v *FiscalValidator) determineFiscalStatus(text string, rec record.Record) bool {
	country := constants.FoldCountry(rec.Section("location").String("country"))

	// A tax identifier of plausible length is the strongest single signal.
	taxID := rec.Section("tax_information").String("tax_identification_number")
	if len(taxID) >= 8 {
		return true
	}

	switch {
	case country == string(constants.Colombia) || v.anyFolded(constants.Colombia, text):
		lower := strings.ToLower(text)
		return v.anyFolded(constants.Colombia, text) ||
			strings.Contains(lower, "nit") ||
			strings.Contains(lower, "rut") ||
			strings.Contains(lower, "dian")

	case country == string(constants.Panama) || v.anyFolded(constants.Panama, text):
		return v.matches(constants.Panama, "id", text) && v.matches(constants.Panama, "business", text)

	case country == string(constants.Argentina) || v.anyFolded(constants.Argentina, text):
		return v.matches(constants.Argentina, "cuit", text) && v.matches(constants.Argentina, "afip", text)

	case country == string(constants.Peru) || v.anyFolded(constants.Peru, text):
		return v.matches(constants.Peru, "ruc", text) && v.matches(constants.Peru, "sunat", text)
	}
	return false
}

func (v *FiscalValidator) anyFolded(key constants.CountryKey, text string) bool {
	for _, re := range fiscalPatternsFolded[key] {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func (v *FiscalValidator) matches(key constants.CountryKey, name, text string) bool {
	return fiscalPatterns[key][name].MatchString(text)
}

// truthy mirrors the loose check on the incoming fiscal_document value: the
// validator only runs when the flag is missing, false, empty, or zero.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	default:
		return true
	}
}
