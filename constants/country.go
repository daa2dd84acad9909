package constants

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CountryKey is the canonical lowercase key for a supported country.
type CountryKey string

const (
	Colombia  CountryKey = "colombia"
	Panama    CountryKey = "panama"
	Argentina CountryKey = "argentina"
	Peru      CountryKey = "peru"
)

// Ordered as detection and validation rules expect them to be checked.
var allCountries = []CountryKey{Colombia, Panama, Argentina, Peru}

// DisplayNames maps a country key to the name written back into
// location.country when the country was detected rather than extracted.
var DisplayNames = map[CountryKey]string{
	Colombia:  "Colombia",
	Panama:    "Panama",
	Argentina: "Argentina",
	Peru:      "Peru",
}

// TaxOffices holds the canonical tax-office name per country.
var TaxOffices = map[CountryKey]string{
	Colombia:  "Dirección de Impuestos y Aduanas Nacionales",
	Panama:    "Dirección General de Comercio Interior",
	Argentina: "Administración Federal de Ingresos Públicos",
	Peru:      "Superintendencia Nacional de Aduanas y de Administración Tributaria",
}

// ValidTaxDocTypes lists the tax_document_type codes accepted per country.
var ValidTaxDocTypes = map[CountryKey][]string{
	Colombia:  {"NIT", "CC", "CE", "TI", "PP"},
	Panama:    {"RUC", "CI"},
	Argentina: {"CUIT", "CUIL", "DNI"},
	Peru:      {"RUC", "DNI"},
}

// CompanyTaxDocTypes is the tax_document_type used for companies.
var CompanyTaxDocTypes = map[CountryKey]string{
	Colombia:  "NIT",
	Panama:    "RUC",
	Argentina: "CUIT",
	Peru:      "RUC",
}

// PersonTaxDocTypes is the fallback tax_document_type for natural persons.
var PersonTaxDocTypes = map[CountryKey]string{
	Colombia:  "CC",
	Panama:    "RUC", // Panama fiscal documents carry RUC even for persons
	Argentina: "CUIL",
	Peru:      "DNI",
}

// ValidPersonDocTypes lists the legal-representative document_type codes
// accepted per country.
var ValidPersonDocTypes = map[CountryKey][]string{
	Colombia:  {"CC", "CE", "TI", "PP"},
	Panama:    {"CI", "RUC", "PASAPORTE"},
	Argentina: {"DNI", "CUIT", "CUIL", "LE", "LC"},
	Peru:      {"DNI", "CE", "PTP"},
}

// DefaultPersonDocTypes is the legal-representative document_type assigned
// when the extracted one is missing or invalid.
var DefaultPersonDocTypes = map[CountryKey]string{
	Colombia:  "CC",
	Panama:    "CI",
	Argentina: "DNI",
	Peru:      "DNI",
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldCountry lowercases a country string and strips diacritics, so that
// "Panamá" and "Perú" compare equal to their registry keys.
func FoldCountry(s string) string {
	out, _, err := transform.String(foldTransformer, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return out
}

// MatchCountry resolves a free-form country string against the registry keys
// by normalized substring containment ("Republica de Colombia" -> colombia).
func MatchCountry(country string) (CountryKey, bool) {
	folded := FoldCountry(country)
	if folded == "" {
		return "", false
	}
	for _, key := range allCountries {
		if strings.Contains(folded, string(key)) {
			return key, true
		}
	}
	return "", false
}

// IsValidTaxDocType reports whether code is an accepted tax_document_type for
// the country. Comparison is done on the upper-cased code.
func IsValidTaxDocType(key CountryKey, code string) bool {
	for _, v := range ValidTaxDocTypes[key] {
		if v == strings.ToUpper(code) {
			return true
		}
	}
	return false
}

// IsValidPersonDocType reports whether code is an accepted legal-representative
// document_type for the country.
func IsValidPersonDocType(key CountryKey, code string) bool {
	for _, v := range ValidPersonDocTypes[key] {
		if v == strings.ToUpper(code) {
			return true
		}
	}
	return false
}
