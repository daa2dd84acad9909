package country

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergioaramos/mistral-doc-extractor/constants"
	"github.com/sergioaramos/mistral-doc-extractor/internal/record"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func recWithTaxID(taxID string) record.Record {
	return record.Record{
		"tax_information": map[string]any{"tax_identification_number": taxID},
	}
}

func TestForName(t *testing.T) {
	require.NotNil(t, ForName("Colombia"))
	assert.Equal(t, constants.Colombia, ForName("República de Colombia").CountryName())
	assert.Equal(t, constants.Panama, ForName("Panamá").CountryName())
	assert.Equal(t, constants.Argentina, ForName("argentina").CountryName())
	assert.Equal(t, constants.Peru, ForName("PERÚ").CountryName())
	assert.Nil(t, ForName("Chile"))
	assert.Nil(t, ForName(""))
}

func TestDetectByTaxIDShape(t *testing.T) {
	tests := []struct {
		taxID string
		want  string
	}{
		{"900123456-7", "Colombia"},
		{"900.123.456-7", "Colombia"},
		{"8-123-4567", "Panama"},
		{"20-12345678-9", "Argentina"},
		{"20123456789", "Peru"}, // bare 11 digits
		{"12345", ""},
	}
	for _, tt := range tests {
		got := Detect(testLogger(), recWithTaxID(tt.taxID), "")
		assert.Equal(t, tt.want, got, tt.taxID)
	}
}

// Structural shapes outrank keyword evidence: a Colombian NIT wins even when
// the raw text is full of Peruvian references.
func TestDetectStructuralBeatsKeywords(t *testing.T) {
	got := Detect(testLogger(), recWithTaxID("900123456-7"), "SUNAT Lima Perú RUC")
	assert.Equal(t, "Colombia", got)
}

func TestDetectByKeywords(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Cámara de Comercio de Bogotá", "Colombia"},
		{"Ciudad de Panamá", "Panama"},
		{"AFIP Buenos Aires", "Argentina"},
		{"SUNAT Lima", "Peru"},
		{"sin pistas de ningún tipo", ""},
	}
	for _, tt := range tests {
		got := Detect(testLogger(), record.Record{}, tt.text)
		assert.Equal(t, tt.want, got, tt.text)
	}
}

// Keyword evidence is scanned in registry order, so shared acronyms resolve
// to the first country listing them.
func TestDetectKeywordOrder(t *testing.T) {
	// RUC appears in both the Panama and Peru lists; Panama is checked first.
	got := Detect(testLogger(), record.Record{}, "RUC")
	assert.Equal(t, "Panama", got)
}

func TestColombiaProcessor(t *testing.T) {
	rec := record.Record{
		"company_information": map[string]any{"legal_name": "Acme SAS"},
		"tax_information": map[string]any{
			"tax_identification_number": "900.123.456-7",
		},
		"legal_representative": map[string]any{"first_name": "Ana"},
	}
	colombiaProcessor{}.Process(testLogger(), rec, "")

	tax := rec.Section("tax_information")
	assert.Equal(t, "NIT", tax.String("tax_document_type"))
	assert.Equal(t, "900123456", tax.String("tax_identification_number"))
	assert.Equal(t, "7", tax.String("verification_digit"))
	assert.Equal(t, constants.TaxOffices[constants.Colombia], tax.String("tax_office"))
	assert.Equal(t, "CC", rec.Section("legal_representative").String("document_type"))
}

func TestColombiaProcessorPersonKeepsExistingType(t *testing.T) {
	rec := record.Record{
		"tax_information": map[string]any{
			"tax_document_type":         "CC",
			"tax_identification_number": "12345678",
		},
	}
	colombiaProcessor{}.Process(testLogger(), rec, "")
	assert.Equal(t, "CC", rec.Section("tax_information").String("tax_document_type"))
}

func TestPanamaProcessor(t *testing.T) {
	rec := record.Record{
		"tax_information": map[string]any{
			"tax_identification_number": "8-123-4567",
		},
		"legal_representative": map[string]any{"first_name": "Luis"},
	}
	panamaProcessor{}.Process(testLogger(), rec, "")

	tax := rec.Section("tax_information")
	assert.Equal(t, "RUC", tax.String("tax_document_type"))
	assert.Equal(t, "81234567", tax.String("tax_identification_number"))
	assert.Equal(t, "", tax.String("verification_digit"))
	assert.Equal(t, constants.TaxOffices[constants.Panama], tax.String("tax_office"))
	assert.Equal(t, "CI", rec.Section("legal_representative").String("document_type"))
}

func TestArgentinaProcessor(t *testing.T) {
	rec := record.Record{
		"tax_information": map[string]any{
			"tax_identification_number": "20-12345678-9",
		},
	}
	argentinaProcessor{}.Process(testLogger(), rec, "")

	tax := rec.Section("tax_information")
	assert.Equal(t, "CUIT", tax.String("tax_document_type"))
	assert.Equal(t, "2012345678", tax.String("tax_identification_number"))
	assert.Equal(t, "9", tax.String("verification_digit"))
}

func TestArgentinaProcessorBareElevenDigits(t *testing.T) {
	rec := record.Record{
		"tax_information": map[string]any{
			"tax_identification_number": "20123456789",
		},
	}
	argentinaProcessor{}.Process(testLogger(), rec, "")

	tax := rec.Section("tax_information")
	assert.Equal(t, "2012345678", tax.String("tax_identification_number"))
	assert.Equal(t, "9", tax.String("verification_digit"))
}

func TestArgentinaRepresentativeCUITTrimmed(t *testing.T) {
	rec := record.Record{
		"legal_representative": map[string]any{
			"document_type":   "CUIT",
			"document_number": "20123456789",
		},
	}
	argentinaProcessor{}.Process(testLogger(), rec, "")
	assert.Equal(t, "2012345678", rec.Section("legal_representative").String("document_number"))
}

func TestPeruProcessor(t *testing.T) {
	rec := record.Record{
		"tax_information": map[string]any{
			"tax_identification_number": "20-12345678-9",
		},
		"legal_representative": map[string]any{"first_name": "Rosa"},
	}
	peruProcessor{}.Process(testLogger(), rec, "")

	tax := rec.Section("tax_information")
	assert.Equal(t, "RUC", tax.String("tax_document_type"))
	assert.Equal(t, "20123456789", tax.String("tax_identification_number"))
	assert.Equal(t, constants.TaxOffices[constants.Peru], tax.String("tax_office"))
	assert.Equal(t, "DNI", rec.Section("legal_representative").String("document_type"))
}

func TestProcessorsCreateTaxInformation(t *testing.T) {
	for _, p := range registry {
		rec := record.Record{}
		p.Process(testLogger(), rec, "")
		_, ok := rec["tax_information"]
		assert.True(t, ok, p.CountryName())
	}
}
