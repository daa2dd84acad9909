package postprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sergioaramos/mistral-doc-extractor/internal/record"
)

func repWith(docType, docNumber string) record.Record {
	return record.Record{
		"document_type":   docType,
		"document_number": docNumber,
	}
}

func TestValidatePersonDocumentDefaults(t *testing.T) {
	tests := []struct {
		country string
		want    string
	}{
		{"Colombia", "CC"},
		{"Panamá", "CI"},
		{"Argentina", "DNI"},
		{"Perú", "DNI"},
	}
	for _, tt := range tests {
		rep := repWith("", "")
		validatePersonDocument(testLogger(), rep, tt.country, "")
		assert.Equal(t, tt.want, rep.String("document_type"), tt.country)
	}
}

func TestValidatePersonDocumentInvalidTypeCorrected(t *testing.T) {
	rep := repWith("NIT", "12345678")
	validatePersonDocument(testLogger(), rep, "Colombia", "")
	assert.Equal(t, "CC", rep.String("document_type"))
}

func TestValidatePersonDocumentValidTypeUppercased(t *testing.T) {
	rep := repWith("dni", "30123456")
	validatePersonDocument(testLogger(), rep, "Argentina", "")
	assert.Equal(t, "DNI", rep.String("document_type"))
	assert.Equal(t, "30123456", rep.String("document_number"))
}

func TestValidatePersonDocumentNumberCleaning(t *testing.T) {
	rep := repWith("CI", "8-123-4567")
	validatePersonDocument(testLogger(), rep, "Panamá", "")
	assert.Equal(t, "81234567", rep.String("document_number"))

	// Passports keep letters.
	rep = repWith("PP", "ab-123456")
	validatePersonDocument(testLogger(), rep, "Colombia", "")
	assert.Equal(t, "AB123456", rep.String("document_number"))
}

func TestValidatePersonDocumentOCRTypeAndNumber(t *testing.T) {
	rep := repWith("", "")
	raw := "Representante Legal identificado con C.C. No. 12345678"
	validatePersonDocument(testLogger(), rep, "Colombia", raw)

	assert.Equal(t, "CC", rep.String("document_type"))
	assert.Equal(t, "12345678", rep.String("document_number"))
}

func TestValidatePersonDocumentOCRNumberForKnownType(t *testing.T) {
	rep := repWith("DNI", "")
	raw := "Gerente General con DNI No. 30123456"
	validatePersonDocument(testLogger(), rep, "Argentina", raw)

	assert.Equal(t, "30123456", rep.String("document_number"))
}

func TestValidatePersonDocumentEmptySectionNoop(t *testing.T) {
	rep := record.Record{}
	validatePersonDocument(testLogger(), rep, "Colombia", "Representante C.C. 12345678")
	assert.Empty(t, rep)
}

func TestValidatePersonDocumentUnknownCountry(t *testing.T) {
	rep := repWith("", "12.345.678")
	validatePersonDocument(testLogger(), rep, "Chile", "")

	// No default type is assigned, and with no type the number is still
	// reduced to digits.
	assert.Equal(t, "", rep.String("document_type"))
	assert.Equal(t, "12345678", rep.String("document_number"))
}
