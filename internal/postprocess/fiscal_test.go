package postprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFiscalValidateMalformedInputReturnedUnchanged(t *testing.T) {
	in := `not json`
	out := NewFiscalValidator(testLogger()).Validate([]byte(in), "RUT")
	assert.Equal(t, in, string(out))
}

func TestFiscalValidateAlreadyTrueUntouched(t *testing.T) {
	in := `{"fiscal_document": true}`
	out := NewFiscalValidator(testLogger()).Validate([]byte(in), "")
	assert.Equal(t, in, string(out))
}

// The flag only ever moves from false to true, never the reverse.
func TestFiscalValidateNeverDowngrades(t *testing.T) {
	in := `{"fiscal_document": true, "location": {"country": "Colombia"}}`
	out := NewFiscalValidator(testLogger()).Validate([]byte(in), "texto sin evidencia alguna")
	rec := decode(t, []byte(out))
	assert.Equal(t, true, rec["fiscal_document"])
}

func TestFiscalValidateColombiaSingleSignalSuffices(t *testing.T) {
	in := []byte(`{"fiscal_document": false, "location": {"country": "Colombia"}}`)
	raw := "Registro Único Tributario RUT NIT 900123456-7" // no DIAN mention

	out := NewFiscalValidator(testLogger()).Validate(in, raw)
	rec := decode(t, out)
	assert.Equal(t, true, rec["fiscal_document"])
}

func TestFiscalValidatePanamaNeedsBothSignals(t *testing.T) {
	in := []byte(`{"fiscal_document": false, "location": {"country": "Panamá"}}`)

	// Hyphenated ID alone does not satisfy the conjunction.
	out := NewFiscalValidator(testLogger()).Validate(in, "Cédula 8-123-4567")
	rec := decode(t, out)
	assert.Equal(t, false, rec["fiscal_document"])

	out = NewFiscalValidator(testLogger()).Validate(in, "Cédula 8-123-4567 PanamaEmprende Aviso de Operación")
	rec = decode(t, out)
	assert.Equal(t, true, rec["fiscal_document"])
}

func TestFiscalValidateArgentinaConjunction(t *testing.T) {
	in := []byte(`{"fiscal_document": false, "location": {"country": "Argentina"}}`)

	out := NewFiscalValidator(testLogger()).Validate(in, "CUIT 20-12345678-9")
	rec := decode(t, out)
	assert.Equal(t, false, rec["fiscal_document"])

	out = NewFiscalValidator(testLogger()).Validate(in, "CUIT 20-12345678-9 emitido por AFIP")
	rec = decode(t, out)
	assert.Equal(t, true, rec["fiscal_document"])
}

func TestFiscalValidatePeruConjunction(t *testing.T) {
	in := []byte(`{"fiscal_document": false, "location": {"country": "Perú"}}`)

	// SUNAT alone does not satisfy the conjunction: the RUC number is missing.
	out := NewFiscalValidator(testLogger()).Validate(in, "registrado ante SUNAT")
	rec := decode(t, out)
	assert.Equal(t, false, rec["fiscal_document"])

	out = NewFiscalValidator(testLogger()).Validate(in, "RUC: 20123456789 registrado ante SUNAT")
	rec = decode(t, out)
	assert.Equal(t, true, rec["fiscal_document"])
}

func TestFiscalValidateLongTaxIDAlone(t *testing.T) {
	in := []byte(`{
		"fiscal_document": false,
		"tax_information": {"tax_identification_number": "20123456789"}
	}`)

	out := NewFiscalValidator(testLogger()).Validate(in, "")
	rec := decode(t, out)
	assert.Equal(t, true, rec["fiscal_document"])
}

func TestFiscalValidateCountryGuardFromTextAlone(t *testing.T) {
	// No country field; guard patterns found in the text route the decision.
	in := []byte(`{"fiscal_document": false}`)
	raw := "DIAN Dirección de Impuestos y Aduanas Nacionales"

	out := NewFiscalValidator(testLogger()).Validate(in, raw)
	rec := decode(t, out)
	assert.Equal(t, true, rec["fiscal_document"])
}

func TestFiscalValidateNoEvidence(t *testing.T) {
	in := `{"fiscal_document": false}`
	out := NewFiscalValidator(testLogger()).Validate([]byte(in), "factura ordinaria de compra")
	assert.Equal(t, in, string(out))
}

func TestTruthy(t *testing.T) {
	assert.False(t, truthy(nil))
	assert.False(t, truthy(false))
	assert.False(t, truthy(""))
	assert.False(t, truthy(0.0))
	assert.True(t, truthy(true))
	assert.True(t, truthy("false")) // any non-empty string skips the validator
	assert.True(t, truthy(1.0))
}
