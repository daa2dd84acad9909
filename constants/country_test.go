package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldCountry(t *testing.T) {
	assert.Equal(t, "panama", FoldCountry("Panamá"))
	assert.Equal(t, "peru", FoldCountry("  PERÚ "))
	assert.Equal(t, "colombia", FoldCountry("Colombia"))
}

func TestMatchCountry(t *testing.T) {
	tests := []struct {
		in   string
		want CountryKey
		ok   bool
	}{
		{"Colombia", Colombia, true},
		{"República de Colombia", Colombia, true},
		{"Panamá", Panama, true},
		{"república argentina", Argentina, true},
		{"Perú", Peru, true},
		{"", "", false},
		{"Chile", "", false},
	}
	for _, tt := range tests {
		key, ok := MatchCountry(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, key, tt.in)
	}
}

func TestIsValidTaxDocType(t *testing.T) {
	assert.True(t, IsValidTaxDocType(Colombia, "NIT"))
	assert.True(t, IsValidTaxDocType(Colombia, "cc"))
	assert.False(t, IsValidTaxDocType(Colombia, "RUC"))
	assert.True(t, IsValidTaxDocType(Argentina, "CUIL"))
	assert.False(t, IsValidTaxDocType(Peru, "CUIT"))
}

func TestIsValidPersonDocType(t *testing.T) {
	assert.True(t, IsValidPersonDocType(Panama, "pasaporte"))
	assert.True(t, IsValidPersonDocType(Argentina, "LE"))
	assert.False(t, IsValidPersonDocType(Peru, "CC"))
}

func TestEveryCountryHasDefaults(t *testing.T) {
	for _, key := range allCountries {
		assert.NotEmpty(t, DisplayNames[key])
		assert.NotEmpty(t, TaxOffices[key])
		assert.NotEmpty(t, CompanyTaxDocTypes[key])
		assert.NotEmpty(t, DefaultPersonDocTypes[key])
		assert.NotEmpty(t, ValidTaxDocTypes[key])
		assert.NotEmpty(t, ValidPersonDocTypes[key])
	}
}
