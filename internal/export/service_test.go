package export

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sergioaramos/mistral-doc-extractor/internal/record"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExportRecordsXLSX(t *testing.T) {
	recs := []record.Record{
		{
			"fiscal_document":     true,
			"company_information": map[string]any{"legal_name": "Acme SAS"},
			"location":            map[string]any{"country": "Colombia"},
			"tax_information": map[string]any{
				"tax_document_type":         "NIT",
				"tax_identification_number": "900123456",
				"verification_digit":        "7",
				"tax_office":                "Dirección de Impuestos y Aduanas Nacionales",
			},
			"registration": map[string]any{"registration_date": "2021-04-15"},
		},
		{
			"location": map[string]any{"country": "Perú"},
			"tax_information": map[string]any{
				"tax_document_type":         "RUC",
				"tax_identification_number": "20123456789",
			},
		},
	}

	out, err := NewService(testLogger()).ExportRecordsXLSX(recs)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, headers, rows[0][:len(headers)])

	assert.Equal(t, "Colombia", rows[1][0])
	assert.Equal(t, "Acme SAS", rows[1][1])
	assert.Equal(t, "NIT", rows[1][2])
	assert.Equal(t, "900123456", rows[1][3])
	assert.Equal(t, "7", rows[1][4])
	assert.Equal(t, "true", rows[1][6])
	assert.Equal(t, "2021-04-15", rows[1][7])

	assert.Equal(t, "Perú", rows[2][0])
	assert.Equal(t, "RUC", rows[2][2])
	assert.Equal(t, "20123456789", rows[2][3])
}

func TestExportRecordsXLSXEmpty(t *testing.T) {
	out, err := NewService(testLogger()).ExportRecordsXLSX(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
