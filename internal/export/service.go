// Package export renders processed records as XLSX workbooks.
package export

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/sergioaramos/mistral-doc-extractor/internal/record"
)

const sheetName = "Records"

var headers = []string{
	"Country",
	"Legal Name",
	"Tax Document Type",
	"Tax Identification Number",
	"Verification Digit",
	"Tax Office",
	"Fiscal Document",
	"Registration Date",
}

// Service writes record exports.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ExportRecordsXLSX renders the records into a single-sheet workbook and
// returns the serialized file.
func (s *Service) ExportRecordsXLSX(records []record.Record) ([]byte, error) {
	exportID := uuid.New().String()
	s.logger.Info("export.start", "export_id", exportID, "records", len(records))

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for i, rec := range records {
		row := rowValues(rec)
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", i+1, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	s.logger.Info("export.done", "export_id", exportID, "bytes", buf.Len())
	return buf.Bytes(), nil
}

func rowValues(rec record.Record) []any {
	loc := rec.Section("location")
	tax := rec.Section("tax_information")
	reg := rec.Section("registration")
	company := rec.Section("company_information")

	fiscal := ""
	if v, ok := rec["fiscal_document"]; ok {
		fiscal = fmt.Sprintf("%v", v)
	}

	return []any{
		truncate(loc.String("country"), 120),
		truncate(company.String("legal_name"), 240),
		tax.String("tax_document_type"),
		tax.String("tax_identification_number"),
		tax.String("verification_digit"),
		truncate(tax.String("tax_office"), 240),
		fiscal,
		reg.String("registration_date"),
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
