// Package export writes batch extraction results as an XLSX workbook.
package export

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"veridoc/internal/domain"
	"veridoc/internal/schema"
	"veridoc/internal/validator"
)

// columns defines the workbook header row.
var columns = []string{
	"File",
	"Status",
	"Document Type",
	"Confidence",
	"Full Name",
	"Date of Birth",
	"Sex",
	"ID Number",
	"Fields Needing Review",
	"Tests Passed",
	"Errors",
	"Warnings",
	"Total Tokens",
	"Cost (USD)",
	"Error",
}

// Row is the outcome of one processed file. Result is nil when processing
// failed, and Err is nil when it succeeded.
type Row struct {
	Filename string
	Result   *domain.PipelineResult
	Err      error
}

// WriteWorkbook builds the batch results workbook and saves it to path.
func WriteWorkbook(path string, rows []Row) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Results"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	for i, h := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i := range rows {
		writeRow(f, sheet, i+2, &rows[i])
	}

	// Widen the text-heavy columns
	_ = f.SetColWidth(sheet, "A", "A", 32) // file
	_ = f.SetColWidth(sheet, "C", "C", 16) // type
	_ = f.SetColWidth(sheet, "E", "E", 28) // name
	_ = f.SetColWidth(sheet, "H", "I", 22) // id number, review
	_ = f.SetColWidth(sheet, "O", "O", 48) // error

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

// writeRow fills one worksheet row. Failed files carry only the filename
// and the error message.
func writeRow(f *excelize.File, sheet string, rowNum int, row *Row) {
	write := func(col int, v interface{}) {
		cell, _ := excelize.CoordinatesToCellName(col, rowNum)
		_ = f.SetCellValue(sheet, cell, v)
	}

	write(1, row.Filename)

	if row.Err != nil {
		write(2, "failed")
		write(15, row.Err.Error())
		return
	}

	res := row.Result
	write(2, string(res.Status))
	write(3, string(res.DocumentType))
	write(4, strconv.FormatFloat(res.ClassificationConfidence, 'f', 2, 64))

	if res.Status == domain.StatusSuccess {
		write(5, fieldValue(res.EssentialFields, schema.FieldFullName))
		write(6, fieldValue(res.EssentialFields, schema.FieldDateOfBirth))
		write(7, fieldValue(res.EssentialFields, schema.FieldSex))
		write(8, idNumber(res))
		write(9, reviewSummary(res))
		if res.Validation != nil {
			write(10, res.Validation.Passed)
			write(11, res.Validation.Errors)
			write(12, res.Validation.Warnings)
		}
	}

	write(13, res.Usage.TotalTokens)
	write(14, strconv.FormatFloat(res.Cost.TotalCost, 'f', 6, 64))
}

func fieldValue(fields map[string]domain.ExtractedField, name string) string {
	return fields[name].StringValue()
}

// idNumber picks the primary identifier column for the document type.
func idNumber(res *domain.PipelineResult) string {
	switch res.DocumentType {
	case domain.DocumentTypePassport:
		return fieldValue(res.Metadata, schema.FieldPassportNumber)
	case domain.DocumentTypeLicense:
		return fieldValue(res.Metadata, schema.FieldDLNumber)
	default:
		return fieldValue(res.Metadata, schema.FieldIDNumber)
	}
}

// reviewSummary condenses the per-field review statuses into one cell.
func reviewSummary(res *domain.PipelineResult) string {
	if res.Validation == nil {
		return ""
	}

	statuses := validator.ComputeFieldStatuses(res.Validation, res.Record())
	unsure, invalid := 0, 0
	for _, st := range statuses {
		switch st.Status {
		case domain.FieldStatusUnsure:
			unsure++
		case domain.FieldStatusInvalid:
			invalid++
		}
	}

	if unsure == 0 && invalid == 0 {
		return "all fields valid"
	}
	return fmt.Sprintf("%d invalid, %d unsure", invalid, unsure)
}
