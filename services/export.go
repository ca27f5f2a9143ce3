package services

import (
	"fmt"

	"tuition-payments/models"

	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{"Transaction ID", "Student ID", "Student Name", "Student Email", "Semester", "Amount", "Status", "Created At"}

// BuildPaymentsWorkbook writes all payment records into an Excel workbook
// for download. Rows stored through the raw insert route have no typed
// fields and show up mostly empty.
func BuildPaymentsWorkbook(records []models.PaymentRecord) (*excelize.File, error) {
	f := excelize.NewFile()

	const sheet = "Payments"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	for i, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, rec := range records {
		row := i + 2
		values := []interface{}{
			rec.TransactionID,
			rec.StudentID,
			rec.StudentName,
			rec.StudentEmail,
			rec.Semester,
			rec.Amount,
			rec.Status,
			rec.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, row)
			if err != nil {
				return nil, fmt.Errorf("failed to compute cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	return f, nil
}
