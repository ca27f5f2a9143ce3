package services

import (
	"bytes"
	"fmt"

	"tuition-payments/config"
	"tuition-payments/models"

	"github.com/jung-kurt/gofpdf"
)

// GenerateInvoicePDF renders a payment record as a downloadable PDF invoice.
func GenerateInvoicePDF(rec *models.PaymentRecord) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Tuition Payment Invoice")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(40, 10, fmt.Sprintf("Transaction ID: %s", rec.TransactionID))
	pdf.Ln(8)
	pdf.Cell(40, 10, fmt.Sprintf("Student: %s (%s)", rec.StudentName, rec.StudentID))
	pdf.Ln(8)
	pdf.Cell(40, 10, fmt.Sprintf("Email: %s", rec.StudentEmail))
	pdf.Ln(8)
	if rec.Semester != "" {
		pdf.Cell(40, 10, fmt.Sprintf("Semester: %s", rec.Semester))
		pdf.Ln(8)
	}
	pdf.Cell(40, 10, fmt.Sprintf("Amount: %.2f %s", rec.Amount, config.AppConfig.Currency))
	pdf.Ln(8)
	pdf.Cell(40, 10, fmt.Sprintf("Status: %s", rec.Status))
	pdf.Ln(8)
	pdf.Cell(40, 10, fmt.Sprintf("Created: %s", rec.CreatedAt.Format("2006-01-02 15:04:05 MST")))
	pdf.Ln(14)

	pdf.SetFont("Arial", "I", 10)
	pdf.Cell(40, 10, "University Accounts Office")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("error generating invoice PDF: %w", err)
	}

	return buf.Bytes(), nil
}
