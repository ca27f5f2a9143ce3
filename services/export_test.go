package services

import (
	"testing"
	"time"

	"tuition-payments/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPaymentsWorkbook(t *testing.T) {
	records := []models.PaymentRecord{
		{
			TransactionID: "tx1",
			StudentID:     "S1",
			StudentName:   "Asha",
			StudentEmail:  "a@x.com",
			Semester:      "Fall 2025",
			Amount:        5000,
			Status:        "Paid",
			CreatedAt:     time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC),
		},
		{TransactionID: "tx2", StudentName: "Rahim", Amount: 4200, Status: "Pending"},
	}

	f, err := BuildPaymentsWorkbook(records)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Payments")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Transaction ID", rows[0][0])
	assert.Equal(t, "tx1", rows[1][0])
	assert.Equal(t, "Asha", rows[1][2])
	assert.Equal(t, "tx2", rows[2][0])
}
