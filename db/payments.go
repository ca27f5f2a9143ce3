package db

import (
	"context"
	"database/sql"
	"encoding/json"

	"tuition-payments/errors"
	"tuition-payments/models"
)

// InsertPayment stores a freshly created payment record and fills in the
// generated row id.
func (s *Store) InsertPayment(ctx context.Context, rec *models.PaymentRecord) error {
	var breakdown interface{}
	if len(rec.Breakdown) > 0 {
		breakdown = []byte(rec.Breakdown)
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO student_payments
		 (transaction_id, student_id, student_name, student_email, semester, amount, breakdown, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		rec.TransactionID, rec.StudentID, rec.StudentName, rec.StudentEmail,
		rec.Semester, rec.Amount, breakdown, rec.Status, rec.CreatedAt,
	).Scan(&rec.ID)
	if err != nil {
		return errors.NewStorageError("error saving payment record", err)
	}

	return nil
}

// UpdateStatus overwrites the status of the record keyed by transaction id
// and returns how many rows matched. A zero match is not an error here;
// the caller decides what to do with it.
func (s *Store) UpdateStatus(ctx context.Context, transactionID, status string) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"UPDATE student_payments SET status = $1 WHERE transaction_id = $2",
		status, transactionID)
	if err != nil {
		return 0, errors.NewStorageError("error updating payment status", err)
	}

	matched, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewStorageError("error checking payment update", err)
	}

	return matched, nil
}

// ListPayments returns every stored record in insertion order.
func (s *Store) ListPayments(ctx context.Context) ([]models.PaymentRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, COALESCE(transaction_id, ''), COALESCE(student_id, ''),
		        COALESCE(student_name, ''), COALESCE(student_email, ''),
		        COALESCE(semester, ''), COALESCE(amount, 0), breakdown,
		        COALESCE(status, ''), raw_doc, created_at
		 FROM student_payments ORDER BY id`)
	if err != nil {
		return nil, errors.NewStorageError("error fetching payments", err)
	}
	defer rows.Close()

	var records []models.PaymentRecord
	for rows.Next() {
		rec, err := scanPayment(rows)
		if err != nil {
			return nil, errors.NewStorageError("error reading payment row", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageError("error reading payment rows", err)
	}

	return records, nil
}

// GetByTransactionID returns the single record keyed by transaction id.
func (s *Store) GetByTransactionID(ctx context.Context, transactionID string) (*models.PaymentRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, COALESCE(transaction_id, ''), COALESCE(student_id, ''),
		        COALESCE(student_name, ''), COALESCE(student_email, ''),
		        COALESCE(semester, ''), COALESCE(amount, 0), breakdown,
		        COALESCE(status, ''), raw_doc, created_at
		 FROM student_payments WHERE transaction_id = $1`,
		transactionID)

	rec, err := scanPayment(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("invoice not found")
	}
	if err != nil {
		return nil, errors.NewStorageError("error fetching invoice", err)
	}

	return rec, nil
}

// InsertRaw stores a caller-supplied document verbatim, outside the order
// flow, and returns the generated row id.
func (s *Store) InsertRaw(ctx context.Context, doc json.RawMessage) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO student_payments (raw_doc, status) VALUES ($1, $2) RETURNING id",
		[]byte(doc), "").Scan(&id)
	if err != nil {
		return 0, errors.NewStorageError("error saving raw payment document", err)
	}

	return id, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(row rowScanner) (*models.PaymentRecord, error) {
	var rec models.PaymentRecord
	var breakdown, rawDoc []byte

	err := row.Scan(&rec.ID, &rec.TransactionID, &rec.StudentID, &rec.StudentName,
		&rec.StudentEmail, &rec.Semester, &rec.Amount, &breakdown, &rec.Status,
		&rawDoc, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}

	rec.Breakdown = json.RawMessage(breakdown)
	rec.Raw = json.RawMessage(rawDoc)
	return &rec, nil
}
