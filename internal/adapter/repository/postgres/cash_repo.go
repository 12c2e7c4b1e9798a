package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/onul/clinicdesk/internal/domain"
	"github.com/onul/clinicdesk/internal/usecase"
)

const cashRecordColumns = `id, occurred_at, type, amount, description, category,
	is_closed, closing_amount, closed_at, created_at, updated_at`

// CashRecordRepository implements usecase.CashRecordRepository.
type CashRecordRepository struct {
	pool *pgxpool.Pool
}

// NewCashRecordRepository creates a new CashRecordRepository.
func NewCashRecordRepository(pool *pgxpool.Pool) *CashRecordRepository {
	return &CashRecordRepository{pool: pool}
}

// Create inserts a new cash record.
func (r *CashRecordRepository) Create(ctx context.Context, record *domain.CashRecord) error {
	_, err := r.pool.Exec(ctx, insertCashRecordSQL, insertCashRecordArgs(record)...)

	return err
}

// CreateTx inserts a new cash record inside an existing transaction.
func (r *CashRecordRepository) CreateTx(ctx context.Context, tx usecase.Transaction, record *domain.CashRecord) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, insertCashRecordSQL, insertCashRecordArgs(record)...)

	return err
}

const insertCashRecordSQL = `
	INSERT INTO cash_records (
		id, occurred_at, type, amount, description, category,
		is_closed, closing_amount, closed_at, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

func insertCashRecordArgs(record *domain.CashRecord) []any {
	return []any{
		record.ID,
		timeToPgTimestamptz(record.OccurredAt),
		string(record.Type),
		decimalToNumeric(record.Amount),
		record.Description,
		record.Category,
		record.IsClosed,
		decimalPtrToNumeric(record.ClosingAmount),
		timePtrToPgTimestamptz(record.ClosedAt),
		timeToPgTimestamptz(record.CreatedAt),
		timeToPgTimestamptz(record.UpdatedAt),
	}
}

// GetByID retrieves a cash record by ID.
func (r *CashRecordRepository) GetByID(ctx context.Context, id string) (*domain.CashRecord, error) {
	query := `SELECT ` + cashRecordColumns + ` FROM cash_records WHERE id = $1`

	record, err := scanCashRecord(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCashRecordNotFound
		}

		return nil, err
	}

	return record, nil
}

// ListByRange retrieves cash records with occurred_at in [from, to).
func (r *CashRecordRepository) ListByRange(ctx context.Context, from, to time.Time) ([]*domain.CashRecord, error) {
	query := `
		SELECT ` + cashRecordColumns + `
		FROM cash_records
		WHERE occurred_at >= $1 AND occurred_at < $2
		ORDER BY occurred_at, id
	`

	rows, err := r.pool.Query(ctx, query, timeToPgTimestamptz(from), timeToPgTimestamptz(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCashRecords(rows)
}

// ListBefore retrieves all cash records with occurred_at before cutoff.
// Used to fold the opening balance for a clinic day.
func (r *CashRecordRepository) ListBefore(ctx context.Context, cutoff time.Time) ([]*domain.CashRecord, error) {
	query := `
		SELECT ` + cashRecordColumns + `
		FROM cash_records
		WHERE occurred_at < $1
		ORDER BY occurred_at, id
	`

	rows, err := r.pool.Query(ctx, query, timeToPgTimestamptz(cutoff))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCashRecords(rows)
}

// Update updates a cash record.
func (r *CashRecordRepository) Update(ctx context.Context, record *domain.CashRecord) error {
	query := `
		UPDATE cash_records
		SET occurred_at = $2, type = $3, amount = $4, description = $5,
		    category = $6, updated_at = $7
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		record.ID,
		timeToPgTimestamptz(record.OccurredAt),
		string(record.Type),
		decimalToNumeric(record.Amount),
		record.Description,
		record.Category,
		timeToPgTimestamptz(record.UpdatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrCashRecordNotFound
	}

	return nil
}

// Delete removes a cash record by ID.
func (r *CashRecordRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cash_records WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrCashRecordNotFound
	}

	return nil
}

// DeleteTx removes a cash record by ID inside an existing transaction.
func (r *CashRecordRepository) DeleteTx(ctx context.Context, tx usecase.Transaction, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `DELETE FROM cash_records WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrCashRecordNotFound
	}

	return nil
}

// CloseRange marks every record with occurred_at in [from, to) as
// closed, stamping the closing amount. Re-closing a day simply updates
// the stamp, so the operation stays idempotent with last write wins.
func (r *CashRecordRepository) CloseRange(ctx context.Context, from, to time.Time, closingAmount decimal.Decimal, closedAt time.Time) (int64, error) {
	query := `
		UPDATE cash_records
		SET is_closed = TRUE, closing_amount = $3, closed_at = $4, updated_at = $4
		WHERE occurred_at >= $1 AND occurred_at < $2
	`

	tag, err := r.pool.Exec(ctx, query,
		timeToPgTimestamptz(from),
		timeToPgTimestamptz(to),
		decimalToNumeric(closingAmount),
		timeToPgTimestamptz(closedAt),
	)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func scanCashRecord(row pgx.Row) (*domain.CashRecord, error) {
	var (
		record        domain.CashRecord
		recordType    string
		amount        pgtype.Numeric
		closingAmount pgtype.Numeric
		occurredAt    pgtype.Timestamptz
		closedAt      pgtype.Timestamptz
		createdAt     pgtype.Timestamptz
		updatedAt     pgtype.Timestamptz
	)

	err := row.Scan(
		&record.ID,
		&occurredAt,
		&recordType,
		&amount,
		&record.Description,
		&record.Category,
		&record.IsClosed,
		&closingAmount,
		&closedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.OccurredAt = occurredAt.Time
	record.Type = domain.CashRecordType(recordType)
	record.Amount = numericToDecimal(amount)
	record.ClosingAmount = numericToDecimalPtr(closingAmount)
	record.ClosedAt = pgTimestamptzToTimePtr(closedAt)
	record.CreatedAt = createdAt.Time
	record.UpdatedAt = updatedAt.Time

	return &record, nil
}

func scanCashRecords(rows pgx.Rows) ([]*domain.CashRecord, error) {
	var records []*domain.CashRecord
	for rows.Next() {
		record, err := scanCashRecord(rows)
		if err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	return records, rows.Err()
}
