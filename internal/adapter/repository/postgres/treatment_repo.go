package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/onul/clinicdesk/internal/domain"
	"github.com/onul/clinicdesk/internal/usecase"
)

const treatmentColumns = `id, chart_number, patient_name, doctor, amount,
	description, treated_at, cash_record_id, created_at`

// TreatmentRepository implements usecase.TreatmentRepository.
type TreatmentRepository struct {
	pool *pgxpool.Pool
}

// NewTreatmentRepository creates a new TreatmentRepository.
func NewTreatmentRepository(pool *pgxpool.Pool) *TreatmentRepository {
	return &TreatmentRepository{pool: pool}
}

// CreateTx inserts a treatment inside an existing transaction. The
// paired income cash record is written in the same transaction.
func (r *TreatmentRepository) CreateTx(ctx context.Context, tx usecase.Transaction, treatment *domain.Treatment) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO treatments (
			id, chart_number, patient_name, doctor, amount,
			description, treated_at, cash_record_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := pgxTx.Exec(ctx, query,
		treatment.ID,
		treatment.ChartNumber,
		treatment.PatientName,
		treatment.Doctor,
		decimalToNumeric(treatment.Amount),
		treatment.Description,
		timeToPgTimestamptz(treatment.TreatedAt),
		treatment.CashRecordID,
		timeToPgTimestamptz(treatment.CreatedAt),
	)

	return err
}

// GetByID retrieves a treatment by ID.
func (r *TreatmentRepository) GetByID(ctx context.Context, id string) (*domain.Treatment, error) {
	query := `SELECT ` + treatmentColumns + ` FROM treatments WHERE id = $1`

	treatment, err := scanTreatment(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTreatmentNotFound
		}

		return nil, err
	}

	return treatment, nil
}

// ListByRange retrieves treatments with treated_at in [from, to).
func (r *TreatmentRepository) ListByRange(ctx context.Context, from, to time.Time) ([]*domain.Treatment, error) {
	query := `
		SELECT ` + treatmentColumns + `
		FROM treatments
		WHERE treated_at >= $1 AND treated_at < $2
		ORDER BY treated_at, id
	`

	rows, err := r.pool.Query(ctx, query, timeToPgTimestamptz(from), timeToPgTimestamptz(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var treatments []*domain.Treatment
	for rows.Next() {
		treatment, err := scanTreatment(rows)
		if err != nil {
			return nil, err
		}

		treatments = append(treatments, treatment)
	}

	return treatments, rows.Err()
}

// DeleteTx removes a treatment inside an existing transaction.
func (r *TreatmentRepository) DeleteTx(ctx context.Context, tx usecase.Transaction, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `DELETE FROM treatments WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTreatmentNotFound
	}

	return nil
}

func scanTreatment(row pgx.Row) (*domain.Treatment, error) {
	var (
		treatment domain.Treatment
		amount    pgtype.Numeric
		treatedAt pgtype.Timestamptz
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(
		&treatment.ID,
		&treatment.ChartNumber,
		&treatment.PatientName,
		&treatment.Doctor,
		&amount,
		&treatment.Description,
		&treatedAt,
		&treatment.CashRecordID,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	treatment.Amount = numericToDecimal(amount)
	treatment.TreatedAt = treatedAt.Time
	treatment.CreatedAt = createdAt.Time

	return &treatment, nil
}
