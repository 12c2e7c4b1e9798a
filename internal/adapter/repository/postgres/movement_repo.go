package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/onul/clinicdesk/internal/domain"
	"github.com/onul/clinicdesk/internal/usecase"
)

const movementColumns = `id, product_id, type, quantity, unit_cost, notes,
	out_reason, out_chart_number, out_patient_name, out_doctor,
	occurred_at, created_at`

// MovementRepository implements usecase.MovementRepository. The out
// context is stored flattened; out_reason being NULL marks an inbound
// movement.
type MovementRepository struct {
	pool *pgxpool.Pool
}

// NewMovementRepository creates a new MovementRepository.
func NewMovementRepository(pool *pgxpool.Pool) *MovementRepository {
	return &MovementRepository{pool: pool}
}

// Create inserts a movement inside an existing transaction. Movements
// are only ever written in the same transaction as the stock counter.
func (r *MovementRepository) Create(ctx context.Context, tx usecase.Transaction, movement *domain.InventoryMovement) error {
	pgxTx := tx.(*Tx).PgxTx()

	var outReason, outChart, outPatient, outDoctor *string
	if movement.Out != nil {
		reason := string(movement.Out.Reason)
		outReason = &reason
		outChart = &movement.Out.ChartNumber
		outPatient = &movement.Out.PatientName
		outDoctor = &movement.Out.Doctor
	}

	query := `
		INSERT INTO inventory_movements (
			id, product_id, type, quantity, unit_cost, notes,
			out_reason, out_chart_number, out_patient_name, out_doctor,
			occurred_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := pgxTx.Exec(ctx, query,
		movement.ID,
		movement.ProductID,
		string(movement.Type),
		movement.Quantity,
		decimalPtrToNumeric(movement.UnitCost),
		movement.Notes,
		outReason,
		outChart,
		outPatient,
		outDoctor,
		timeToPgTimestamptz(movement.OccurredAt),
		timeToPgTimestamptz(movement.CreatedAt),
	)

	return err
}

// GetByID retrieves a movement by ID.
func (r *MovementRepository) GetByID(ctx context.Context, id string) (*domain.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE id = $1`

	movement, err := scanMovement(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMovementNotFound
		}

		return nil, err
	}

	return movement, nil
}

// ListByProduct lists a product's movements, newest first.
func (r *MovementRepository) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*domain.InventoryMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM inventory_movements
		WHERE product_id = $1
		ORDER BY occurred_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, productID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []*domain.InventoryMovement
	for rows.Next() {
		movement, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}

		movements = append(movements, movement)
	}

	return movements, rows.Err()
}

// DeleteTx removes a movement inside an existing transaction. The
// caller restores the product's stock in the same transaction.
func (r *MovementRepository) DeleteTx(ctx context.Context, tx usecase.Transaction, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `DELETE FROM inventory_movements WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrMovementNotFound
	}

	return nil
}

// SumDeltasByProduct folds the movement log into per-product net
// deltas for the consistency check.
func (r *MovementRepository) SumDeltasByProduct(ctx context.Context) (map[string]int64, error) {
	query := `
		SELECT product_id,
		       SUM(CASE WHEN type = 'in' THEN quantity ELSE -quantity END)
		FROM inventory_movements
		GROUP BY product_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deltas := make(map[string]int64)
	for rows.Next() {
		var productID string
		var delta int64

		if err := rows.Scan(&productID, &delta); err != nil {
			return nil, err
		}

		deltas[productID] = delta
	}

	return deltas, rows.Err()
}

func scanMovement(row pgx.Row) (*domain.InventoryMovement, error) {
	var (
		movement     domain.InventoryMovement
		movementType string
		unitCost     pgtype.Numeric
		outReason    *string
		outChart     *string
		outPatient   *string
		outDoctor    *string
		occurredAt   pgtype.Timestamptz
		createdAt    pgtype.Timestamptz
	)

	err := row.Scan(
		&movement.ID,
		&movement.ProductID,
		&movementType,
		&movement.Quantity,
		&unitCost,
		&movement.Notes,
		&outReason,
		&outChart,
		&outPatient,
		&outDoctor,
		&occurredAt,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	movement.Type = domain.MovementType(movementType)
	movement.UnitCost = numericToDecimalPtr(unitCost)
	movement.OccurredAt = occurredAt.Time
	movement.CreatedAt = createdAt.Time

	if outReason != nil {
		movement.Out = &domain.OutContext{
			Reason: domain.OutReason(*outReason),
		}

		if outChart != nil {
			movement.Out.ChartNumber = *outChart
		}

		if outPatient != nil {
			movement.Out.PatientName = *outPatient
		}

		if outDoctor != nil {
			movement.Out.Doctor = *outDoctor
		}
	}

	return &movement, nil
}
