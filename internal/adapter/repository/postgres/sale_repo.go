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

// SaleRepository implements usecase.SaleRepository. Items live in a
// child table keyed by (sale_id, line_no) so a sale can repeat a
// product across lines.
type SaleRepository struct {
	pool *pgxpool.Pool
}

// NewSaleRepository creates a new SaleRepository.
func NewSaleRepository(pool *pgxpool.Pool) *SaleRepository {
	return &SaleRepository{pool: pool}
}

// Create inserts a sale with its items inside an existing transaction.
func (r *SaleRepository) Create(ctx context.Context, tx usecase.Transaction, sale *domain.Sale) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO sales (id, sold_at, chart_number, patient_name, total_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := pgxTx.Exec(ctx, query,
		sale.ID,
		timeToPgTimestamptz(sale.SoldAt),
		sale.ChartNumber,
		sale.PatientName,
		decimalToNumeric(sale.TotalAmount),
		timeToPgTimestamptz(sale.CreatedAt),
	)
	if err != nil {
		return err
	}

	itemQuery := `
		INSERT INTO sale_items (sale_id, line_no, product_id, quantity, sale_price)
		VALUES ($1, $2, $3, $4, $5)
	`

	for i, item := range sale.Items {
		_, err := pgxTx.Exec(ctx, itemQuery,
			sale.ID,
			i+1,
			item.ProductID,
			item.Quantity,
			decimalToNumeric(item.SalePrice),
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves a sale with its items.
func (r *SaleRepository) GetByID(ctx context.Context, id string) (*domain.Sale, error) {
	query := `
		SELECT id, sold_at, chart_number, patient_name, total_amount, created_at
		FROM sales
		WHERE id = $1
	`

	sale, err := scanSale(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSaleNotFound
		}

		return nil, err
	}

	items, err := r.listItems(ctx, []string{id})
	if err != nil {
		return nil, err
	}

	sale.Items = items[id]

	return sale, nil
}

// ListByRange retrieves sales with sold_at in [from, to), items included.
func (r *SaleRepository) ListByRange(ctx context.Context, from, to time.Time) ([]*domain.Sale, error) {
	query := `
		SELECT id, sold_at, chart_number, patient_name, total_amount, created_at
		FROM sales
		WHERE sold_at >= $1 AND sold_at < $2
		ORDER BY sold_at, id
	`

	rows, err := r.pool.Query(ctx, query, timeToPgTimestamptz(from), timeToPgTimestamptz(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []*domain.Sale
	ids := make([]string, 0)
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}

		sales = append(sales, sale)
		ids = append(ids, sale.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return sales, nil
	}

	items, err := r.listItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, sale := range sales {
		sale.Items = items[sale.ID]
	}

	return sales, nil
}

// DeleteTx removes a sale and its items inside an existing transaction.
// The caller restores stock for every line in the same transaction.
func (r *SaleRepository) DeleteTx(ctx context.Context, tx usecase.Transaction, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	if _, err := pgxTx.Exec(ctx, `DELETE FROM sale_items WHERE sale_id = $1`, id); err != nil {
		return err
	}

	tag, err := pgxTx.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrSaleNotFound
	}

	return nil
}

func (r *SaleRepository) listItems(ctx context.Context, saleIDs []string) (map[string][]domain.SaleItem, error) {
	query := `
		SELECT sale_id, product_id, quantity, sale_price
		FROM sale_items
		WHERE sale_id = ANY($1)
		ORDER BY sale_id, line_no
	`

	rows, err := r.pool.Query(ctx, query, saleIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[string][]domain.SaleItem)
	for rows.Next() {
		var saleID string
		var item domain.SaleItem
		var price pgtype.Numeric

		if err := rows.Scan(&saleID, &item.ProductID, &item.Quantity, &price); err != nil {
			return nil, err
		}

		item.SalePrice = numericToDecimal(price)
		items[saleID] = append(items[saleID], item)
	}

	return items, rows.Err()
}

func scanSale(row pgx.Row) (*domain.Sale, error) {
	var (
		sale        domain.Sale
		soldAt      pgtype.Timestamptz
		totalAmount pgtype.Numeric
		createdAt   pgtype.Timestamptz
	)

	err := row.Scan(
		&sale.ID,
		&soldAt,
		&sale.ChartNumber,
		&sale.PatientName,
		&totalAmount,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	sale.SoldAt = soldAt.Time
	sale.TotalAmount = numericToDecimal(totalAmount)
	sale.CreatedAt = createdAt.Time

	return &sale, nil
}
