package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/onul/clinicdesk/internal/domain"
)

// CashRecordRepository defines data access for the cash ledger.
type CashRecordRepository interface {
	Create(ctx context.Context, record *domain.CashRecord) error
	CreateTx(ctx context.Context, tx Transaction, record *domain.CashRecord) error
	GetByID(ctx context.Context, id string) (*domain.CashRecord, error)
	ListByRange(ctx context.Context, from, to time.Time) ([]*domain.CashRecord, error)
	ListBefore(ctx context.Context, cutoff time.Time) ([]*domain.CashRecord, error)
	Update(ctx context.Context, record *domain.CashRecord) error
	Delete(ctx context.Context, id string) error
	DeleteTx(ctx context.Context, tx Transaction, id string) error
	CloseRange(ctx context.Context, from, to time.Time, closingAmount decimal.Decimal, closedAt time.Time) (int64, error)
}

// ProductRepository defines data access for products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Product, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Product, error)
	UpdateStock(ctx context.Context, tx Transaction, id string, stock int64, updatedAt time.Time) error
	Update(ctx context.Context, product *domain.Product) error
	List(ctx context.Context, line domain.ProductLine, limit, offset int) ([]*domain.Product, error)
}

// MovementRepository defines data access for inventory movements.
type MovementRepository interface {
	Create(ctx context.Context, tx Transaction, movement *domain.InventoryMovement) error
	GetByID(ctx context.Context, id string) (*domain.InventoryMovement, error)
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*domain.InventoryMovement, error)
	DeleteTx(ctx context.Context, tx Transaction, id string) error
	SumDeltasByProduct(ctx context.Context) (map[string]int64, error)
}

// SaleRepository defines data access for sales and their items.
type SaleRepository interface {
	Create(ctx context.Context, tx Transaction, sale *domain.Sale) error
	GetByID(ctx context.Context, id string) (*domain.Sale, error)
	ListByRange(ctx context.Context, from, to time.Time) ([]*domain.Sale, error)
	DeleteTx(ctx context.Context, tx Transaction, id string) error
}

// TreatmentRepository defines data access for treatments.
type TreatmentRepository interface {
	CreateTx(ctx context.Context, tx Transaction, treatment *domain.Treatment) error
	GetByID(ctx context.Context, id string) (*domain.Treatment, error)
	ListByRange(ctx context.Context, from, to time.Time) ([]*domain.Treatment, error)
	DeleteTx(ctx context.Context, tx Transaction, id string) error
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
