package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/onul/clinicdesk/internal/domain"
	"github.com/onul/clinicdesk/internal/usecase"
)

// MockCashRecordRepository is a mock implementation of CashRecordRepository.
type MockCashRecordRepository struct {
	mu      sync.RWMutex
	records map[string]*domain.CashRecord

	CreateFunc      func(ctx context.Context, record *domain.CashRecord) error
	GetByIDFunc     func(ctx context.Context, id string) (*domain.CashRecord, error)
	ListByRangeFunc func(ctx context.Context, from, to time.Time) ([]*domain.CashRecord, error)
	ListBeforeFunc  func(ctx context.Context, cutoff time.Time) ([]*domain.CashRecord, error)
	UpdateFunc      func(ctx context.Context, record *domain.CashRecord) error
	DeleteFunc      func(ctx context.Context, id string) error
	CloseRangeFunc  func(ctx context.Context, from, to time.Time, closingAmount decimal.Decimal, closedAt time.Time) (int64, error)
}

func NewMockCashRecordRepository() *MockCashRecordRepository {
	return &MockCashRecordRepository{
		records: make(map[string]*domain.CashRecord),
	}
}

func (m *MockCashRecordRepository) Create(ctx context.Context, record *domain.CashRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[record.ID] = record
	return nil
}

func (m *MockCashRecordRepository) CreateTx(ctx context.Context, tx usecase.Transaction, record *domain.CashRecord) error {
	return m.Create(ctx, record)
}

func (m *MockCashRecordRepository) GetByID(ctx context.Context, id string) (*domain.CashRecord, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if rec, ok := m.records[id]; ok {
		return rec, nil
	}
	return nil, domain.ErrCashRecordNotFound
}

func (m *MockCashRecordRepository) ListByRange(ctx context.Context, from, to time.Time) ([]*domain.CashRecord, error) {
	if m.ListByRangeFunc != nil {
		return m.ListByRangeFunc(ctx, from, to)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var records []*domain.CashRecord
	for _, rec := range m.records {
		if !rec.OccurredAt.Before(from) && rec.OccurredAt.Before(to) {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (m *MockCashRecordRepository) ListBefore(ctx context.Context, cutoff time.Time) ([]*domain.CashRecord, error) {
	if m.ListBeforeFunc != nil {
		return m.ListBeforeFunc(ctx, cutoff)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var records []*domain.CashRecord
	for _, rec := range m.records {
		if rec.OccurredAt.Before(cutoff) {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (m *MockCashRecordRepository) Update(ctx context.Context, record *domain.CashRecord) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[record.ID]; !ok {
		return domain.ErrCashRecordNotFound
	}
	m.records[record.ID] = record
	return nil
}

func (m *MockCashRecordRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return domain.ErrCashRecordNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *MockCashRecordRepository) DeleteTx(ctx context.Context, tx usecase.Transaction, id string) error {
	return m.Delete(ctx, id)
}

func (m *MockCashRecordRepository) CloseRange(ctx context.Context, from, to time.Time, closingAmount decimal.Decimal, closedAt time.Time) (int64, error) {
	if m.CloseRangeFunc != nil {
		return m.CloseRangeFunc(ctx, from, to, closingAmount, closedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, rec := range m.records {
		if !rec.OccurredAt.Before(from) && rec.OccurredAt.Before(to) {
			amount := closingAmount
			at := closedAt
			rec.IsClosed = true
			rec.ClosingAmount = &amount
			rec.ClosedAt = &at
			count++
		}
	}
	return count, nil
}

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product

	CreateFunc            func(ctx context.Context, product *domain.Product) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Product, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Product, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Product, error)
	UpdateStockFunc       func(ctx context.Context, tx usecase.Transaction, id string, stock int64, updatedAt time.Time) error
	UpdateFunc            func(ctx context.Context, product *domain.Product) error
	ListFunc              func(ctx context.Context, line domain.ProductLine, limit, offset int) ([]*domain.Product, error)
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]*domain.Product),
	}
}

func (m *MockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, product)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[product.ID] = product
	return nil
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, domain.ErrProductNotFound
}

func (m *MockProductRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Product, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockProductRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Product, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var products []*domain.Product
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			products = append(products, p)
		}
	}
	return products, nil
}

func (m *MockProductRepository) UpdateStock(ctx context.Context, tx usecase.Transaction, id string, stock int64, updatedAt time.Time) error {
	if m.UpdateStockFunc != nil {
		return m.UpdateStockFunc(ctx, tx, id, stock, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.products[id]; ok {
		p.Stock = stock
		p.Version++
		p.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, product)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	m.products[product.ID] = product
	return nil
}

func (m *MockProductRepository) List(ctx context.Context, line domain.ProductLine, limit, offset int) ([]*domain.Product, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, line, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var products []*domain.Product
	for _, p := range m.products {
		if line == "" || p.Line == line {
			products = append(products, p)
		}
	}
	return products, nil
}

// MockMovementRepository is a mock implementation of MovementRepository.
type MockMovementRepository struct {
	mu        sync.RWMutex
	movements map[string]*domain.InventoryMovement

	CreateFunc             func(ctx context.Context, tx usecase.Transaction, movement *domain.InventoryMovement) error
	GetByIDFunc            func(ctx context.Context, id string) (*domain.InventoryMovement, error)
	ListByProductFunc      func(ctx context.Context, productID string, limit, offset int) ([]*domain.InventoryMovement, error)
	DeleteTxFunc           func(ctx context.Context, tx usecase.Transaction, id string) error
	SumDeltasByProductFunc func(ctx context.Context) (map[string]int64, error)
}

func NewMockMovementRepository() *MockMovementRepository {
	return &MockMovementRepository{
		movements: make(map[string]*domain.InventoryMovement),
	}
}

func (m *MockMovementRepository) Create(ctx context.Context, tx usecase.Transaction, movement *domain.InventoryMovement) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, movement)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.movements[movement.ID] = movement
	return nil
}

func (m *MockMovementRepository) GetByID(ctx context.Context, id string) (*domain.InventoryMovement, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if mv, ok := m.movements[id]; ok {
		return mv, nil
	}
	return nil, domain.ErrMovementNotFound
}

func (m *MockMovementRepository) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*domain.InventoryMovement, error) {
	if m.ListByProductFunc != nil {
		return m.ListByProductFunc(ctx, productID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var movements []*domain.InventoryMovement
	for _, mv := range m.movements {
		if mv.ProductID == productID {
			movements = append(movements, mv)
		}
	}
	return movements, nil
}

func (m *MockMovementRepository) DeleteTx(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteTxFunc != nil {
		return m.DeleteTxFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.movements[id]; !ok {
		return domain.ErrMovementNotFound
	}
	delete(m.movements, id)
	return nil
}

func (m *MockMovementRepository) SumDeltasByProduct(ctx context.Context) (map[string]int64, error) {
	if m.SumDeltasByProductFunc != nil {
		return m.SumDeltasByProductFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	deltas := make(map[string]int64)
	for _, mv := range m.movements {
		deltas[mv.ProductID] += mv.StockDelta()
	}
	return deltas, nil
}

// MockSaleRepository is a mock implementation of SaleRepository.
type MockSaleRepository struct {
	mu    sync.RWMutex
	sales map[string]*domain.Sale

	CreateFunc      func(ctx context.Context, tx usecase.Transaction, sale *domain.Sale) error
	GetByIDFunc     func(ctx context.Context, id string) (*domain.Sale, error)
	ListByRangeFunc func(ctx context.Context, from, to time.Time) ([]*domain.Sale, error)
	DeleteTxFunc    func(ctx context.Context, tx usecase.Transaction, id string) error
}

func NewMockSaleRepository() *MockSaleRepository {
	return &MockSaleRepository{
		sales: make(map[string]*domain.Sale),
	}
}

func (m *MockSaleRepository) Create(ctx context.Context, tx usecase.Transaction, sale *domain.Sale) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, sale)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sales[sale.ID] = sale
	return nil
}

func (m *MockSaleRepository) GetByID(ctx context.Context, id string) (*domain.Sale, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sales[id]; ok {
		return s, nil
	}
	return nil, domain.ErrSaleNotFound
}

func (m *MockSaleRepository) ListByRange(ctx context.Context, from, to time.Time) ([]*domain.Sale, error) {
	if m.ListByRangeFunc != nil {
		return m.ListByRangeFunc(ctx, from, to)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sales []*domain.Sale
	for _, s := range m.sales {
		if !s.SoldAt.Before(from) && s.SoldAt.Before(to) {
			sales = append(sales, s)
		}
	}
	return sales, nil
}

func (m *MockSaleRepository) DeleteTx(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteTxFunc != nil {
		return m.DeleteTxFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sales[id]; !ok {
		return domain.ErrSaleNotFound
	}
	delete(m.sales, id)
	return nil
}

// MockTreatmentRepository is a mock implementation of TreatmentRepository.
type MockTreatmentRepository struct {
	mu         sync.RWMutex
	treatments map[string]*domain.Treatment

	CreateTxFunc func(ctx context.Context, tx usecase.Transaction, treatment *domain.Treatment) error
	GetByIDFunc  func(ctx context.Context, id string) (*domain.Treatment, error)
	DeleteTxFunc func(ctx context.Context, tx usecase.Transaction, id string) error
}

func NewMockTreatmentRepository() *MockTreatmentRepository {
	return &MockTreatmentRepository{
		treatments: make(map[string]*domain.Treatment),
	}
}

func (m *MockTreatmentRepository) CreateTx(ctx context.Context, tx usecase.Transaction, treatment *domain.Treatment) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, treatment)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.treatments[treatment.ID] = treatment
	return nil
}

func (m *MockTreatmentRepository) GetByID(ctx context.Context, id string) (*domain.Treatment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if tr, ok := m.treatments[id]; ok {
		return tr, nil
	}
	return nil, domain.ErrTreatmentNotFound
}

func (m *MockTreatmentRepository) ListByRange(ctx context.Context, from, to time.Time) ([]*domain.Treatment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var treatments []*domain.Treatment
	for _, tr := range m.treatments {
		if !tr.TreatedAt.Before(from) && tr.TreatedAt.Before(to) {
			treatments = append(treatments, tr)
		}
	}
	return treatments, nil
}

func (m *MockTreatmentRepository) DeleteTx(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteTxFunc != nil {
		return m.DeleteTxFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.treatments[id]; !ok {
		return domain.ErrTreatmentNotFound
	}
	delete(m.treatments, id)
	return nil
}

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mu   sync.RWMutex
	Logs []*domain.AuditLog

	CreateFunc func(ctx context.Context, log *domain.AuditLog) error
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, log)
	return nil
}

func (m *MockAuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Logs, nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}
