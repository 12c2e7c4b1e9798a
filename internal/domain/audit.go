package domain

import (
	"encoding/json"
	"time"
)

// AuditLog is an audit trail entry. Deletions, reversals and day
// closings are the operations that must be reconstructible later.
type AuditLog struct {
	ID           string
	UserID       string // Who performed the action
	Action       string // What action (cash.close, sale.delete, etc.)
	ResourceType string // Type of resource (cash_record, sale, movement)
	ResourceID   string // ID of the resource
	RequestID    string // Request ID for tracing
	BeforeState  JSON   // State before the action
	AfterState   JSON   // State after the action
	Status       string // success, failure
	ErrorMessage string // If status=failure, the error message
	CreatedAt    time.Time
}

// JSON is a type alias for JSON data
type JSON map[string]any

// AuditAction represents different types of auditable actions
type AuditAction string

const (
	// Cash ledger actions
	AuditActionDepositCreate AuditAction = "cash.deposit.create"
	AuditActionDepositUpdate AuditAction = "cash.deposit.update"
	AuditActionDepositDelete AuditAction = "cash.deposit.delete"
	AuditActionDayClose      AuditAction = "cash.close"

	// Inventory actions
	AuditActionStockIn        AuditAction = "stock.in"
	AuditActionStockOut       AuditAction = "stock.out"
	AuditActionActivityDelete AuditAction = "activity.delete"

	// Sale and treatment actions
	AuditActionSaleCreate      AuditAction = "sale.create"
	AuditActionTreatmentCreate AuditAction = "treatment.create"
	AuditActionTreatmentDelete AuditAction = "treatment.delete"
)

// AuditStatus represents the status of an audited action
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailure AuditStatus = "failure"
)

// AuditFilter narrows audit log queries.
type AuditFilter struct {
	UserID       string
	Action       string
	ResourceType string
	From         time.Time
	To           time.Time
	Limit        int
	Offset       int
}

// MarshalState converts a domain object to JSON for audit logging
func MarshalState(v any) JSON {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return JSON{"error": "failed to marshal state"}
	}

	var result JSON
	if err := json.Unmarshal(data, &result); err != nil {
		return JSON{"error": "failed to unmarshal state"}
	}

	return result
}
