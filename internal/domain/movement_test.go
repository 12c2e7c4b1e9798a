package domain_test

import (
	"errors"
	"testing"

	"github.com/onul/clinicdesk/internal/domain"
)

func TestOutContext_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ctx     domain.OutContext
		wantErr error
	}{
		{
			name: "patient use with full context",
			ctx: domain.OutContext{
				Reason:      domain.OutPatientUse,
				ChartNumber: "C-1041",
				PatientName: "Kim",
				Doctor:      "Dr. Park",
			},
			wantErr: nil,
		},
		{
			name:    "patient use missing chart fields",
			ctx:     domain.OutContext{Reason: domain.OutPatientUse, PatientName: "Kim"},
			wantErr: domain.ErrMissingPatientUse,
		},
		{
			name:    "discard needs no chart fields",
			ctx:     domain.OutContext{Reason: domain.OutDiscard},
			wantErr: nil,
		},
		{
			name:    "other needs no chart fields",
			ctx:     domain.OutContext{Reason: domain.OutOther},
			wantErr: nil,
		},
		{
			name:    "unknown reason rejected",
			ctx:     domain.OutContext{Reason: domain.OutReason("returned")},
			wantErr: domain.ErrInvalidOutReason,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ctx.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestInventoryMovement_Deltas(t *testing.T) {
	in := &domain.InventoryMovement{Type: domain.MovementIn, Quantity: 10}
	out := &domain.InventoryMovement{Type: domain.MovementOut, Quantity: 4}

	if in.StockDelta() != 10 || in.InverseDelta() != -10 {
		t.Errorf("inbound deltas wrong: %d %d", in.StockDelta(), in.InverseDelta())
	}

	if out.StockDelta() != -4 || out.InverseDelta() != 4 {
		t.Errorf("outbound deltas wrong: %d %d", out.StockDelta(), out.InverseDelta())
	}
}

func TestInventoryMovement_Validate(t *testing.T) {
	m := &domain.InventoryMovement{Type: domain.MovementIn, Quantity: 0}
	if !errors.Is(m.Validate(), domain.ErrInvalidQuantity) {
		t.Error("zero quantity must be rejected")
	}

	m = &domain.InventoryMovement{Type: domain.MovementOut, Quantity: 2}
	if !errors.Is(m.Validate(), domain.ErrMissingOutContext) {
		t.Error("outbound movement without context must be rejected")
	}
}

func TestProduct_ApplyDelta(t *testing.T) {
	p := &domain.Product{Stock: 6}

	next, err := p.ApplyDelta(-6)
	if err != nil || next != 0 {
		t.Errorf("expected 0, got %d (%v)", next, err)
	}

	if _, err := p.ApplyDelta(-7); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Error("negative stock must be rejected, not clamped")
	}
}
