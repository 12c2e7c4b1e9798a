package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/onul/clinicdesk/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"record not found", domain.ErrCashRecordNotFound, http.StatusNotFound},
		{"not a deposit", domain.ErrRecordNotDeposit, http.StatusBadRequest},
		{"type change", domain.ErrTypeChangeNotAllowed, http.StatusBadRequest},
		{"record closed", domain.ErrRecordClosed, http.StatusConflict},
		{"insufficient stock", domain.ErrInsufficientStock, http.StatusBadRequest},
		{"activity not found", domain.ErrActivityNotFound, http.StatusNotFound},
		{"missing date", domain.ErrMissingDate, http.StatusBadRequest},
		{"expired token", domain.ErrExpiredToken, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=25&bad=abc", nil)

	if got := parseIntQuery(req, "limit", 20); got != 25 {
		t.Errorf("expected 25, got %d", got)
	}
	if got := parseIntQuery(req, "bad", 20); got != 20 {
		t.Errorf("expected default 20, got %d", got)
	}
	if got := parseIntQuery(req, "missing", 20); got != 20 {
		t.Errorf("expected default 20, got %d", got)
	}
}

func TestParseDateQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?date=2024-03-11", nil)
	day, err := parseDateQuery(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if domain.FormatDay(day) != "2024-03-11" {
		t.Errorf("expected 2024-03-11, got %s", domain.FormatDay(day))
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := parseDateQuery(req); !errors.Is(err, domain.ErrMissingDate) {
		t.Errorf("expected ErrMissingDate, got %v", err)
	}
}
