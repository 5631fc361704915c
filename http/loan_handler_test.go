package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ltv-advisor/domain"
	"ltv-advisor/service"
)

func TestCalculateLoanHandler_OK(t *testing.T) {

	handler := NewLoanHandler(service.NewLoanService())

	body := []byte(`{
		"principal": 1200,
		"annual_rate_pct": 0,
		"term_years": 1,
		"fixed_term_years": 1
	}`)

	req := httptest.NewRequest(
		http.MethodPost,
		"/mortgage/payment",
		bytes.NewBuffer(body),
	)

	w := httptest.NewRecorder()

	handler.CalculateLoan(w, req)

	resp := w.Result()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result domain.LoanResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if result.MonthlyPayment != 100 {
		t.Errorf("expected 100.00, got %.2f", result.MonthlyPayment)
	}
}

func TestCalculateLoanHandler_MethodNotAllowed(t *testing.T) {

	handler := NewLoanHandler(service.NewLoanService())

	req := httptest.NewRequest(http.MethodGet, "/mortgage/payment", nil)
	w := httptest.NewRecorder()

	handler.CalculateLoan(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}

	if w.Header().Get("Allow") != http.MethodPost {
		t.Errorf("expected Allow: POST, got %q", w.Header().Get("Allow"))
	}
}

func TestCalculateLoanHandler_BadRequest(t *testing.T) {

	handler := NewLoanHandler(service.NewLoanService())

	req := httptest.NewRequest(
		http.MethodPost,
		"/mortgage/payment",
		bytes.NewBuffer([]byte(`{invalid-json}`)),
	)

	w := httptest.NewRecorder()
	handler.CalculateLoan(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCalculateLoanHandler_InvalidTerm(t *testing.T) {

	handler := NewLoanHandler(service.NewLoanService())

	req := httptest.NewRequest(
		http.MethodPost,
		"/mortgage/payment",
		bytes.NewBuffer([]byte(`{"principal": 1000, "annual_rate_pct": 5, "term_years": 0}`)),
	)

	w := httptest.NewRecorder()
	handler.CalculateLoan(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var body errorResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}

	if body.Field != "term_years" {
		t.Errorf("expected field term_years, got %q", body.Field)
	}
}
