package http

import (
	"net/http"
	"strconv"
	"time"

	"ltv-advisor/domain"
	"ltv-advisor/report"
	"ltv-advisor/service"
)

type OverpayHandler struct {
	overpay   *service.OverpayService
	explainer *service.ExplanationService
	now       func() time.Time
}

func NewOverpayHandler(overpay *service.OverpayService, explainer *service.ExplanationService) *OverpayHandler {
	return &OverpayHandler{overpay: overpay, explainer: explainer, now: time.Now}
}

type explainResponse struct {
	Result      domain.CalculationResult `json:"result"`
	Explanation string                   `json:"explanation"`
}

func (h *OverpayHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	result, ok := h.calculate(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (h *OverpayHandler) Brackets(w http.ResponseWriter, r *http.Request) {
	if methodNotAllowed(w, r, http.MethodGet) {
		return
	}

	raw := r.URL.Query().Get("property_value")
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		writeError(w, r, domain.NewInvalidInput("property_value", "must be a number, got %q", raw))
		return
	}

	table, err := h.overpay.Brackets(value)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, table)
}

func (h *OverpayHandler) Explain(w http.ResponseWriter, r *http.Request) {
	result, ok := h.calculate(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, explainResponse{
		Result:      result,
		Explanation: h.explainer.Explain(r.Context(), result),
	})
}

func (h *OverpayHandler) Report(w http.ResponseWriter, r *http.Request) {
	result, ok := h.calculate(w, r)
	if !ok {
		return
	}

	pdf, err := report.PDF(result, h.now())
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="ltv-overpayment-report.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (h *OverpayHandler) calculate(w http.ResponseWriter, r *http.Request) (domain.CalculationResult, bool) {
	if methodNotAllowed(w, r, http.MethodPost) {
		return domain.CalculationResult{}, false
	}

	var input domain.MortgageInputs
	if !decodeJSON(w, r, &input) {
		return domain.CalculationResult{}, false
	}

	result, err := h.overpay.Calculate(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return domain.CalculationResult{}, false
	}
	return result, true
}
