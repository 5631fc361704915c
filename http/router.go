package http

import "net/http"

// NewRouter mounts every endpoint behind request tagging and rate limiting.
func NewRouter(
	loan *LoanHandler,
	overpay *OverpayHandler,
	limiter Limiter,
) *http.ServeMux {

	mux := http.NewServeMux()
	routes := map[string]http.HandlerFunc{
		"/mortgage/payment":  loan.CalculateLoan,
		"/overpay/calculate": overpay.Calculate,
		"/overpay/brackets":  overpay.Brackets,
		"/overpay/explain":   overpay.Explain,
		"/overpay/report":    overpay.Report,
	}

	for path, handler := range routes {
		mux.Handle(path, RequestIDMiddleware(RateLimitMiddleware(limiter, handler)))
	}
	return mux
}
