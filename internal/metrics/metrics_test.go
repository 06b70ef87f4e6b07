package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewarePathLabel(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("PATCH /api/v1/admin/orders/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := Middleware(mux)

	t.Run("Requests for different ids share one pattern label", func(t *testing.T) {
		counter := httpRequestsTotal.WithLabelValues("200", http.MethodGet, "/api/v1/products/{id}")
		before := testutil.ToFloat64(counter)

		for range 2 {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+uuid.NewString(), nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			require.Equal(t, http.StatusOK, rr.Code)
		}

		assert.InDelta(t, before+2, testutil.ToFloat64(counter), 0.001)
	})

	t.Run("Mid-path parameters keep the full route pattern", func(t *testing.T) {
		counter := httpRequestsTotal.WithLabelValues("200", http.MethodPatch, "/api/v1/admin/orders/{id}/status")
		before := testutil.ToFloat64(counter)

		req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/orders/"+uuid.NewString()+"/status", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		assert.InDelta(t, before+1, testutil.ToFloat64(counter), 0.001)
	})

	t.Run("Unrouted requests fall back to the raw path", func(t *testing.T) {
		counter := httpRequestsTotal.WithLabelValues("404", http.MethodGet, "/no/such/route")
		before := testutil.ToFloat64(counter)

		req := httptest.NewRequest(http.MethodGet, "/no/such/route", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		require.Equal(t, http.StatusNotFound, rr.Code)

		assert.InDelta(t, before+1, testutil.ToFloat64(counter), 0.001)
	})
}
