package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.BasketAdd(3)
	m.BasketAdd(2)
	m.Login("otp")
	m.Recommendation(5)
	m.LiveClients().Inc()

	assert.Equal(t, 5.0, testutil.ToFloat64(m.basketAdds))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.logins.WithLabelValues("otp")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.recommendations.WithLabelValues("5")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.liveClients))
}

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	m := New(prometheus.NewRegistry())
	r := mux.NewRouter()
	r.Use(m.Middleware)
	r.HandleFunc("/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"1", "2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products/"+id, nil))
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/products/{id}", "GET", "404")))
}

func TestHandler(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.Login("google")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `nostalgiajars_logins_total{method="google"} 1`))
}
