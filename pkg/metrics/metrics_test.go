package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

const requestsHeader = `
# HELP storefront_requests_total Total number of requests to the storefront service
# TYPE storefront_requests_total counter
`

func TestWrapRecordsStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	handler := m.Wrap("/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for i := 0; i < 2; i++ {
		handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products/7", nil))
	}

	expected := requestsHeader + `storefront_requests_total{endpoint="/products/{id}",method="GET",status="404"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "storefront_requests_total"))
}

func TestWrapDefaultsToOK(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	handler := m.Wrap("/basket/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	})
	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/basket/", nil))

	expected := requestsHeader + `storefront_requests_total{endpoint="/basket/",method="GET",status="200"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "storefront_requests_total"))
}

func TestBasketMetrics(t *testing.T) {
	m := NewBasketMetrics(prometheus.NewRegistry())

	m.Reserved(3)
	m.Reserved(2)
	m.Released(4)
	m.Purged(1)

	assert.Equal(t, 5.0, testutil.ToFloat64(m.unitsReserved))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.unitsReleased))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.orphansPurged))

	var none *BasketMetrics
	assert.NotPanics(t, func() { none.Reserved(1) })
}
