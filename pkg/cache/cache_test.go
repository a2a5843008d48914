package cache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyDependsOnPathAndQuery(t *testing.T) {
	a := Key(httptest.NewRequest(http.MethodGet, "/products/", nil))
	b := Key(httptest.NewRequest(http.MethodGet, "/products/", nil))
	c := Key(httptest.NewRequest(http.MethodGet, "/products/1", nil))
	d := Key(httptest.NewRequest(http.MethodGet, "/products/?x=1", nil))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
	assert.True(t, strings.HasPrefix(a, keyPrefix))
}

func TestDisabledCacheIsPassThrough(t *testing.T) {
	c := NewResponseCache(nil, time.Minute)
	assert.False(t, c.Enabled())
	assert.NoError(t, c.Invalidate(context.Background()))

	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`[]`))
	})

	h := c.Middleware(next)
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-Cache"))
	}
	assert.Equal(t, 2, calls)
}

func TestCoversPrefixes(t *testing.T) {
	c := NewResponseCache(nil, time.Minute, "/products", "/basket")

	assert.True(t, c.covers("/products/"))
	assert.True(t, c.covers("/basket/3"))
	assert.False(t, c.covers("/metrics"))
	assert.False(t, c.covers("/health"))

	all := NewResponseCache(nil, time.Minute)
	assert.True(t, all.covers("/metrics"))
}
