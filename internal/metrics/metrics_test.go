package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cours-de-latin/inflexion"
)

func TestInstrument(t *testing.T) {
	m := New()
	h := m.Instrument("/api/noun", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("word") == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = io.WriteString(w, "ok")
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/noun?word=dog", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/noun?word=cat", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/noun", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/api/noun", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/api/noun", "400")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.latency))
}

func TestObserve(t *testing.T) {
	m := New()
	m.ObserveRender(OutcomeOK)
	m.ObserveRender(OutcomeOK)
	m.ObserveRender(OutcomeCompileError)
	m.ObserveReload(nil)
	m.ObserveReload(errors.New("bad line"))
	m.ObserveStats(inflexion.Stats{UserRules: 2, Irregulars: 40, Rules: 30, Prepositions: 52})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.renders.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.renders.WithLabelValues(OutcomeCompileError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reloads.WithLabelValues("error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.entries.WithLabelValues("user", "rule")))
	assert.Equal(t, 52.0, testutil.ToFloat64(m.entries.WithLabelValues("predefined", "preposition")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveRender(OutcomeExecError)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `inflexion_renders_total{outcome="exec_error"} 1`), body)
	assert.Contains(t, body, "go_goroutines")
}
