package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cours-de-latin/inflexion"
	"github.com/cours-de-latin/inflexion/internal/metrics"
)

// environments hands out the Environment to serve a request with; the
// reloader swaps it underneath.
type environments interface {
	Current() *inflexion.Environment
}

// ---- JSON request/response types ----------------------------------------

type renderRequest struct {
	Template string         `json:"template"`
	Bindings map[string]any `json:"bindings"`
}

type renderResponse struct {
	Text string `json:"text"`
}

type numberResponse struct {
	N    int    `json:"n"`
	Form string `json:"form"`
	Text string `json:"text"`
}

type articleResponse struct {
	Phrase  string `json:"phrase"`
	Article string `json:"article"`
	Text    string `json:"text"`
}

type errorResponse struct {
	Error    string              `json:"error"`
	Pos      *int                `json:"pos,omitempty"`
	Problems []inflexion.Problem `json:"problems,omitempty"`
}

// ---- helpers ------------------------------------------------------------

func writeJSON(w http.ResponseWriter, log *zap.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn("encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, log *zap.Logger, status int, msg string) {
	writeJSON(w, log, status, errorResponse{Error: msg})
}

// decodeBindings turns JSON numbers into int64 so numeric directives
// accept them. Anything else is passed through for the executor to judge.
func decodeBindings(raw map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(raw))
	for name, v := range raw {
		if num, ok := v.(json.Number); ok {
			n, err := num.Int64()
			if err != nil {
				return nil, errors.Newf("binding %q: %s is not an integer", name, num)
			}
			out[name] = n
			continue
		}
		out[name] = v
	}
	return out, nil
}

func intParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, errors.Newf("missing '%s' query parameter", name)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Newf("'%s' must be an integer", name)
	}
	return n, nil
}

func boolParam(r *http.Request, name string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return b
}

// ---- handlers -----------------------------------------------------------

func handleRender(envs environments, m *metrics.Metrics, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, log, http.StatusMethodNotAllowed, "POST required")
			return
		}
		var body renderRequest
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&body); err != nil || body.Template == "" {
			writeError(w, log, http.StatusBadRequest, "body must be JSON with a non-empty 'template' field")
			return
		}
		bindings, err := decodeBindings(body.Bindings)
		if err != nil {
			writeError(w, log, http.StatusBadRequest, err.Error())
			return
		}

		tmpl, err := envs.Current().Compile(body.Template)
		if err != nil {
			m.ObserveRender(metrics.OutcomeCompileError)
			var tokErr *inflexion.TokenizeError
			var fmtErr *inflexion.FormatError
			switch {
			case errors.As(err, &tokErr):
				pos := tokErr.Pos
				writeJSON(w, log, http.StatusBadRequest, errorResponse{Error: tokErr.Message, Pos: &pos})
			case errors.As(err, &fmtErr):
				writeJSON(w, log, http.StatusBadRequest, errorResponse{
					Error:    fmt.Sprintf("%d problem(s) in template", len(fmtErr.Problems)),
					Problems: fmtErr.Problems,
				})
			default:
				writeError(w, log, http.StatusBadRequest, err.Error())
			}
			return
		}

		text, err := tmpl.Execute(bindings)
		if err != nil {
			m.ObserveRender(metrics.OutcomeExecError)
			writeError(w, log, http.StatusUnprocessableEntity, err.Error())
			return
		}
		m.ObserveRender(metrics.OutcomeOK)
		writeJSON(w, log, http.StatusOK, renderResponse{Text: text})
	}
}

func handleNoun(envs environments, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, log, http.StatusMethodNotAllowed, "GET required")
			return
		}
		word := r.URL.Query().Get("word")
		if word == "" {
			writeError(w, log, http.StatusBadRequest, "missing 'word' query parameter")
			return
		}
		writeJSON(w, log, http.StatusOK, envs.Current().Noun(word).Forms())
	}
}

func handleNumber(log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, log, http.StatusMethodNotAllowed, "GET required")
			return
		}
		n, err := intParam(r, "n")
		if err != nil {
			writeError(w, log, http.StatusBadRequest, err.Error())
			return
		}
		form := r.URL.Query().Get("form")
		if form == "" {
			form = "cardinal"
		}

		var text string
		switch form {
		case "cardinal":
			text, err = inflexion.Cardinal(n)
		case "ordinal":
			text, err = inflexion.Ordinal(n, boolParam(r, "long"))
		case "roman":
			text = inflexion.Roman(n, boolParam(r, "classic"))
		case "summary":
			text = inflexion.Summarize(n, boolParam(r, "at_end"))
		case "commas":
			text = inflexion.Commas(n)
		default:
			writeError(w, log, http.StatusBadRequest,
				fmt.Sprintf("unknown form %q (cardinal, ordinal, roman, summary, commas)", form))
			return
		}
		if err != nil {
			writeError(w, log, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeJSON(w, log, http.StatusOK, numberResponse{N: n, Form: form, Text: text})
	}
}

func handleArticle(log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, log, http.StatusMethodNotAllowed, "GET required")
			return
		}
		phrase := r.URL.Query().Get("phrase")
		if phrase == "" {
			writeError(w, log, http.StatusBadRequest, "missing 'phrase' query parameter")
			return
		}
		article := inflexion.PickIndefinite(phrase)
		writeJSON(w, log, http.StatusOK, articleResponse{
			Phrase:  phrase,
			Article: article,
			Text:    article + " " + phrase,
		})
	}
}

func handleStats(envs environments, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, log, http.StatusMethodNotAllowed, "GET required")
			return
		}
		writeJSON(w, log, http.StatusOK, envs.Current().Nouns().Stats())
	}
}

// ---- middleware ---------------------------------------------------------

const requestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// withRequestLog tags each request with an ID and logs it once served.
func withRequestLog(log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		log.Info("request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}
