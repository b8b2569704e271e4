package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kubishi/ovp"
	"github.com/kubishi/ovp/internal/config"
	"github.com/kubishi/ovp/internal/render"
	"github.com/kubishi/ovp/internal/transport/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            0,
			ShutdownTimeout: 2 * time.Second,
			MaxBodyBytes:    1 << 16,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,OPTIONS",
			AllowedHeaders: "Content-Type",
		},
		Log:   config.LogConfig{Level: "info", Format: "json"},
		Cache: config.CacheConfig{OptionsSize: 32},
	}
}

func testHandler(t *testing.T) http.Handler {
	t.Helper()
	f, err := render.NewFormatter(32)
	require.NoError(t, err)
	return newHandler(testConfig(), zap.NewNop(), ovp.Default(), f)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	h := testHandler(t)
	for _, path := range []string{"/healthz", "/api/healthz"} {
		rec := do(t, h, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rec.Code, path)
		resp := decode[healthResponse](t, rec)
		assert.Equal(t, "ok", resp.Status)
		assert.NotEmpty(t, resp.Version)
		assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	}
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, h, http.MethodPost, "/healthz", "").Code)
}

func TestChoices_Empty(t *testing.T) {
	h := testHandler(t)
	rec := do(t, h, http.MethodPost, "/api/builder/choices", "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[choicesResponse](t, rec)
	assert.Equal(t, []string{"subject_noun", "verb"}, resp.Missing)
	assert.Empty(t, resp.Sentence)
	assert.Empty(t, resp.Text)
	require.Contains(t, resp.Choices, "subject_noun")
	assert.Nil(t, resp.Choices["subject_noun"].Value)
	assert.Equal(t, ovp.Required, resp.Choices["subject_noun"].Requirement)
	assert.Equal(t, ovp.Disabled, resp.Choices["verb_tense"].Requirement)
}

func TestChoices_Complete(t *testing.T) {
	h := testHandler(t)
	body := `{"subject_noun":"isha'pugu","subject_suffix":"ii","verb":"poyoha","verb_tense":"ti"}`
	rec := do(t, h, http.MethodPost, "/builder/choices", body)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[choicesResponse](t, rec)
	assert.Empty(t, resp.Missing)
	assert.Equal(t, "isha'pugu-ii poyoha-ti", resp.Text)
	require.Len(t, resp.Sentence, 2)
	assert.Equal(t, ovp.RoleSubject, resp.Sentence[0].Role)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	sentence := raw["sentence"].([]any)
	first := sentence[0].(map[string]any)
	assert.Equal(t, "subject", first["type"])
	part := first["parts"].([]any)[0].(map[string]any)
	assert.Equal(t, "dog", part["definition"])
}

func TestChoices_BadRequests(t *testing.T) {
	h := testHandler(t)
	tests := []struct {
		name   string
		method string
		body   string
		status int
	}{
		{"get", http.MethodGet, "", http.StatusMethodNotAllowed},
		{"invalid json", http.MethodPost, "{", http.StatusBadRequest},
		{"wrong type", http.MethodPost, `{"verb":3}`, http.StatusBadRequest},
		{"too large", http.MethodPost, `{"verb":"` + strings.Repeat("a", 1<<17) + `"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, "/builder/choices", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.NotEmpty(t, decode[errorResponse](t, rec).Error)
		})
	}
}

func TestChoices_IgnoresUnknownFields(t *testing.T) {
	h := testHandler(t)
	rec := do(t, h, http.MethodPost, "/builder/choices", `{"subject":"wai","subject_noun":"nüü","mood":"irrealis"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[choicesResponse](t, rec)
	require.NotNil(t, resp.Choices["subject_noun"].Value)
	assert.Equal(t, "nüü", *resp.Choices["subject_noun"].Value)
	assert.Equal(t, []string{"verb"}, resp.Missing)

	rec = do(t, h, http.MethodPost, "/builder/random", `{"subject_noun":"nüü","extra":true,"seed":3}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Empty(t, decode[choicesResponse](t, rec).Missing)

	rec = do(t, h, http.MethodPost, "/builder/describe",
		`{"subject_noun":"nüü","verb":"poyoha","verb_tense":"ti","note":"x"}`)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestRandom_Seeded(t *testing.T) {
	h := testHandler(t)
	first := decode[choicesResponse](t, do(t, h, http.MethodPost, "/builder/random", `{"seed":42}`))
	second := decode[choicesResponse](t, do(t, h, http.MethodPost, "/api/builder/random", `{"seed":42}`))

	assert.Empty(t, first.Missing)
	assert.NotEmpty(t, first.Text)
	assert.Equal(t, first.Text, second.Text)
}

func TestRandom_KeepsSelection(t *testing.T) {
	h := testHandler(t)
	resp := decode[choicesResponse](t, do(t, h, http.MethodPost, "/builder/random", `{"subject_noun":"nüü","verb":"poyoha","seed":1}`))
	require.NotNil(t, resp.Choices["subject_noun"].Value)
	assert.Equal(t, "nüü", *resp.Choices["subject_noun"].Value)
	assert.True(t, strings.HasPrefix(resp.Text, "poyoha-"), resp.Text)
}

func TestDescribe(t *testing.T) {
	h := testHandler(t)

	rec := do(t, h, http.MethodPost, "/builder/describe", `{"subject_noun":"nüü"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, h, http.MethodPost, "/builder/describe",
		`{"subject_noun":"isha'pugu","subject_suffix":"ii","verb":"tüka","verb_tense":"ku","object_noun":"wai","object_suffix":"eika","object_pronoun":"ma"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[describeResponse](t, rec)
	require.Len(t, resp.Structure, 3)
	assert.Equal(t, "dog", resp.Structure[0].Word)
	assert.Equal(t, "rice", resp.Structure[1].Word)
	assert.Equal(t, "eat", resp.Structure[2].Word)
	assert.Equal(t, "isha'pugu-ii wai-neika ma-düka-ku", resp.Text)
}

func TestTranslateSimple(t *testing.T) {
	h := testHandler(t)
	body := `{"seed":7,"sentences":[
		{"subject":{"type":"pronoun","person":"first","plurality":"singular"},
		 "verb":{"lemma":"run","tense":"present","aspect":"continuous"}},
		{"subject":{"type":"noun","head":"dog","proximity":"distal"},
		 "verb":{"lemma":"eat","tense":"past","aspect":"completive"},
		 "object":{"type":"noun","head":"elephant","plurality":"singular","proximity":"distal"}}
	]}`
	rec := do(t, h, http.MethodPost, "/api/translator/simple", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[translateResponse](t, rec)
	require.Len(t, resp.Sentences, 2)
	assert.Equal(t, "poyoha-ti nüü", resp.Sentences[0].Text)
	assert.True(t, resp.Sentences[0].Complete)
	assert.Equal(t, "[elephant]", resp.Sentences[1].Selection.ObjectNoun)
	assert.Equal(t, "oka", resp.Sentences[1].Selection.ObjectSuffix)
	assert.True(t, strings.HasPrefix(resp.Paiute, "poyoha-ti nüü. isha'pugu-uu [elephant]-noka "), resp.Paiute)
	assert.True(t, strings.HasSuffix(resp.Paiute, "."), resp.Paiute)

	rec = do(t, h, http.MethodPost, "/translator/simple", `{"sentences":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/translator/simple", `{"sentences":[{"verb":{"lemma":"run"}}],"model":"gpt"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORSHeaders(t *testing.T) {
	h := testHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/builder/choices", strings.NewReader("{}"))
	req.Header.Set("Origin", "https://kubishi.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMiddlewares_PanicLoggedWithRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := do(t, middlewares(testConfig(), zap.New(core))(handler), http.MethodPost, "/builder/choices", "{}")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	id := rec.Header().Get(middleware.RequestIDHeader)
	require.NotEmpty(t, id)
	entries := logs.FilterMessage("panic recovered").All()
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0].ContextMap()["request_id"])
}

// failingWriter is a ResponseWriter whose body writes always fail.
type failingWriter struct {
	*httptest.ResponseRecorder
}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestWriteJSON_LogsToInjectedLogger(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	w := failingWriter{httptest.NewRecorder()}

	writeJSON(zap.New(core), w, http.StatusOK, healthResponse{Status: "ok"})

	assert.Equal(t, http.StatusOK, w.Code)
	entries := logs.FilterMessage("encode response").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "connection reset", entries[0].ContextMap()["error"])
}

func TestRun_Shutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, testConfig(), zap.NewNop()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}

func TestRun_BadDataDir(t *testing.T) {
	cfg := testConfig()
	cfg.Lexicon.DataDir = t.TempDir()
	err := run(context.Background(), cfg, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load lexicon")
}
