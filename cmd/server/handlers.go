package main

import (
	"encoding/json"
	"errors"
	"io"
	"math/rand/v2"
	"net/http"

	"github.com/kubishi/ovp"
	"github.com/kubishi/ovp/internal/app"
	"github.com/kubishi/ovp/internal/render"
	"go.uber.org/zap"
)

// ---- JSON request/response types ----------------------------------------

type choicesResponse struct {
	Choices  map[string]render.FormattedChoice `json:"choices"`
	Sentence ovp.Sentence                      `json:"sentence"`
	Text     string                            `json:"text"`
	Missing  []string                          `json:"missing"`
}

type randomRequest struct {
	ovp.Selection
	Seed *uint64 `json:"seed,omitempty"`
}

type describeResponse struct {
	Structure []ovp.StructurePart `json:"structure"`
	Text      string              `json:"text"`
}

type translateRequest struct {
	Sentences []ovp.SimpleSentence `json:"sentences"`
	Seed      *uint64              `json:"seed,omitempty"`
}

type translatedJSON struct {
	Selection ovp.Selection       `json:"selection"`
	Text      string              `json:"text"`
	Complete  bool                `json:"complete"`
	Structure []ovp.StructurePart `json:"structure"`
}

type translateResponse struct {
	Sentences []translatedJSON `json:"sentences"`
	Paiute    string           `json:"paiute"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- helpers ------------------------------------------------------------

func writeJSON(logger *zap.Logger, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("encode response", zap.Error(err))
	}
}

func writeError(logger *zap.Logger, w http.ResponseWriter, status int, msg string) {
	writeJSON(logger, w, status, errorResponse{Error: msg})
}

// decodeBody reads a JSON body of at most maxBytes into v. An empty body
// leaves v untouched. Unknown keys are rejected only when strict is set.
func decodeBody(w http.ResponseWriter, r *http.Request, maxBytes int64, v any, strict bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	dec := json.NewDecoder(r.Body)
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// source returns a seeded random source, or nil for the global one.
func source(seed *uint64) ovp.Source {
	if seed == nil {
		return nil
	}
	return rand.New(rand.NewPCG(*seed, *seed))
}

// choicesPayload resolves m into the builder response. The sentence is
// empty until every required field is set.
func choicesPayload(lex *ovp.Lexicon, f *render.Formatter, m ovp.ChoiceMap) choicesResponse {
	resp := choicesResponse{
		Choices:  f.Choices(m),
		Sentence: ovp.Sentence{},
		Missing:  []string{},
	}
	for _, field := range m.Missing() {
		resp.Missing = append(resp.Missing, field.String())
	}
	if s, err := lex.Assemble(m.Selection()); err == nil {
		resp.Sentence = s
		resp.Text = s.Text()
	}
	return resp
}

// ---- handlers -----------------------------------------------------------

func handleHealth(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(logger, w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		writeJSON(logger, w, http.StatusOK, healthResponse{Status: "ok", Version: app.BuildVersion()})
	}
}

func handleChoices(logger *zap.Logger, lex *ovp.Lexicon, f *render.Formatter, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(logger, w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		var sel ovp.Selection
		if err := decodeBody(w, r, maxBytes, &sel, false); err != nil {
			writeError(logger, w, http.StatusBadRequest, "body must be a JSON selection: "+err.Error())
			return
		}
		writeJSON(logger, w, http.StatusOK, choicesPayload(lex, f, lex.Resolve(sel)))
	}
}

func handleRandom(logger *zap.Logger, lex *ovp.Lexicon, f *render.Formatter, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(logger, w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		var req randomRequest
		if err := decodeBody(w, r, maxBytes, &req, false); err != nil {
			writeError(logger, w, http.StatusBadRequest, "body must be a JSON selection: "+err.Error())
			return
		}
		resp := choicesPayload(lex, f, lex.Randomize(req.Selection, source(req.Seed)))
		if len(resp.Missing) > 0 {
			logger.Warn("random sentence incomplete", zap.Strings("missing", resp.Missing))
		}
		writeJSON(logger, w, http.StatusOK, resp)
	}
}

func handleDescribe(logger *zap.Logger, lex *ovp.Lexicon, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(logger, w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		var sel ovp.Selection
		if err := decodeBody(w, r, maxBytes, &sel, false); err != nil {
			writeError(logger, w, http.StatusBadRequest, "body must be a JSON selection: "+err.Error())
			return
		}
		sel = lex.Resolve(sel).Selection()
		if _, err := lex.Assemble(sel); err != nil {
			writeError(logger, w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeJSON(logger, w, http.StatusOK, describeResponse{
			Structure: lex.Describe(sel),
			Text:      lex.Render(sel),
		})
	}
}

func handleTranslateSimple(logger *zap.Logger, lex *ovp.Lexicon, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(logger, w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		var req translateRequest
		if err := decodeBody(w, r, maxBytes, &req, true); err != nil || len(req.Sentences) == 0 {
			writeError(logger, w, http.StatusBadRequest, "body must be JSON with a non-empty 'sentences' field")
			return
		}

		sels, paiute := lex.TranslateSimple(req.Sentences, source(req.Seed))
		out := make([]translatedJSON, len(sels))
		for i, sel := range sels {
			_, err := lex.Assemble(sel)
			out[i] = translatedJSON{
				Selection: sel,
				Text:      lex.Render(sel),
				Complete:  err == nil,
				Structure: lex.Describe(sel),
			}
		}
		writeJSON(logger, w, http.StatusOK, translateResponse{Sentences: out, Paiute: paiute})
	}
}
