package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"prompt-gallery/internal/domain"
	"prompt-gallery/internal/infra/logging"
)

const (
	msgMethodNotAllowed = "Method not allowed"
	msgPromptRequired   = "Prompt is required"
	msgGenerateFailed   = "Failed to generate image"
)

var (
	errPromptMissing = errors.New("prompt missing or not a string")
	errNullBody      = errors.New("request body is null")
)

type generateResponse struct {
	URL string `json:"url"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleGenerate is the generation endpoint. It answers every method itself
// so the status table stays in one place.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		writePreflight(w)
		return
	case http.MethodPost:
	default:
		writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}

	ctx := r.Context()
	log := logging.With(ctx, s.log)

	prompt, err := decodePrompt(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		if errors.Is(err, errPromptMissing) {
			writeError(w, http.StatusBadRequest, msgPromptRequired)
			return
		}
		log.Error().Err(err).Msg("Error generating image")
		writeError(w, http.StatusInternalServerError, msgGenerateFailed)
		return
	}

	url, err := s.genUC.Generate(ctx, prompt)
	if err != nil {
		if errors.Is(err, domain.ErrPromptRequired) {
			writeError(w, http.StatusBadRequest, msgPromptRequired)
			return
		}
		log.Error().Err(err).Msg("Error generating image")
		writeError(w, http.StatusInternalServerError, msgGenerateFailed)
		return
	}
	writeJSON(w, http.StatusOK, generateResponse{URL: url})
}

// decodePrompt extracts the prompt field. An empty body counts as {}.
// Non-object JSON carries no prompt (400); null and malformed JSON are
// processing failures (500).
func decodePrompt(body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if len(data) == 0 {
		data = []byte("{}")
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return "", fmt.Errorf("parse body: %w", err)
	}
	switch t := v.(type) {
	case nil:
		return "", errNullBody
	case map[string]any:
		p, ok := t["prompt"].(string)
		if !ok || p == "" {
			return "", errPromptMissing
		}
		return p, nil
	default:
		return "", errPromptMissing
	}
}

func writePreflight(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
	h.Set("Access-Control-Max-Age", "86400")
	w.WriteHeader(http.StatusOK)
}

// writeJSON writes compact JSON without a trailing newline.
func writeJSON(w http.ResponseWriter, code int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		code = http.StatusInternalServerError
		b = []byte(`{"error":"` + msgGenerateFailed + `"}`)
	}
	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(code)
	_, _ = w.Write(b)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Error: msg})
}
