//go:build !integration

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"prompt-gallery/internal/domain"
	ai "prompt-gallery/internal/infra/adapters/ai"
	"prompt-gallery/internal/usecase"

	"github.com/rs/zerolog"
)

const fixedURL = "https://cdn.example.com/fixed.jpg"

// newTestLogger creates a silent logger for tests.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	gen, err := ai.NewMockImageGenerator(fixedURL, 0)
	if err != nil {
		t.Fatalf("mock generator: %v", err)
	}
	uc := usecase.NewGenerateUseCase(gen, newTestLogger(), false)
	return NewServer(uc, newTestLogger(), 0, 0).Routes()
}

func do(t *testing.T, h http.Handler, method, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "/", rdr)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func assertJSON(t *testing.T, rr *httptest.ResponseRecorder, wantStatus int, wantBody string) {
	t.Helper()
	if rr.Code != wantStatus {
		t.Errorf("expected status %d, got %d", wantStatus, rr.Code)
	}
	if got := rr.Body.String(); got != wantBody {
		t.Errorf("expected body %s, got %s", wantBody, got)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}
	if o := rr.Header().Get("Access-Control-Allow-Origin"); o != "*" {
		t.Errorf("expected open CORS origin, got %q", o)
	}
}

func TestGenerate_ValidPromptsReturnConstantURL(t *testing.T) {
	h := newTestRouter(t)
	prompts := []string{
		`{"prompt":"a cat"}`,
		`{"prompt":"A completely different prompt"}`,
		`{"prompt":"   "}`,
		`{"prompt":"Яркий закат над океаном","extra":1}`,
	}
	for _, body := range prompts {
		rr := do(t, h, http.MethodPost, body)
		assertJSON(t, rr, http.StatusOK, `{"url":"`+fixedURL+`"}`)
	}
}

func TestGenerate_MissingPrompt(t *testing.T) {
	h := newTestRouter(t)
	for _, body := range []string{
		``,
		`{}`,
		`{"prompt":123}`,
		`{"prompt":""}`,
		`{"prompt":null}`,
		`{"prompt":["a"]}`,
		`[1,2]`,
		`42`,
		`"just a string"`,
	} {
		t.Run(body, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, body)
			assertJSON(t, rr, http.StatusBadRequest, `{"error":"Prompt is required"}`)
		})
	}
}

func TestGenerate_ProcessingFailures(t *testing.T) {
	h := newTestRouter(t)
	for _, body := range []string{`{"prompt":`, `null`, `not json`, `{"prompt":"a"} trailing`} {
		t.Run(body, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, body)
			assertJSON(t, rr, http.StatusInternalServerError, `{"error":"Failed to generate image"}`)
		})
	}
}

func TestGenerate_MethodNotAllowed(t *testing.T) {
	h := newTestRouter(t)
	for _, m := range []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPatch} {
		t.Run(m, func(t *testing.T) {
			rr := do(t, h, m, "")
			assertJSON(t, rr, http.StatusMethodNotAllowed, `{"error":"Method not allowed"}`)
		})
	}
}

func TestGenerate_Preflight(t *testing.T) {
	h := newTestRouter(t)
	rr := do(t, h, http.MethodOptions, "")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rr.Body.String())
	}
	want := map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "POST, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type",
		"Access-Control-Max-Age":       "86400",
	}
	for k, v := range want {
		if got := rr.Header().Get(k); got != v {
			t.Errorf("header %s: expected %q, got %q", k, v, got)
		}
	}
}

type failingGenerateUC struct{ err error }

func (f failingGenerateUC) Generate(context.Context, string) (string, error) { return "", f.err }

type panickingGenerateUC struct{}

func (panickingGenerateUC) Generate(context.Context, string) (string, error) { panic("boom") }

func TestGenerate_UseCaseErrors(t *testing.T) {
	t.Run("generator failure -> 500", func(t *testing.T) {
		h := NewServer(failingGenerateUC{err: errors.New("offline")}, newTestLogger(), 0, 0).Routes()
		rr := do(t, h, http.MethodPost, `{"prompt":"cat"}`)
		assertJSON(t, rr, http.StatusInternalServerError, `{"error":"Failed to generate image"}`)
	})
	t.Run("prompt rejected by use case -> 400", func(t *testing.T) {
		h := NewServer(failingGenerateUC{err: domain.ErrPromptRequired}, newTestLogger(), 0, 0).Routes()
		rr := do(t, h, http.MethodPost, `{"prompt":"cat"}`)
		assertJSON(t, rr, http.StatusBadRequest, `{"error":"Prompt is required"}`)
	})
	t.Run("panic -> 500", func(t *testing.T) {
		h := NewServer(panickingGenerateUC{}, newTestLogger(), 0, 0).Routes()
		rr := do(t, h, http.MethodPost, `{"prompt":"cat"}`)
		assertJSON(t, rr, http.StatusInternalServerError, `{"error":"Failed to generate image"}`)
	})
}

func TestGenerate_BodyTooLarge(t *testing.T) {
	gen, _ := ai.NewMockImageGenerator(fixedURL, 0)
	uc := usecase.NewGenerateUseCase(gen, newTestLogger(), false)
	h := NewServer(uc, newTestLogger(), 0, 16).Routes()

	rr := do(t, h, http.MethodPost, `{"prompt":"this body is longer than sixteen bytes"}`)
	assertJSON(t, rr, http.StatusInternalServerError, `{"error":"Failed to generate image"}`)
}

func TestOpsRoutes(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || rr.Body.String() != "OK" {
		t.Fatalf("health: got %d %q", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("X-Trace-Id") == "" {
		t.Error("expected X-Trace-Id header")
	}

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("metrics: got %d", rr.Code)
	}
}

func TestGenerate_AnyPath(t *testing.T) {
	h := newTestRouter(t)
	cases := []struct {
		method, path, body string
		status             int
		want               string
	}{
		{http.MethodPost, "/foo", `{"prompt":"a cat"}`, http.StatusOK, `{"url":"` + fixedURL + `"}`},
		{http.MethodPost, "/api/generate-image", `{}`, http.StatusBadRequest, `{"error":"Prompt is required"}`},
		{http.MethodGet, "/foo/bar", "", http.StatusMethodNotAllowed, `{"error":"Method not allowed"}`},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			var rdr io.Reader
			if tc.body != "" {
				rdr = strings.NewReader(tc.body)
			}
			req := httptest.NewRequest(tc.method, tc.path, rdr)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			assertJSON(t, rr, tc.status, tc.want)
		})
	}

	req := httptest.NewRequest(http.MethodOptions, "/foo", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || rr.Header().Get("Access-Control-Max-Age") != "86400" {
		t.Fatalf("preflight on /foo: got %d %v", rr.Code, rr.Header())
	}
}

func TestTraceID_KeepsCallerID(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Trace-Id", "01HZX3TRACE")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get("X-Trace-Id"); got != "01HZX3TRACE" {
		t.Fatalf("expected caller trace id echoed, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Trace-Id", strings.Repeat("x", 65))
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get("X-Trace-Id"); got == "" || len(got) > 64 {
		t.Fatalf("expected a fresh trace id for an oversized one, got %q", got)
	}
}
