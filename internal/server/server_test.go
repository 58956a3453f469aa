package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/ruleflow/ruleflow/pkg/pipeline"
)

func testHandler() http.Handler {
	runner := pipeline.NewRunner(nil, log.New(io.Discard))
	return New(runner, log.New(io.Discard)).Handler()
}

const sampleDeck = `{
	"logic": "Q1 and Q2",
	"Q1": "Is the diagnosis confirmed?",
	"Q2": "Was step therapy completed?"
}`

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	testHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestCompileDefaultFormat(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/compile", strings.NewReader(sampleDeck))
	testHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "flowchart TD") {
		t.Errorf("body does not look like a flowchart:\n%s", rec.Body)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestCompileDAGFormat(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/compile?format=dag", strings.NewReader(sampleDeck))
	testHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
	var doc struct {
		Nodes map[string]string `json:"nodes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	if doc.Nodes["Start"] != "Decision Point" {
		t.Errorf("nodes = %v", doc.Nodes)
	}
}

func TestCompileFactorDisabled(t *testing.T) {
	deck := `{"logic": "Q1 and (Q2 or Q3)", "Q1": "a?", "Q2": "b?", "Q3": "c?"}`

	rec := httptest.NewRecorder()
	testHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/compile?factor=false", strings.NewReader(deck)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if strings.Contains(rec.Body.String(), "V1") {
		t.Errorf("factor=false output contains a virtual node:\n%s", rec.Body)
	}

	rec = httptest.NewRecorder()
	testHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/compile", strings.NewReader(deck)))
	if !strings.Contains(rec.Body.String(), "V1[") {
		t.Errorf("default output missing virtual node:\n%s", rec.Body)
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "MalformedJSON",
			target:     "/v1/compile",
			body:       `{"logic":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_DECK",
		},
		{
			name:       "MissingLogic",
			target:     "/v1/compile",
			body:       `{"Q1": "a?"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_DECK",
		},
		{
			name:       "BadLogic",
			target:     "/v1/compile",
			body:       `{"logic": "Q1 and and"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_LOGIC",
		},
		{
			name:       "BadFormat",
			target:     "/v1/compile?format=pdf",
			body:       sampleDeck,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_FORMAT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, tt.target, strings.NewReader(tt.body))
			testHandler().ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("error body is not JSON: %v", err)
			}
			if body["code"] != tt.wantCode {
				t.Errorf("code = %q, want %q", body["code"], tt.wantCode)
			}
			if body["error"] == "" {
				t.Error("error body missing message")
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	testHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/compile", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestIsClosed(t *testing.T) {
	if !IsClosed(http.ErrServerClosed) {
		t.Error("IsClosed(ErrServerClosed) = false")
	}
	if IsClosed(io.EOF) {
		t.Error("IsClosed(EOF) = true")
	}
}
