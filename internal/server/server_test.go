package server

import (
	"bytes"
	"encoding/base64"
	"errors"
	"html"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-coagen/pkg/document"
	"github.com/goliatone/go-coagen/pkg/orchestrator"
	"github.com/goliatone/go-coagen/pkg/output"
	"github.com/goliatone/go-coagen/pkg/pdftext"
	"github.com/goliatone/go-coagen/pkg/testsupport"
)

var dataURIPattern = regexp.MustCompile(`href="data:application/pdf;base64,([^"]+)"`)

func newTestServer(t *testing.T, options ...orchestrator.Option) (*Server, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	srv, err := New(orchestrator.New(options...), WithLogger(log.New(&logs, "", 0)))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv, &logs
}

func do(t *testing.T, handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestForm_RendersEveryInput(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv.Handler(), httptest.NewRequest(http.MethodGet, "/?variant=full", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Fatalf("expected a request id header")
	}

	body := rec.Body.String()
	testsupport.ContainsAll(t, body,
		"<title>Certificate of Analysis Generator</title>",
		"Fill in the fields below to generate a COA PDF:",
		`placeholder="Enter Customer..."`,
		`placeholder="Enter Invoice No...."`,
		`<button type="submit">Generate PDF</button>`,
		`name="variant" value="full"`,
	)
	for _, field := range testsupport.MustForm(t, "full").Fields {
		if !strings.Contains(body, `name="`+html.EscapeString(field.Name)+`"`) {
			t.Fatalf("missing input for %q", field.Name)
		}
	}
}

func TestForm_UnknownVariant(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv.Handler(), httptest.NewRequest(http.MethodGet, "/?variant=missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestForm_UnknownPath(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv.Handler(), httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGenerate_ReRendersWithDownload(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv.Handler(), postForm("/generate", url.Values{
		"variant":      {"full"},
		"Customer":     {"Acme"},
		"Moisture (%)": {"8.5"},
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := rec.Body.String()
	testsupport.ContainsAll(t, body,
		SuccessMessage,
		`download="COA_Food_Filled.pdf"`,
		`type="application/pdf"`,
		DownloadLabel,
		`value="Acme"`,
		`value="8.5"`,
	)

	match := dataURIPattern.FindStringSubmatch(body)
	if match == nil {
		t.Fatalf("expected a data URI download link")
	}
	data, err := base64.StdEncoding.DecodeString(match[1])
	if err != nil {
		t.Fatalf("decode data uri: %v", err)
	}
	result, err := pdftext.Extract(data)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(result.Text(), "Customer: Acme") {
		t.Fatalf("expected customer row in PDF, got:\n%s", result.Text())
	}
}

type failingDispatcher struct{}

func (failingDispatcher) Dispatch(*document.Document) (output.Artifact, error) {
	return output.Artifact{}, errors.New("disk full")
}

func TestGenerate_FailureShowsError(t *testing.T) {
	srv, logs := newTestServer(t, orchestrator.WithDispatcher(failingDispatcher{}))

	rec := do(t, srv.Handler(), postForm("/generate", url.Values{"Customer": {"Acme"}}))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	body := rec.Body.String()
	testsupport.ContainsAll(t, body, "coagen-status--error", "disk full", `value="Acme"`)
	if strings.Contains(body, "data:application/pdf") {
		t.Fatalf("expected no download link on failure")
	}
	if !strings.Contains(logs.String(), "disk full") {
		t.Fatalf("expected the failure to be logged, got %q", logs.String())
	}
}

func TestDownload_ReturnsAttachment(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv.Handler(), postForm("/download", url.Values{"Customer": {"Acme"}}))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != output.ContentType {
		t.Fatalf("unexpected content type %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="COA_Food_Filled.pdf"` {
		t.Fatalf("unexpected content disposition %q", got)
	}
	if !pdftext.IsPDF(rec.Body.Bytes()) {
		t.Fatalf("expected PDF body")
	}
}

func TestAPI_GeneratesCertificate(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/certificates",
		strings.NewReader(`{"variant":"compact","values":{"Customer":"Acme","Arsenic":0.1}}`))
	req.Header.Set("Content-Type", "application/json")
	rec := do(t, srv.Handler(), req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	result, err := pdftext.Extract(rec.Body.Bytes())
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	testsupport.ContainsAll(t, result.Text(), "Customer: Acme", "0.1")
}

func TestAPI_Errors(t *testing.T) {
	srv, _ := newTestServer(t)

	cases := []struct {
		name string
		body string
		want int
	}{
		{name: "malformed", body: `{"variant":`, want: http.StatusBadRequest},
		{name: "unknown key", body: `{"variant":"full","extra":1}`, want: http.StatusBadRequest},
		{name: "nested value", body: `{"values":{"Customer":{"a":1}}}`, want: http.StatusBadRequest},
		{name: "unknown variant", body: `{"variant":"missing"}`, want: http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/certificates", strings.NewReader(tc.body))
			rec := do(t, srv.Handler(), req)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, rec.Code, rec.Body.String())
			}
			if got := rec.Header().Get("Content-Type"); got != "application/json" {
				t.Fatalf("expected JSON error, got %q", got)
			}
		})
	}
}

func TestOpenAPI_ServesValidDocument(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv.Handler(), httptest.NewRequest(http.MethodGet, "/openapi.json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	doc, err := openapi3.NewLoader().LoadFromData(rec.Body.Bytes())
	if err != nil {
		t.Fatalf("load description: %v", err)
	}
	for _, path := range []string{"/", "/generate", "/download", "/api/certificates", "/healthz"} {
		if doc.Paths.Find(path) == nil {
			t.Fatalf("missing path %s", path)
		}
	}
}

func TestHealthzAndAssets(t *testing.T) {
	srv, _ := newTestServer(t)
	handler := srv.Handler()

	rec := do(t, handler, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("unexpected healthz response %d %q", rec.Code, rec.Body.String())
	}

	rec = do(t, handler, httptest.NewRequest(http.MethodGet, "/assets/coagen.css", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected stylesheet, got %d", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv.Handler(), httptest.NewRequest(http.MethodGet, "/generate", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestNew_RequiresOrchestrator(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatalf("expected error for nil orchestrator")
	}
}

func TestMiddleware_LogsRequests(t *testing.T) {
	srv, logs := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := do(t, srv.Handler(), req)

	if got := rec.Header().Get(RequestIDHeader); got != "req-123" {
		t.Fatalf("expected upstream request id, got %q", got)
	}
	line := logs.String()
	if !strings.HasPrefix(line, "[http] GET /healthz 200 ") || !strings.Contains(line, "2 bytes req-123") {
		t.Fatalf("unexpected log line %q", line)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	var logs bytes.Buffer
	logger := log.New(&logs, "", 0)
	handler := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), RecoveryMiddleware(logger))

	rec := do(t, handler, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(logs.String(), "PANIC: boom") {
		t.Fatalf("expected panic to be logged")
	}
	_, _ = io.Copy(io.Discard, rec.Body)
}
