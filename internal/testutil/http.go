package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// Serve builds a request for method and target and runs it through h.
func Serve(h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	return ServeRequest(h, httptest.NewRequest(method, target, body))
}

func ServeRequest(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// AssertStatus fails with the response body so error payloads show up in test output.
func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rr.Code, rr.Body.String())
	}
}

// DecodeJSON consumes the recorder body.
func DecodeJSON(t *testing.T, rr *httptest.ResponseRecorder, dest any) {
	t.Helper()
	raw := rr.Body.Bytes()
	if err := json.Unmarshal(raw, dest); err != nil {
		t.Fatalf("decode %T from %q: %v", dest, raw, err)
	}
	rr.Body.Reset()
}
