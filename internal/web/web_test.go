package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
)

func testBundle() fstest.MapFS {
	return fstest.MapFS{
		"index.html":    {Data: []byte("<p>ssh -p {{.SSHPort}} {{.SSHHost}}</p>")},
		"style.css":     {Data: []byte("body{}")},
		"js/app.js":     {Data: []byte("console.log(1)")},
		"img/.keep":     {Data: []byte{}},
		"data/colors.x": {Data: []byte("raw")},
	}
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestServeIndexWithHost(t *testing.T) {
	h := Routes(testBundle(), Options{SSHHost: "play.example.com", SSHPort: "2323"})

	rec := get(t, h, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Errorf("content type = %q", got)
	}
	if body := rec.Body.String(); !strings.Contains(body, "ssh -p 2323 play.example.com") || strings.Contains(body, "{{") {
		t.Errorf("host not substituted: %q", body)
	}
}

func TestServeStaticContentTypes(t *testing.T) {
	h := Routes(testBundle(), Options{})

	tests := []struct {
		path string
		ct   string
		body string
	}{
		{"/style.css", "text/css; charset=utf-8", "body{}"},
		{"/js/app.js", "application/javascript; charset=utf-8", "console.log(1)"},
	}
	for _, tt := range tests {
		rec := get(t, h, tt.path)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d", tt.path, rec.Code)
			continue
		}
		if got := rec.Header().Get("Content-Type"); got != tt.ct {
			t.Errorf("%s: content type = %q, want %q", tt.path, got, tt.ct)
		}
		if rec.Body.String() != tt.body {
			t.Errorf("%s: body = %q", tt.path, rec.Body.String())
		}
	}
}

func TestSPAFallback(t *testing.T) {
	h := Routes(testBundle(), Options{SSHHost: "h", SSHPort: "2222"})

	for _, p := range []string{"/play", "/deep/link/here", "/img", "/../etc/passwd"} {
		rec := get(t, h, p)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", p, rec.Code)
			continue
		}
		if !strings.Contains(rec.Body.String(), "ssh -p 2222 h") {
			t.Errorf("%s: did not fall back to the entry page: %q", p, rec.Body.String())
		}
	}
}

func TestHealth(t *testing.T) {
	h := Routes(testBundle(), Options{})
	rec := get(t, h, "/health")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestMissingIndex(t *testing.T) {
	h := Routes(fstest.MapFS{}, Options{})
	if rec := get(t, h, "/anything"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
