package resolver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cffkit/cffkit/internal/cff"
)

const registeredBody = `{"responseCode":1,"handle":"10.5281/zenodo.5119389","values":[{"index":1,"type":"URL","data":{"format":"string","value":"https://zenodo.org/record/5119389"}}]}`

func TestResolveRegistered(t *testing.T) {
	var gotPath, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, registeredBody)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithRateLimit(100), WithMailto("dev@example.org"))
	res, err := c.Resolve(context.Background(), "https://doi.org/10.5281/zenodo.5119389")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !res.Resolved {
		t.Error("Resolved = false, want true")
	}
	if res.DOI != "10.5281/zenodo.5119389" {
		t.Errorf("DOI = %q, want the bare handle", res.DOI)
	}
	if res.URL != "https://zenodo.org/record/5119389" {
		t.Errorf("URL = %q", res.URL)
	}
	if gotPath != "/10.5281/zenodo.5119389" {
		t.Errorf("request path = %q", gotPath)
	}
	if !strings.Contains(gotUA, "mailto:dev@example.org") {
		t.Errorf("User-Agent = %q, want mailto contact", gotUA)
	}
}

func TestResolveNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"responseCode":100,"handle":"10.1234/nope"}`)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithRateLimit(100))
	_, err := c.Resolve(context.Background(), "10.1234/nope")
	if err == nil {
		t.Fatal("Resolve() should fail for an unregistered DOI")
	}
	if !IsNotFound(err) {
		t.Errorf("IsNotFound(%v) = false", err)
	}
	if IsServerError(err) {
		t.Errorf("IsServerError(%v) = true", err)
	}

	var re *ResolveError
	if !errors.As(err, &re) {
		t.Fatalf("error is %T, want *ResolveError", err)
	}
	if re.Code != 100 {
		t.Errorf("Code = %d, want 100", re.Code)
	}
}

func TestResolveRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, registeredBody)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithRateLimit(100))
	c.retryInterval = time.Millisecond

	res, err := c.Resolve(context.Background(), "10.5281/zenodo.5119389")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !res.Resolved {
		t.Error("Resolved = false after successful retry")
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server saw %d requests, want 3", got)
	}
}

func TestResolveGivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithRateLimit(100))
	c.maxRetries = 2
	c.retryInterval = time.Millisecond

	_, err := c.Resolve(context.Background(), "10.1234/down")
	if err == nil {
		t.Fatal("Resolve() should fail when the server keeps erroring")
	}
	if !IsServerError(err) {
		t.Errorf("IsServerError(%v) = false", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server saw %d requests, want 3 (initial + 2 retries)", got)
	}
}

func TestResolveRateLimitedIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithRateLimit(100))
	c.retryInterval = time.Millisecond

	_, err := c.Resolve(context.Background(), "10.1234/busy")
	if !IsRateLimited(err) {
		t.Errorf("IsRateLimited(%v) = false", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server saw %d requests, want 1", got)
	}
}

func TestResolveInvalidResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>definitely not the handle API</html>")
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithRateLimit(100))
	_, err := c.Resolve(context.Background(), "10.1234/weird")
	if !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("error = %v, want ErrInvalidResponse", err)
	}
}

func TestResolveNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	c := NewClient(WithBaseURL(base), WithRateLimit(100))
	c.maxRetries = 1
	c.retryInterval = time.Millisecond

	_, err := c.Resolve(context.Background(), "10.1234/unreachable")
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("error = %v, want ErrNetwork", err)
	}
}

func TestResolveEmptyDOI(t *testing.T) {
	c := NewClient(WithRateLimit(100))
	if _, err := c.Resolve(context.Background(), ""); err == nil {
		t.Error("Resolve(\"\") should fail")
	}
}

func TestCheckDocument(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch r.URL.Path {
		case "/10.5281/zenodo.5119389":
			fmt.Fprint(w, registeredBody)
		case "/10.5194/gmd-15-5371-2022":
			fmt.Fprint(w, `{"responseCode":1,"handle":"10.5194/gmd-15-5371-2022","values":[]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprintf(w, `{"responseCode":100,"handle":%q}`, strings.TrimPrefix(r.URL.Path, "/"))
		}
	}))
	defer srv.Close()

	doc := &cff.Document{
		DOI: "10.5281/zenodo.5119389",
		Identifiers: []cff.Identifier{
			// Same handle as the doi field, resolved once
			{Type: "doi", Value: "https://doi.org/10.5281/zenodo.5119389"},
			{Type: "url", Value: "https://example.org"},
		},
		References: []cff.Reference{
			{Type: "article", DOI: "10.5194/gmd-15-5371-2022"},
			{Type: "article", DOI: "10.9999/gone"},
		},
	}

	c := NewClient(WithBaseURL(srv.URL), WithRateLimit(100))
	results, err := c.CheckDocument(context.Background(), doc)
	if err != nil {
		t.Fatalf("CheckDocument() error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3: %+v", len(results), results)
	}

	if results[0].Source != "doi" || !results[0].Resolved {
		t.Errorf("results[0] = %+v", results[0])
	}
	if results[1].Source != "references[0]" || !results[1].Resolved {
		t.Errorf("results[1] = %+v", results[1])
	}
	if results[2].Source != "references[1]" || results[2].Resolved || results[2].Err == "" {
		t.Errorf("results[2] = %+v", results[2])
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server saw %d requests, want 3", got)
	}
}

func TestUserAgentFromEnv(t *testing.T) {
	orig := os.Getenv("CFF_MAILTO")
	defer os.Setenv("CFF_MAILTO", orig)

	os.Setenv("CFF_MAILTO", "ops@example.org")
	c := NewClient()
	if got := c.userAgent(); !strings.Contains(got, "mailto:ops@example.org") {
		t.Errorf("userAgent() = %q, want mailto contact", got)
	}

	os.Setenv("CFF_MAILTO", "")
	c = NewClient()
	if got := c.userAgent(); strings.Contains(got, "mailto") {
		t.Errorf("userAgent() = %q, want no contact", got)
	}
}
