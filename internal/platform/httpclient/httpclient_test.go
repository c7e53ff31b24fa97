package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDoJSON_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected json content type, got %q", r.Header.Get("Content-Type"))
		}
		if r.Header.Get("X-Api-Key") != "secret" {
			t.Errorf("expected api key header, got %q", r.Header.Get("X-Api-Key"))
		}

		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		_ = json.NewEncoder(w).Encode(map[string]string{"echo": in["msg"]})
	}))
	defer srv.Close()

	c, err := NewWithBaseURL(srv.URL, 0)
	if err != nil {
		t.Fatalf("NewWithBaseURL error: %v", err)
	}

	var out struct {
		Echo string `json:"echo"`
	}
	err = c.DoJSON(context.Background(), http.MethodPost, "/v1/echo",
		map[string]string{"X-Api-Key": "secret"},
		map[string]string{"msg": "hola"}, &out)
	if err != nil {
		t.Fatalf("DoJSON error: %v", err)
	}
	if out.Echo != "hola" {
		t.Fatalf("expected echo hola, got %q", out.Echo)
	}
}

func TestDoJSON_Non2xxIsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	c, err := NewWithBaseURL(srv.URL, 0)
	if err != nil {
		t.Fatalf("NewWithBaseURL error: %v", err)
	}

	err = c.DoJSON(context.Background(), http.MethodGet, "/v1/anything", nil, nil, nil)
	var he *HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *HTTPError, got %v", err)
	}
	if he.StatusCode != http.StatusForbidden || he.Body != "nope" {
		t.Fatalf("unexpected HTTPError: %+v", he)
	}
}

func TestDoJSON_RelativePathNeedsBaseURL(t *testing.T) {
	c, err := NewWithBaseURL("", 0)
	if err != nil {
		t.Fatalf("NewWithBaseURL error: %v", err)
	}
	if err := c.DoJSON(context.Background(), http.MethodGet, "/v1/x", nil, nil, nil); err == nil {
		t.Fatalf("expected error for relative path without base url")
	}
}

func TestNewWithBaseURL_RejectsInvalid(t *testing.T) {
	if _, err := NewWithBaseURL("not a url", 0); err == nil {
		t.Fatalf("expected error for invalid base url")
	}
}
