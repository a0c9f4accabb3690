package firecrawl

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{APIKey: "fc-test", BaseURL: server.URL + "/"})
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(Config{APIKey: " key "})
	if client.baseURL != defaultBaseURL || client.apiKey != "key" || client.timeout != ExtractTimeout {
		t.Fatalf("unexpected defaults: %+v", client)
	}
}

func TestExtractSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/scrape" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer fc-test" {
			t.Errorf("missing bearer token")
		}
		var body struct {
			URL     string `json:"url"`
			Formats []struct {
				Type   string                 `json:"type"`
				Schema map[string]interface{} `json:"schema"`
			} `json:"formats"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.URL != "https://shop.example/desk" || len(body.Formats) != 1 || body.Formats[0].Type != "json" {
			t.Errorf("unexpected request body: %+v", body)
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"json":{"name":"Standing Desk","price":"$499.00","brand":"Uplift","color":""},"metadata":{"statusCode":200}}}`))
	})

	facts, err := client.Extract(context.Background(), "https://shop.example/desk")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if facts.Name != "Standing Desk" || facts.Price != "$499.00" {
		t.Fatalf("unexpected facts: %+v", facts)
	}
	if facts.Brand == nil || *facts.Brand != "Uplift" {
		t.Fatalf("brand not parsed: %+v", facts.Brand)
	}
	if facts.Color != nil || facts.Dimensions != nil || facts.Description != nil {
		t.Fatalf("empty optional fields should be nil")
	}
}

func TestExtractReturnsNilOnUnusableData(t *testing.T) {
	cases := []struct {
		name string
		body string
		want error
	}{
		{name: "no json", body: `{"success":true,"data":{"metadata":{"statusCode":200}}}`, want: ErrIncompleteData},
		{name: "missing price", body: `{"success":true,"data":{"json":{"name":"Desk"}}}`, want: ErrIncompleteData},
		{name: "price n/a", body: `{"success":true,"data":{"json":{"name":"Desk","price":"N/A"}}}`, want: ErrIncompleteData},
		{name: "404 page", body: `{"success":true,"data":{"json":{"name":"Not Found","price":"$0"},"metadata":{"statusCode":404}}}`, want: ErrPageNotFound},
		{name: "api failure", body: `{"success":false,"error":"blocked"}`, want: ErrRequestFailed},
		{name: "garbage", body: `<html>`, want: ErrResponseInvalid},
	}
	for _, tc := range cases {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(tc.body))
		})
		facts, err := client.Extract(context.Background(), "https://shop.example/x")
		if facts != nil || !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected nil facts and %v, got %+v %v", tc.name, tc.want, facts, err)
		}
		if errors.Is(err, ErrTimeout) {
			t.Fatalf("%s: must not report timeout", tc.name)
		}
	}
}

func TestExtractHTTPErrorIsRequestFailed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	if _, err := client.Extract(context.Background(), "https://shop.example/x"); !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("expected ErrRequestFailed, got %v", err)
	}
}

func TestExtractTimeout(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)
	client.timeout = 50 * time.Millisecond

	_, err := client.Extract(context.Background(), "https://shop.example/slow")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}
