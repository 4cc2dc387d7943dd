package postcodes_client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ianmeigh/property-direct-backend/internal/contextkeys"
	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *PostcodesIOClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewPostcodesIOClient(server.URL, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func TestResolveSuccess(t *testing.T) {
	var gotPath, gotTrace string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotTrace = r.Header.Get("X-Trace-ID")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":200,"result":{"postcode":"W1A 1AA","longitude":-0.143799,"latitude":51.518561}}`))
	})

	ctx := contextkeys.ContextWithTraceID(context.Background(), "trace-1")
	point, err := client.Resolve(ctx, "W1A 1AA")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if point.Latitude != 51.518561 || point.Longitude != -0.143799 {
		t.Errorf("unexpected point: %+v", point)
	}
	if gotPath != "/postcodes/W1A%201AA" {
		t.Errorf("postcode should be sent as provided, got path %q", gotPath)
	}
	if gotTrace != "trace-1" {
		t.Errorf("trace id not forwarded, got %q", gotTrace)
	}
}

func TestResolveFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"invalid postcode", http.StatusNotFound, `{"status":404,"error":"Invalid postcode"}`, domain.ErrPostcodeInvalid},
		{"postcode not found", http.StatusNotFound, `{"status":404,"error":"Postcode not found"}`, domain.ErrPostcodeInvalid},
		{"resource not found", http.StatusNotFound, `{"status":404,"error":"Resource not found"}`, domain.ErrServiceUnavailable},
		{"status only in body", http.StatusOK, `{"status":404,"error":"Invalid postcode"}`, domain.ErrPostcodeInvalid},
		{"server error", http.StatusInternalServerError, `{"status":500,"error":"Internal"}`, domain.ErrServiceUnavailable},
		{"not json", http.StatusBadGateway, `<html>bad gateway</html>`, domain.ErrServiceUnavailable},
		{"no coordinates", http.StatusOK, `{"status":200,"result":{"postcode":"GY1 1AA","longitude":null,"latitude":null}}`, domain.ErrPostcodeInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.Resolve(context.Background(), "zz99 9zz")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Resolve error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolveInvalidPostcodeMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status":404,"error":"Invalid postcode"}`))
	})

	_, err := client.Resolve(context.Background(), "not a postcode")
	var domainErr *domain.Error
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected *domain.Error, got %T", err)
	}
	if domainErr.Message != "Please enter a valid UK postcode" {
		t.Errorf("unexpected message %q", domainErr.Message)
	}
}

func TestResolveUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client, err := NewPostcodesIOClient(baseURL, 200*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.Resolve(context.Background(), "w1a 1aa"); !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}
}

func TestNewPostcodesIOClientValidatesURL(t *testing.T) {
	if _, err := NewPostcodesIOClient("", time.Second); err == nil {
		t.Error("expected error for empty base URL")
	}
	if _, err := NewPostcodesIOClient("not a url", time.Second); err == nil {
		t.Error("expected error for malformed base URL")
	}
}
