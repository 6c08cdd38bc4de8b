package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/meridianpay/dashboard/internal/credstore"
)

func seededStore(t *testing.T, cred credstore.Credential) credstore.Store {
	t.Helper()
	store := credstore.NewMemoryStore()
	if err := store.Persist(context.Background(), &cred); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	return store
}

func TestDoAttachesStoredCredential(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"code":200,"data":{"id":1}}`))
	}))
	defer srv.Close()

	store := seededStore(t, credstore.Credential{AccessToken: "tok-1", TokenType: "JWT"})
	client := New(srv.URL, time.Second).WithStore(store)

	if _, err := client.Do(context.Background(), http.MethodPost, EndpointWhoAmI, struct{}{}); err != nil {
		t.Fatalf("do: %v", err)
	}
	if gotAuth != "JWT tok-1" {
		t.Fatalf("expected Authorization %q, got %q", "JWT tok-1", gotAuth)
	}
}

func TestDoDefaultsTokenTypeToBearer(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"code":200,"data":{}}`))
	}))
	defer srv.Close()

	store := seededStore(t, credstore.Credential{AccessToken: "tok-1"})
	client := New(srv.URL, time.Second).WithStore(store)

	if _, err := client.Do(context.Background(), http.MethodPost, "/x", nil); err != nil {
		t.Fatalf("do: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("expected bearer default, got %q", gotAuth)
	}
}

func TestDoOmitsAuthorizationWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"code":200,"data":{}}`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second).WithStore(credstore.NewMemoryStore())
	if _, err := client.Do(context.Background(), http.MethodPost, "/x", nil); err != nil {
		t.Fatalf("do: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestDoClassifiesFailureEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"member.not","message":"no such member"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second).WithStore(credstore.NewMemoryStore())
	_, err := client.Do(context.Background(), http.MethodPost, "/x", nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Code != "member.not" || apiErr.Message != "no such member" {
		t.Fatalf("unexpected api error: %+v", apiErr)
	}
}

func TestDoSuccessCodeWithoutDataIsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":200,"message":"empty"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second).WithStore(credstore.NewMemoryStore())
	_, err := client.Do(context.Background(), http.MethodPost, "/x", nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError for missing data, got %v", err)
	}
	if apiErr.Code != "200" {
		t.Fatalf("expected raw code 200, got %q", apiErr.Code)
	}
}

func TestDoMalformedBodyIsDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>nope</html>`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second).WithStore(credstore.NewMemoryStore())
	_, err := client.Do(context.Background(), http.MethodPost, "/x", nil)

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}
}

func TestDoNon2xxUnparseableBodyIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("Bad Gateway"))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second).WithStore(credstore.NewMemoryStore())
	_, err := client.Do(context.Background(), http.MethodPost, "/x", nil)

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected *TransportError, got %v", err)
	}
}

func TestDoUnreachableHostIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := New(srv.URL, time.Second).WithStore(credstore.NewMemoryStore())
	_, err := client.Do(context.Background(), http.MethodPost, "/x", nil)

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected *TransportError, got %v", err)
	}
}

func TestDoNon2xxWithFailureEnvelopeIsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":401,"message":"expired"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second).WithStore(credstore.NewMemoryStore())
	_, err := client.Do(context.Background(), http.MethodPost, "/x", nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError from parseable failure body, got %v", err)
	}
	if apiErr.Code != "401" {
		t.Fatalf("expected code 401, got %q", apiErr.Code)
	}
}
