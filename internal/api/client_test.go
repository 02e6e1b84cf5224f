package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fintrack/internal/log"
)

func testLogger() *log.Logger {
	return log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
}

func newTestClient(url string, token string) *Client {
	return NewClient(url, 2*time.Second, func() string { return token }, testLogger())
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "tok123")
	if _, err := c.ListTransactions(context.Background()); err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}

	if gotAuth != "Bearer tok123" {
		t.Errorf("Authorization = %q, want Bearer tok123", gotAuth)
	}
	if gotRequestID == "" {
		t.Error("X-Request-ID missing")
	}
}

func TestClient_NoTokenStillSendsRequest(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "")
	if _, err := c.ListTransactions(context.Background()); err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
}

func TestClient_TokenReadPerRequest(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	token := "first"
	c := NewClient(srv.URL, time.Second, func() string { return token }, testLogger())

	c.ListTransactions(context.Background())
	token = "second"
	c.ListTransactions(context.Background())

	if len(got) != 2 || got[0] != "Bearer first" || got[1] != "Bearer second" {
		t.Fatalf("tokens seen by server: %v", got)
	}
}

func TestClient_ConnectionRefusedIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // nothing is listening anymore

	c := newTestClient(url, "")
	_, err := c.ListTransactions(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsNetworkError(err) {
		t.Fatalf("err = %v, want network error", err)
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Message == "" {
		t.Fatalf("network error has no user message: %+v", apiErr)
	}
}

func TestClient_TimeoutIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 50*time.Millisecond, func() string { return "" }, testLogger())
	_, err := c.ListTransactions(context.Background())
	if !IsNetworkError(err) {
		t.Fatalf("err = %v, want network error", err)
	}
}

func TestClient_ServerErrorIsNotNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success": false, "message": "Amount is required", "errors": {"amount": "required"}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "")
	_, err := c.ListTransactions(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if IsNetworkError(err) {
		t.Fatal("server response misclassified as network error")
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %T, want *Error", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d", apiErr.StatusCode)
	}
	// The backend message is surfaced verbatim, fields untransformed.
	if apiErr.Message != "Amount is required" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if apiErr.Fields["amount"] != "required" {
		t.Errorf("Fields = %v", apiErr.Fields)
	}
}

func TestClient_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"success": true, "token": "jwt1", "data": {"name": "Ada", "email": "ada@example.com"}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "")
	resp, err := c.Login(context.Background(), Credentials{Email: "ada@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !resp.Success || resp.Token != "jwt1" || resp.User.Name != "Ada" {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestDecodeList(t *testing.T) {
	type item struct {
		ID string `json:"_id"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
		wantLen int
	}{
		{"bare array", `[{"_id": "1"}, {"_id": "2"}]`, false, 2},
		{"data envelope", `{"data": [{"_id": "1"}]}`, false, 1},
		{"empty array", `[]`, false, 0},
		{"envelope with empty array", `{"data": []}`, false, 0},
		{"object data", `{"data": {"_id": "1"}}`, true, 0},
		{"missing data key", `{"transactions": []}`, true, 0},
		{"scalar", `42`, true, 0},
		{"empty body", ``, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out []item
			err := decodeList([]byte(tt.body), &out)
			if tt.wantErr {
				if !errors.Is(err, ErrUnrecognizedEnvelope) {
					t.Fatalf("err = %v, want ErrUnrecognizedEnvelope", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(out) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(out), tt.wantLen)
			}
		})
	}
}
