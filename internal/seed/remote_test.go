package seed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRemoteSourceFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"settings": {"currency": "EUR", "startingBalance": 100},
			"transactions": [
				{"id": "r1", "type": "credit", "date": "2024-01-01", "amount": 50, "category": "Salary"}
			]
		}`))
	}))
	defer srv.Close()

	ds, err := NewRemoteSource(srv.URL).Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(ds.Transactions) != 1 || ds.Transactions[0].ID != "r1" {
		t.Fatalf("unexpected dataset %+v", ds.Transactions)
	}
}

func TestRemoteSourceFetchErrors(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"not json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>nope</html>"))
		}},
		{"no transactions array", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"settings": {}}`))
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			if _, err := NewRemoteSource(srv.URL).Fetch(context.Background()); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
