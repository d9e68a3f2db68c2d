package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vantagecap/dealdesk/internal/domain/dealModel"
)

type mockSearcher struct {
	searchFunc func(ctx context.Context, query string, limit int) ([]dealModel.Finding, error)
	queries    []string
}

func (m *mockSearcher) Search(ctx context.Context, query string, limit int) ([]dealModel.Finding, error) {
	m.queries = append(m.queries, query)
	return m.searchFunc(ctx, query, limit)
}

func TestGather_SkipsEmptyEntities(t *testing.T) {
	search := &mockSearcher{
		searchFunc: func(ctx context.Context, query string, limit int) ([]dealModel.Finding, error) {
			return []dealModel.Finding{{Title: "hit", URL: "https://example.com"}}, nil
		},
	}
	svc := NewService(search)

	data := svc.Gather(context.Background(), "Acme", "", "")

	if len(search.queries) != 1 {
		t.Fatalf("expected 1 query for company only, got %d: %v", len(search.queries), search.queries)
	}
	if len(data.Company) != 1 {
		t.Errorf("expected company findings, got %v", data.Company)
	}
	if data.Founders != nil || data.Sector != nil {
		t.Error("expected nil findings for empty entities")
	}
	if data.GatheredAt.IsZero() {
		t.Error("GatheredAt not set")
	}
}

func TestGather_AbsorbsLookupErrors(t *testing.T) {
	calls := 0
	search := &mockSearcher{
		searchFunc: func(ctx context.Context, query string, limit int) ([]dealModel.Finding, error) {
			calls++
			if calls == 1 {
				return nil, errors.New("search API down")
			}
			return []dealModel.Finding{{Title: "ok", URL: "https://example.com"}}, nil
		},
	}
	svc := NewService(search)

	data := svc.Gather(context.Background(), "Acme", "Jo Smith", "fintech")

	if calls != 3 {
		t.Fatalf("expected all 3 lookups to run, got %d", calls)
	}
	if data.Company != nil {
		t.Error("failed company lookup should leave nil findings")
	}
	if len(data.Founders) != 1 || len(data.Sector) != 1 {
		t.Errorf("surviving lookups should keep findings: %+v", data)
	}
}

func TestSearchClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/search" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token, got %q", r.Header.Get("Authorization"))
		}
		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.Limit != 5 {
			t.Errorf("expected limit 5, got %d", req.Limit)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results": [
			{"title": "Acme raises seed", "url": "https://news.example.com/acme", "snippet": "Acme announced..."},
			{"title": "", "url": "", "snippet": "junk row"}
		]}`))
	}))
	defer srv.Close()

	client := &searchClient{baseURL: srv.URL, apiKey: "test-key", http: srv.Client()}

	findings, err := client.Search(context.Background(), "Acme startup", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(findings) != 1 {
		t.Fatalf("expected junk row filtered, got %d findings", len(findings))
	}
	if findings[0].URL != "https://news.example.com/acme" {
		t.Errorf("unexpected finding %+v", findings[0])
	}
}

func TestSearchClient_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := &searchClient{baseURL: srv.URL, apiKey: "test-key", http: srv.Client()}

	if _, err := client.Search(context.Background(), "Acme", 5); err == nil {
		t.Fatal("expected error on 429")
	}
}
