package airtable_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dataset-catalog-api/internal/airtable"
	"github.com/dataset-catalog-api/internal/config"
	"github.com/rs/zerolog"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*airtable.Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := airtable.NewClient(&config.StoreConfig{
		BaseURL:  server.URL,
		APIKey:   "test-key",
		BaseID:   "base123",
		PageSize: 2,
		Timeout:  5 * time.Second,
	}, zerolog.Nop())
	return client, server
}

func TestListRecords_FollowsOffsetToken(t *testing.T) {
	var pages []string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Expected bearer auth header, got %q", got)
		}
		offset := r.URL.Query().Get("offset")
		pages = append(pages, offset)

		switch offset {
		case "":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"records": []map[string]interface{}{
					{"id": "rec1", "fields": map[string]interface{}{"Title": "One"}},
					{"id": "rec2", "fields": map[string]interface{}{"Title": "Two"}},
				},
				"offset": "page2",
			})
		case "page2":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"records": []map[string]interface{}{
					{"id": "rec3", "fields": map[string]interface{}{"Title": "Three"}},
				},
			})
		default:
			t.Errorf("Unexpected offset %q", offset)
		}
	})

	records, err := client.ListRecords(context.Background(), "Datasets", airtable.ListOptions{})
	if err != nil {
		t.Fatalf("ListRecords failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	if records[2].ID != "rec3" {
		t.Errorf("Expected rec3 last, got %s", records[2].ID)
	}
	if len(pages) != 2 {
		t.Errorf("Expected 2 page fetches, got %d", len(pages))
	}
}

func TestListRecords_ForwardsViewAndFormula(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("view") != "Poland" {
			t.Errorf("Expected view Poland, got %q", q.Get("view"))
		}
		if q.Get("filterByFormula") != `{DataID} = 5` {
			t.Errorf("Unexpected formula %q", q.Get("filterByFormula"))
		}
		if q.Get("pageSize") != "2" {
			t.Errorf("Expected pageSize 2, got %q", q.Get("pageSize"))
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"records": []interface{}{}})
	})

	_, err := client.ListRecords(context.Background(), "Datasets", airtable.ListOptions{
		View:    "Poland",
		Formula: airtable.NumberEquals("DataID", 5),
	})
	if err != nil {
		t.Fatalf("ListRecords failed: %v", err)
	}
}

func TestListRecords_NeverEndingPaginationAborts(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Upstream that always hands out another offset token
		json.NewEncoder(w).Encode(map[string]interface{}{
			"records": []interface{}{},
			"offset":  "again",
		})
	})

	_, err := client.ListRecords(context.Background(), "Datasets", airtable.ListOptions{})
	if err == nil {
		t.Fatal("Expected an error for unbounded pagination")
	}
	if !strings.Contains(err.Error(), "did not terminate") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestGetRecord(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/Datasets/rec42") {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "rec42",
			"fields": map[string]interface{}{"Title": "Answer"},
		})
	})

	rec, err := client.GetRecord(context.Background(), "Datasets", "rec42")
	if err != nil {
		t.Fatalf("GetRecord failed: %v", err)
	}
	if rec.ID != "rec42" || rec.Fields["Title"] != "Answer" {
		t.Errorf("Unexpected record: %#v", rec)
	}
}

func TestGetRecord_NotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := client.GetRecord(context.Background(), "Datasets", "recmissing")
	if err != airtable.ErrRecordNotFound {
		t.Errorf("Expected ErrRecordNotFound, got %v", err)
	}
}

func TestGetRecord_UpstreamErrorTextSurfaces(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{"type": "INVALID_FILTER", "message": "invalid formula"},
		})
	})

	_, err := client.GetRecord(context.Background(), "Datasets", "rec1")
	if err == nil {
		t.Fatal("Expected error")
	}
	if !strings.Contains(err.Error(), "invalid formula") {
		t.Errorf("Expected upstream message in error, got: %v", err)
	}
}
