package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts, NewClient(ts.URL, 5*time.Second)
}

func TestSearchJobs(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search"); got != "go developer" {
			t.Errorf("search param = %q", got)
		}
		w.Write([]byte(`{"jobItems":[
			{"id":1,"badgeLetters":"AC","title":"Go Developer","company":"Acme","relevanceScore":0.9,"daysAgo":2},
			{"id":2,"badgeLetters":"WI","title":"Backend Dev","company":"Widgets","relevanceScore":0.5,"daysAgo":7}
		]}`))
	})

	items, err := client.SearchJobs(context.Background(), "go developer")
	if err != nil {
		t.Fatalf("SearchJobs: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items", len(items))
	}
	if items[0].ID != 1 || items[0].Title != "Go Developer" || items[0].RelevanceScore != 0.9 {
		t.Errorf("first item = %+v", items[0])
	}
}

func TestSearchJobsDropsMalformedRows(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		// Missing title, non-positive id, negative daysAgo: all dropped.
		w.Write([]byte(`{"jobItems":[
			{"id":1,"title":"Good","daysAgo":1},
			{"id":2,"title":"","daysAgo":1},
			{"id":0,"title":"No ID","daysAgo":1},
			{"id":3,"title":"Time Traveller","daysAgo":-1}
		]}`))
	})

	items, err := client.SearchJobs(context.Background(), "x")
	if err != nil {
		t.Fatalf("SearchJobs: %v", err)
	}
	if len(items) != 1 || items[0].ID != 1 {
		t.Errorf("items = %+v", items)
	}
}

func TestSearchJobsEmptyResult(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jobItems":[]}`))
	})

	items, err := client.SearchJobs(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("SearchJobs: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("want empty non-nil slice, got %v", items)
	}
}

func TestGetJob(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/7" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"jobItem":{
			"id":7,"title":"Platform Engineer","company":"Acme","daysAgo":3,
			"description":"Build things","qualifications":["Go","SQL"],
			"reviews":["great team"],"salary":"$120k","location":"Remote",
			"duration":"Full-time","companyURL":"https://acme.example"
		}}`))
	})

	d, err := client.GetJob(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if d.ID != 7 || d.Description != "Build things" || len(d.Qualifications) != 2 {
		t.Errorf("details = %+v", d)
	}
}

func TestGetJobNotFound(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"description":"Resource not found"}`))
	})

	_, err := client.GetJob(context.Background(), 999)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("want *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != 404 || apiErr.Description != "Resource not found" {
		t.Errorf("apiErr = %+v", apiErr)
	}
	if apiErr.Error() != "Resource not found" {
		t.Errorf("Error() = %q", apiErr.Error())
	}
}

func TestAPIErrorWithoutDescription(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`upstream exploded`))
	})

	_, err := client.SearchJobs(context.Background(), "x")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("want *APIError, got %v", err)
	}
	if apiErr.StatusCode != 502 {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
	if apiErr.Error() != "unexpected status 502" {
		t.Errorf("Error() = %q", apiErr.Error())
	}
}

func TestGetJobMalformedPayload(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jobItem":{"id":0,"title":""}}`))
	})

	if _, err := client.GetJob(context.Background(), 5); err == nil {
		t.Error("malformed detail payload accepted")
	}
}

func TestContextCancellation(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"jobItems":[]}`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := client.SearchJobs(ctx, "x"); err == nil {
		t.Error("cancelled request succeeded")
	}
}
