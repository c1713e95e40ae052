package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const listingFixture = `{
	"data": {
		"children": [
			{
				"data": {
					"title": "Breaking: cricket final tonight",
					"selftext": "Some body text",
					"url": "https://i.example.com/direct.jpg",
					"thumbnail": "https://i.example.com/thumb.jpg",
					"created_utc": 1700000000,
					"subreddit": "Cricket",
					"permalink": "/r/Cricket/comments/abc/breaking/",
					"over_18": false,
					"is_video": false,
					"post_hint": "image",
					"preview": {
						"images": [
							{"source": {"url": "https://preview.example.com/img.jpg?width=640&amp;crop=smart"}}
						]
					}
				}
			},
			{
				"data": {
					"title": "Second post",
					"created_utc": 1700000100,
					"subreddit": "Cricket",
					"permalink": "/r/Cricket/comments/def/second/"
				}
			}
		]
	}
}`

func TestListingClientFetch(t *testing.T) {
	var gotPath, gotQuery, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(listingFixture))
	}))
	defer srv.Close()

	client := NewListingClient(srv.URL, "memenews/1.0", 5*time.Second)

	posts, err := client.Fetch(context.Background(), "Cricket", 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/r/Cricket/hot.json" {
		t.Errorf("unexpected request path: %s", gotPath)
	}
	if gotQuery != "limit=15" {
		t.Errorf("unexpected query: %s", gotQuery)
	}
	if gotUA != "memenews/1.0" {
		t.Errorf("unexpected user agent: %s", gotUA)
	}

	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}

	first := posts[0]
	if first.Title != "Breaking: cricket final tonight" {
		t.Errorf("unexpected title: %q", first.Title)
	}
	if first.PreviewURL != "https://preview.example.com/img.jpg?width=640&amp;crop=smart" {
		t.Errorf("preview URL should stay raw at decode time, got %q", first.PreviewURL)
	}
	if first.CreatedUTC != 1700000000 {
		t.Errorf("unexpected created_utc: %f", first.CreatedUTC)
	}
	if !first.Published().Equal(time.Unix(1700000000, 0).UTC()) {
		t.Errorf("unexpected published time: %v", first.Published())
	}
	if first.PostHint != "image" || first.Over18 || first.IsVideo {
		t.Errorf("flags decoded wrong: %+v", first)
	}
}

func TestListingClientEncodesSourceName(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"data":{"children":[]}}`))
	}))
	defer srv.Close()

	client := NewListingClient(srv.URL, "memenews/1.0", 5*time.Second)

	if _, err := client.Fetch(context.Background(), "odd name", 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/r/odd%20name/hot.json" {
		t.Errorf("source name not encoded: %s", gotPath)
	}
}

func TestListingClientBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewListingClient(srv.URL, "memenews/1.0", 5*time.Second)

	_, err := client.Fetch(context.Background(), "Cricket", 5)
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestListingClientMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [not json`))
	}))
	defer srv.Close()

	client := NewListingClient(srv.URL, "memenews/1.0", 5*time.Second)

	_, err := client.Fetch(context.Background(), "Cricket", 5)
	if !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode, got %v", err)
	}
}

func TestListingClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"data":{"children":[]}}`))
	}))
	defer srv.Close()

	client := NewListingClient(srv.URL, "memenews/1.0", 20*time.Millisecond)

	_, err := client.Fetch(context.Background(), "Cricket", 5)
	if !errors.Is(err, ErrSourceTimeout) {
		t.Errorf("expected ErrSourceTimeout, got %v", err)
	}
}
