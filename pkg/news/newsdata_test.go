package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

const newsdataPayload = `{
  "status": "success",
  "totalResults": 2,
  "results": [
    {
      "article_id": "b1f0",
      "title": "Stocks edge higher as chipmakers rally",
      "link": "https://example.com/chips",
      "description": "Semiconductor shares led gains.",
      "pubDate": "2026-10-16 21:05:00",
      "source_id": "reuters"
    },
    {
      "article_id": "c2a1",
      "title": "Oil slips on demand worries",
      "link": "https://example.com/oil",
      "pubDate": "not a date",
      "source_id": ""
    }
  ]
}`

func TestNewsdataFetch(t *testing.T) {
	var query map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		assert.Equal(t, "/api/1/news", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(newsdataPayload))
	}))
	defer srv.Close()

	client := NewNewsdataClient("test-key", "us", "business", "en")
	client.httpClient = newRewrittenClient(srv)

	articles, err := client.Fetch(context.Background(), 10)

	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"test-key"}, query["apikey"])
	assert.Equal(t, []string{"us"}, query["country"])
	assert.Equal(t, []string{"business"}, query["category"])
	assert.Equal(t, []string{"en"}, query["language"])
	assert.Equal(t, []string{"10"}, query["size"])

	assert.Equal(t, 2, len(articles))
	assert.Equal(t, "Stocks edge higher as chipmakers rally", articles[0].Headline)
	assert.Equal(t, "reuters", articles[0].Publisher)
	assert.Equal(t, time.Date(2026, time.October, 16, 21, 5, 0, 0, time.UTC), articles[0].PublishedAt)
	assert.Equal(t, true, articles[1].PublishedAt.IsZero())
}

func TestNewsdataFetchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"error","results":{"message":"API key is invalid"}}`))
	}))
	defer srv.Close()

	client := NewNewsdataClient("bad-key", "us", "business", "en")
	client.httpClient = newRewrittenClient(srv)

	_, err := client.Fetch(context.Background(), 10)

	assert.NotEqual(t, nil, err)
}
