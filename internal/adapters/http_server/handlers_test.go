package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	server "review_analyzer/internal/adapters/http_server"
	"review_analyzer/internal/adapters/sentiment"
	"review_analyzer/internal/app"
	"review_analyzer/internal/domain"
	"review_analyzer/internal/storage/memory"
)

var vader = sentiment.NewVader()

type brokenScorer struct{}

func (brokenScorer) Score(ctx context.Context, text string) (domain.Sentiment, error) {
	return domain.Sentiment{}, errors.New("scorer exploded")
}

func seed() []domain.Review {
	return []domain.Review{
		{ID: "a", Body: "Awful room, rude staff, never again.", Location: "Denver, Colorado", Timestamp: "2023-05-01 00:00:00"},
		{ID: "b", Body: "Wonderful stay, lovely staff!", Location: "Denver, Colorado", Timestamp: "2023-05-01 18:00:00"},
		{ID: "c", Body: "The room was okay.", Location: "Phoenix, Arizona", Timestamp: "2023-06-10 12:00:00"},
	}
}

func newTestServer(t *testing.T, sc domain.Scorer, opts server.Options) *httptest.Server {
	t.Helper()
	if sc == nil {
		sc = vader
	}
	svc := app.NewReviewService(memory.New(seed()), sc, 4)
	srv := server.New(opts)
	srv.MountHandlers(&server.Handlers{Svc: svc})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func getReviews(t *testing.T, ts *httptest.Server, query string) (int, []domain.Review, map[string]string) {
	t.Helper()
	res, err := http.Get(ts.URL + "/?" + query)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		var e map[string]string
		_ = json.NewDecoder(res.Body).Decode(&e)
		return res.StatusCode, nil, e
	}
	var out []domain.Review
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return res.StatusCode, out, nil
}

func postForm(t *testing.T, ts *httptest.Server, body, contentType string) (int, map[string]any) {
	t.Helper()
	res, err := http.Post(ts.URL+"/", contentType, strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer res.Body.Close()
	var out map[string]any
	_ = json.NewDecoder(res.Body).Decode(&out)
	return res.StatusCode, out
}

func TestGet_AllSortedWithSentiment(t *testing.T) {
	ts := newTestServer(t, nil, server.Options{})

	code, out, _ := getReviews(t, ts, "")
	if code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 reviews, got %d", len(out))
	}
	for i, r := range out {
		if r.Sentiment == nil {
			t.Fatalf("review %s has no sentiment", r.ID)
		}
		if i > 0 && out[i-1].Sentiment.Compound < r.Sentiment.Compound {
			t.Fatalf("not sorted at %d: %v < %v", i, out[i-1].Sentiment.Compound, r.Sentiment.Compound)
		}
	}
	if out[0].ID != "b" || out[2].ID != "a" {
		t.Fatalf("unexpected order: %s %s %s", out[0].ID, out[1].ID, out[2].ID)
	}
}

func TestGet_InvalidLocation(t *testing.T) {
	ts := newTestServer(t, nil, server.Options{})

	code, _, e := getReviews(t, ts, url.Values{"location": {"Nowhere, Atlantis"}}.Encode())
	if code != http.StatusBadRequest || e["error"] != "Invalid location" {
		t.Fatalf("got %d %v", code, e)
	}
}

func TestGet_BadDate(t *testing.T) {
	ts := newTestServer(t, nil, server.Options{})

	code, _, e := getReviews(t, ts, "start_date=yesterday")
	if code != http.StatusBadRequest || e["error"] != "Invalid start_date" {
		t.Fatalf("got %d %v", code, e)
	}
}

func TestGet_EndDateMidnightEdge(t *testing.T) {
	ts := newTestServer(t, nil, server.Options{})

	q := url.Values{"location": {"Denver, Colorado"}, "start_date": {"2023-05-01"}, "end_date": {"2023-05-01"}}
	code, out, _ := getReviews(t, ts, q.Encode())
	if code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if len(out) != 1 || out[0].ID != "a" {
		t.Fatalf("expected only the midnight review, got %+v", out)
	}
}

func TestGet_EmptyResultIsArray(t *testing.T) {
	ts := newTestServer(t, nil, server.Options{})

	res, err := http.Get(ts.URL + "/?" + url.Values{"location": {"Fresno, California"}}.Encode())
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	var raw json.RawMessage
	_ = json.NewDecoder(res.Body).Decode(&raw)
	if string(raw) != "[]" {
		t.Fatalf("expected [], got %s", raw)
	}
}

func TestGet_ETagNotModified(t *testing.T) {
	ts := newTestServer(t, nil, server.Options{})

	res, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	res.Body.Close()
	etag := res.Header.Get("ETag")
	if etag == "" {
		t.Fatalf("missing ETag")
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/", nil)
	req.Header.Set("If-None-Match", etag)
	res2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	res2.Body.Close()
	if res2.StatusCode != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", res2.StatusCode)
	}
}

func TestGet_ScorerFailureIs500(t *testing.T) {
	ts := newTestServer(t, brokenScorer{}, server.Options{})

	code, _, e := getReviews(t, ts, "")
	if code != http.StatusInternalServerError || !strings.Contains(e["error"], "scorer exploded") {
		t.Fatalf("got %d %v", code, e)
	}
}

var tsRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`)

func TestPost_RoundTrip(t *testing.T) {
	ts := newTestServer(t, nil, server.Options{})

	code, created := postForm(t, ts, "ReviewBody=Great+stay&Location=Denver%2C+Colorado", "application/x-www-form-urlencoded")
	if code != http.StatusCreated {
		t.Fatalf("status %d: %v", code, created)
	}
	id, _ := created["ReviewId"].(string)
	if id == "" {
		t.Fatalf("missing ReviewId: %v", created)
	}
	if created["Location"] != "Denver, Colorado" || created["ReviewBody"] != "Great stay" {
		t.Fatalf("unexpected body: %v", created)
	}
	if stamp, _ := created["Timestamp"].(string); !tsRE.MatchString(stamp) {
		t.Fatalf("bad timestamp %q", stamp)
	}
	if _, ok := created["sentiment"]; ok {
		t.Fatalf("created review should not carry sentiment")
	}

	_, out, _ := getReviews(t, ts, url.Values{"location": {"Denver, Colorado"}}.Encode())
	var found *domain.Review
	for i := range out {
		if out[i].ID == id {
			found = &out[i]
		}
	}
	if found == nil {
		t.Fatalf("new review %s not returned by GET", id)
	}
	if found.Sentiment == nil || found.Sentiment.Compound <= 0 {
		t.Fatalf("expected positive compound, got %+v", found.Sentiment)
	}
}

func TestPost_IgnoresContentType(t *testing.T) {
	ts := newTestServer(t, nil, server.Options{})

	code, _ := postForm(t, ts, "ReviewBody=Fine&Location=Tucson%2C+Arizona", "text/plain")
	if code != http.StatusCreated {
		t.Fatalf("status %d", code)
	}
}

func TestPost_LenientFormBodies(t *testing.T) {
	ts := newTestServer(t, nil, server.Options{})

	cases := map[string]string{
		"ReviewBody=Nice room; clean&Location=Denver%2C+Colorado":    "Nice room; clean",
		"ReviewBody=100% great&Location=Denver%2C+Colorado":          "100% great",
		"ReviewBody=100%25 great&Location=Denver%2C+Colorado":        "100% great",
		"ReviewBody=&ReviewBody=hi&Location=Denver%2C+Colorado":      "hi",
		"Location=Denver%2C+Colorado&junk&ReviewBody=Quiet+and+calm": "Quiet and calm",
	}
	for body, want := range cases {
		code, created := postForm(t, ts, body, "application/x-www-form-urlencoded")
		if code != http.StatusCreated {
			t.Fatalf("body %q: status %d %v", body, code, created)
		}
		if created["ReviewBody"] != want || created["Location"] != "Denver, Colorado" {
			t.Fatalf("body %q: unexpected review %v", body, created)
		}
	}
}

func TestPost_MissingFields(t *testing.T) {
	ts := newTestServer(t, nil, server.Options{})

	for _, body := range []string{"", "ReviewBody=hi", "Location=Denver%2C+Colorado", "ReviewBody=&Location=Nowhere"} {
		code, e := postForm(t, ts, body, "application/x-www-form-urlencoded")
		if code != http.StatusBadRequest || e["error"] != "ReviewBody and Location are required fields" {
			t.Fatalf("body %q: got %d %v", body, code, e)
		}
	}
}

func TestPost_InvalidLocation(t *testing.T) {
	ts := newTestServer(t, nil, server.Options{})

	for _, review := range []string{"Great", "Terrible", "x"} {
		body := url.Values{"ReviewBody": {review}, "Location": {"Nowhere, Atlantis"}}.Encode()
		code, e := postForm(t, ts, body, "application/x-www-form-urlencoded")
		if code != http.StatusBadRequest || e["error"] != "Invalid location" {
			t.Fatalf("got %d %v", code, e)
		}
	}
}

func TestPost_RateLimited(t *testing.T) {
	ts := newTestServer(t, nil, server.Options{WriteRPS: 0.001})

	body := url.Values{"ReviewBody": {"ok"}, "Location": {"Tucson, Arizona"}}.Encode()
	if code, _ := postForm(t, ts, body, "application/x-www-form-urlencoded"); code != http.StatusCreated {
		t.Fatalf("first write: %d", code)
	}
	code, e := postForm(t, ts, body, "application/x-www-form-urlencoded")
	if code != http.StatusTooManyRequests || e["error"] != "rate limit exceeded" {
		t.Fatalf("second write: %d %v", code, e)
	}

	// reads are not throttled
	if code, _, _ := getReviews(t, ts, ""); code != http.StatusOK {
		t.Fatalf("read: %d", code)
	}
}

func TestOtherMethodsNotAllowed(t *testing.T) {
	ts := newTestServer(t, nil, server.Options{})

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/", nil)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", res.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, nil, server.Options{})

	res, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
}
