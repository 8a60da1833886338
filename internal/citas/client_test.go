package citas

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestBuildURL(t *testing.T) {
	c := NewClient("", "", "", "")
	raw := c.BuildURL("2025-10-01", "2025-10-31")

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("BuildURL produced invalid URL: %v", err)
	}
	if !strings.HasPrefix(raw, DefaultBaseURL+"?") {
		t.Errorf("URL should target the widget feed: %s", raw)
	}

	q := u.Query()
	want := map[string]string{
		"type":           "default",
		"lang":           "es",
		"version":        "5",
		"selectedPeople": "1",
		"publickey":      DefaultPublicKey,
		"services[]":     DefaultServiceID,
		"agendas[]":      DefaultAgendaID,
		"start":          "2025-10-01",
		"end":            "2025-10-31",
		"srvsrc":         "https://citaconsular.es",
	}
	for key, value := range want {
		if got := q.Get(key); got != value {
			t.Errorf("param %s = %q, want %q", key, got, value)
		}
	}

	if cb := q.Get("callback"); !strings.HasPrefix(cb, "jQuery") {
		t.Errorf("callback = %q, want jQuery-style identifier", cb)
	}
	if q.Get("_") == "" {
		t.Error("cache-busting timestamp missing")
	}
	if !strings.Contains(q.Get("src"), DefaultPublicKey) {
		t.Errorf("src should embed the public key: %q", q.Get("src"))
	}
}

func TestBuildURL_UniqueCallbacks(t *testing.T) {
	c := NewClient("", "", "", "")
	a, _ := url.Parse(c.BuildURL("2025-10-01", "2025-10-31"))
	b, _ := url.Parse(c.BuildURL("2025-10-01", "2025-10-31"))
	if a.Query().Get("callback") == b.Query().Get("callback") {
		t.Error("callback identifiers should differ between requests")
	}
}

func TestFetchAvailability(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.Header.Get("User-Agent") == "" {
			t.Error("request should carry a User-Agent")
		}
		w.Write([]byte(r.URL.Query().Get("callback") + `({"2025-10-05":[{"time":"09:00","freeSlots":3}]});`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/onlinebookings/datetime/", "", "", "")
	summary, err := c.FetchAvailability("2025-10-01", "2025-10-31")
	if err != nil {
		t.Fatalf("FetchAvailability() error = %v", err)
	}
	if gotPath != "/onlinebookings/datetime/" {
		t.Errorf("request path = %q", gotPath)
	}
	if summary.TotalAvailableSlots != 3 || summary.TotalAvailableDates != 1 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestFetchAvailability_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "", "")
	if _, err := c.FetchAvailability("2025-10-01", "2025-10-31"); err == nil {
		t.Fatal("expected error on non-2xx status")
	}
}

func TestFetchAvailability_MalformedFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`foo({broken`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "", "")
	_, err := c.FetchAvailability("2025-10-01", "2025-10-31")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
}
