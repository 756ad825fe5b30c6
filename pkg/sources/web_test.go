package sources

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/hpratama/mbg-insight/models"
)

const listHTML = `<html><body>
<div class="list">
  <article><a href="/berita/d-100/mbg-diperluas">MBG Diperluas</a></article>
  <article><a href="/berita/d-101/keracunan-siswa">Keracunan Siswa</a></article>
  <article><a href="/foto/galeri-mbg">Galeri Foto</a></article>
  <article><a href="#comments">Komentar</a></article>
</div>
</body></html>`

func detailHTML(title, body, date string) string {
	return fmt.Sprintf(`<html><head>
<meta property="article:published_time" content="%s">
</head><body>
<h1 class="judul">%s</h1>
<div class="isi"><p>%s</p><p>Paragraf kedua.</p></div>
</body></html>`, date, title, body)
}

func testAdapter(t *testing.T, srv *httptest.Server, mutate func(*models.SourceConfig)) *WebAdapter {
	t.Helper()
	cfg := models.SourceConfig{
		Name:          "detik",
		ListURL:       srv.URL + "/list",
		LinkSelector:  "div.list article a",
		URLPattern:    `/berita/`,
		TitleSelector: "h1.judul",
		BodySelector:  "div.isi p",
	}
	if mutate != nil {
		mutate(&cfg)
	}
	a, err := NewWebAdapter(cfg, srv.Client(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("NewWebAdapter failed: %v", err)
	}
	return a
}

func newTestServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/list", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, listHTML)
	})
	mux.HandleFunc("/berita/d-100/mbg-diperluas", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, detailHTML("MBG Diperluas ke 10 Provinsi", "Pemerintah memperluas program.", "2025-03-10T14:30:00+07:00"))
	})
	mux.HandleFunc("/berita/d-101/keracunan-siswa", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, detailHTML("Keracunan di Sekolah", "Puluhan siswa dirawat.", "2025-03-11T09:00:00+07:00"))
	})
	return httptest.NewServer(mux)
}

func TestFetchLatest(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	a := testAdapter(t, srv, nil)
	articles, err := a.FetchLatest(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("FetchLatest failed: %v", err)
	}

	if len(articles) != 2 {
		t.Fatalf("expected 2 articles (pattern filters the gallery), got %d", len(articles))
	}
	first := articles[0]
	if first.SourceID != "detik" {
		t.Errorf("unexpected source: %q", first.SourceID)
	}
	if first.Title != "MBG Diperluas ke 10 Provinsi" {
		t.Errorf("unexpected title: %q", first.Title)
	}
	if !strings.Contains(first.RawText, "Pemerintah memperluas program.") ||
		!strings.Contains(first.RawText, "Paragraf kedua.") {
		t.Errorf("unexpected body: %q", first.RawText)
	}
	if first.PublishedAtRaw != "2025-03-10T14:30:00+07:00" {
		t.Errorf("unexpected date: %q", first.PublishedAtRaw)
	}
	if !strings.HasPrefix(first.URL, srv.URL) {
		t.Errorf("expected absolute URL, got %q", first.URL)
	}
}

func TestFetchLatestSkipsBrokenDetailPages(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/list", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, listHTML)
	})
	mux.HandleFunc("/berita/d-100/mbg-diperluas", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})
	mux.HandleFunc("/berita/d-101/keracunan-siswa", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, detailHTML("Keracunan di Sekolah", "Puluhan siswa dirawat.", "2025-03-11T09:00:00+07:00"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	a := testAdapter(t, srv, nil)
	articles, err := a.FetchLatest(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("FetchLatest failed: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected the broken page to be skipped, got %d articles", len(articles))
	}
	if articles[0].Title != "Keracunan di Sekolah" {
		t.Errorf("unexpected survivor: %q", articles[0].Title)
	}
}

func TestFetchLatestListFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := testAdapter(t, srv, nil)
	if _, err := a.FetchLatest(context.Background(), time.Time{}); err == nil {
		t.Error("expected error when the first list page fails")
	}
}

func TestPageURL(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	a := testAdapter(t, srv, func(cfg *models.SourceConfig) {
		cfg.ListURL = "https://example.com/indeks?page=%d"
		cfg.Pages = 3
	})

	if got := a.pageURL(1); got != "https://example.com/indeks?page=1" {
		t.Errorf("page 1 = %q", got)
	}
	if got := a.pageURL(2); got != "https://example.com/indeks?page=2" {
		t.Errorf("page 2 = %q", got)
	}
}

func TestNewWebAdapterValidation(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	if _, err := NewWebAdapter(models.SourceConfig{}, nil, logger); err == nil {
		t.Error("expected error for unnamed source")
	}
	if _, err := NewWebAdapter(models.SourceConfig{Name: "x", ListURL: "http://x", LinkSelector: "a", URLPattern: "["}, nil, logger); err == nil {
		t.Error("expected error for invalid url_pattern")
	}
}

func TestResolveLink(t *testing.T) {
	base, _ := url.Parse("https://news.detik.com/indeks")

	tests := []struct {
		href string
		want string
	}{
		{"/berita/d-1/x", "https://news.detik.com/berita/d-1/x"},
		{"https://other.com/a", "https://other.com/a"},
		{"#comments", ""},
		{"javascript:void(0)", ""},
		{"mailto:redaksi@detik.com", ""},
	}
	for _, tt := range tests {
		if got := resolveLink(base, tt.href); got != tt.want {
			t.Errorf("resolveLink(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}
