package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/hpratama/mbg-insight/models"
	"github.com/hpratama/mbg-insight/pkg/corpus"
)

func TestWriteCSV(t *testing.T) {
	published := time.Date(2025, 3, 10, 7, 30, 0, 0, time.UTC)
	ingested := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	rows := []corpus.Row{
		{
			Article: models.Article{
				ID:          1,
				Fingerprint: "fp-1",
				Source:      "detik",
				URL:         "https://news.detik.com/berita/d-100/mbg",
				Title:       "MBG Diperluas, kata \"pemerintah\"",
				Topic:       "perluasan program",
				Language:    "id",
				PublishedAt: published,
				IngestedAt:  ingested,
			},
			Scores: map[string]models.SentimentScore{
				"indobert":   {Label: models.LabelPositive, Confidence: 0.9123},
				"roberta-id": {Label: models.LabelNeutral, Confidence: 0.55},
			},
		},
		{
			Article: models.Article{
				ID:          2,
				Fingerprint: "fp-2",
				Source:      "kompas",
				Title:       "Anggaran",
				IngestedAt:  ingested,
			},
			Scores: map[string]models.SentimentScore{
				"roberta-id": {Label: models.LabelNegative, Confidence: 0.8},
			},
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}

	header := records[0]
	wantHeader := []string{
		"article_id", "fingerprint", "source", "url", "title",
		"author", "topic", "language", "published_at", "ingested_at",
		"indobert_label", "indobert_confidence",
		"roberta-id_label", "roberta-id_confidence",
	}
	if len(header) != len(wantHeader) {
		t.Fatalf("header has %d columns, want %d", len(header), len(wantHeader))
	}
	for i, col := range wantHeader {
		if header[i] != col {
			t.Errorf("header[%d] = %q, want %q", i, header[i], col)
		}
	}

	first := records[1]
	if first[0] != "1" || first[2] != "detik" {
		t.Errorf("unexpected first row: %v", first)
	}
	if first[8] != "2025-03-10T07:30:00Z" {
		t.Errorf("unexpected published_at: %q", first[8])
	}
	if first[10] != "POSITIVE" || first[11] != "0.9123" {
		t.Errorf("unexpected indobert columns: %v", first[10:12])
	}

	second := records[2]
	if second[8] != "" {
		t.Errorf("missing date must export empty, got %q", second[8])
	}
	if second[10] != "" || second[11] != "" {
		t.Errorf("unscored model must export empty cells, got %v", second[10:12])
	}
	if second[12] != "NEGATIVE" {
		t.Errorf("unexpected roberta-id label: %q", second[12])
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected header only, got %d records", len(records))
	}
}
