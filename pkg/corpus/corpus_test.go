package corpus

import (
	"testing"
	"time"

	"github.com/hpratama/mbg-insight/models"
	dbpkg "github.com/hpratama/mbg-insight/pkg/db"
)

const (
	modelA = "roberta-id"
	modelB = "indobert"
)

func setupCorpus(t *testing.T) *dbpkg.DB {
	t.Helper()
	db, err := dbpkg.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

type seed struct {
	fingerprint string
	source      string
	topic       string
	title       string
	body        string
	published   time.Time
	labelA      models.Label
	labelB      models.Label
}

func plant(t *testing.T, db *dbpkg.DB, rows []seed) {
	t.Helper()
	for _, s := range rows {
		id, _, err := db.UpsertArticle(models.Article{
			Fingerprint: s.fingerprint,
			Source:      s.source,
			Topic:       s.topic,
			Title:       s.title,
			BodyText:    s.body,
			PublishedAt: s.published,
		})
		if err != nil {
			t.Fatalf("seed upsert failed: %v", err)
		}
		if s.labelA != "" {
			if err := db.UpsertScore(id, modelA, s.labelA, 0.9); err != nil {
				t.Fatalf("seed score failed: %v", err)
			}
		}
		if s.labelB != "" {
			if err := db.UpsertScore(id, modelB, s.labelB, 0.8); err != nil {
				t.Fatalf("seed score failed: %v", err)
			}
		}
	}
}

func day(d int) time.Time {
	return time.Date(2025, 3, d, 10, 0, 0, 0, time.UTC)
}

func TestLoadUnfiltered(t *testing.T) {
	db := setupCorpus(t)
	plant(t, db, []seed{
		{fingerprint: "f1", source: "detik", title: "MBG diperluas", body: "isi", published: day(1), labelA: models.LabelPositive},
		{fingerprint: "f2", source: "kompas", title: "Anggaran naik", body: "isi", published: day(2)},
	})

	rows, err := Load(db, Filters{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if _, ok := rows[0].Label(modelA); !ok {
		t.Error("expected first row to carry a score")
	}
	if _, ok := rows[1].Label(modelA); ok {
		t.Error("unscored article must not report a label")
	}
}

func TestLoadTitleContainsMatchesBody(t *testing.T) {
	db := setupCorpus(t)
	plant(t, db, []seed{
		{fingerprint: "f1", source: "detik", title: "Keracunan massal di sekolah", body: "isi", published: day(1)},
		{fingerprint: "f2", source: "detik", title: "Anggaran MBG", body: "dugaan keracunan pada siswa", published: day(2)},
		{fingerprint: "f3", source: "detik", title: "Dapur baru", body: "isi", published: day(3)},
	})

	rows, err := Load(db, Filters{TitleContains: "keracunan"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("expected 2 matches across title and body, got %d", len(rows))
	}
}

func TestLoadDateAndSourceFilters(t *testing.T) {
	db := setupCorpus(t)
	plant(t, db, []seed{
		{fingerprint: "f1", source: "detik", title: "a", body: "isi", published: day(1)},
		{fingerprint: "f2", source: "detik", title: "b", body: "isi", published: day(10)},
		{fingerprint: "f3", source: "kompas", title: "c", body: "isi", published: day(10)},
	})

	rows, err := Load(db, Filters{
		DateFrom: day(5),
		DateTo:   day(15),
		Sources:  []string{"detik"},
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Article.Fingerprint != "f2" {
		t.Errorf("expected only f2, got %+v", rows)
	}
}

func TestLoadSentimentFilter(t *testing.T) {
	db := setupCorpus(t)
	plant(t, db, []seed{
		{fingerprint: "f1", source: "detik", title: "a", body: "isi", published: day(1), labelA: models.LabelNegative},
		{fingerprint: "f2", source: "detik", title: "b", body: "isi", published: day(2), labelA: models.LabelPositive},
		{fingerprint: "f3", source: "detik", title: "c", body: "isi", published: day(3)},
	})

	rows, err := Load(db, Filters{Model: modelA, Sentiments: []models.Label{models.LabelNegative}})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Article.Fingerprint != "f1" {
		t.Errorf("expected only the negative article, got %+v", rows)
	}

	// A sentiment restriction without a model is ambiguous.
	if _, err := Load(db, Filters{Sentiments: []models.Label{models.LabelNegative}}); err == nil {
		t.Error("expected error for sentiment filter without model")
	}
}

func TestSummarize(t *testing.T) {
	db := setupCorpus(t)
	plant(t, db, []seed{
		{fingerprint: "f1", source: "detik", topic: "keracunan", title: "a", body: "isi", published: day(1), labelA: models.LabelNegative},
		{fingerprint: "f2", source: "detik", topic: "keracunan", title: "b", body: "isi", published: day(2), labelA: models.LabelNegative},
		{fingerprint: "f3", source: "kompas", topic: "anggaran", title: "c", body: "isi", published: day(3), labelA: models.LabelPositive},
		{fingerprint: "f4", source: "kompas", title: "d", body: "isi", published: day(4)},
	})

	rows, err := Load(db, Filters{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	s := Summarize(rows, modelA)

	if s.Articles != 4 || s.Scored != 3 {
		t.Errorf("unexpected counts: %+v", s)
	}
	if s.Labels.Negative != 2 || s.Labels.Positive != 1 {
		t.Errorf("unexpected label tally: %+v", s.Labels)
	}
	wantNeg := 2.0 / 3.0
	if s.NegativityRate != wantNeg {
		t.Errorf("negativity rate = %v, want %v", s.NegativityRate, wantNeg)
	}
	wantMood := (1.0 - 2.0) / 3.0
	if s.MoodIndex != wantMood {
		t.Errorf("mood index = %v, want %v", s.MoodIndex, wantMood)
	}
	if s.TopTopic != "keracunan" {
		t.Errorf("top topic = %q", s.TopTopic)
	}
}

func TestMoodIndexBounds(t *testing.T) {
	all := LabelCounts{Positive: 5}
	if all.MoodIndex() != 1 {
		t.Errorf("all-positive mood = %v, want 1", all.MoodIndex())
	}
	neg := LabelCounts{Negative: 3}
	if neg.MoodIndex() != -1 {
		t.Errorf("all-negative mood = %v, want -1", neg.MoodIndex())
	}
	empty := LabelCounts{}
	if empty.MoodIndex() != 0 {
		t.Errorf("empty mood = %v, want 0", empty.MoodIndex())
	}
}

func TestTrendExcludesUndatedFromBuckets(t *testing.T) {
	db := setupCorpus(t)
	plant(t, db, []seed{
		{fingerprint: "f1", source: "detik", title: "a", body: "isi", published: day(1), labelA: models.LabelPositive},
		{fingerprint: "f2", source: "detik", title: "b", body: "isi", published: day(1), labelA: models.LabelNegative},
		{fingerprint: "f3", source: "detik", title: "c", body: "isi", labelA: models.LabelNegative}, // no date
	})

	rows, err := Load(db, Filters{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	trend, err := ComputeTrend(rows, modelA, "daily")
	if err != nil {
		t.Fatalf("ComputeTrend failed: %v", err)
	}

	if trend.TotalArticles != 3 {
		t.Errorf("expected undated article in totals, got %d", trend.TotalArticles)
	}
	if trend.Undated != 1 {
		t.Errorf("expected 1 undated, got %d", trend.Undated)
	}
	if len(trend.Points) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(trend.Points))
	}
	p := trend.Points[0]
	if p.Labels.Total() != 2 {
		t.Errorf("undated article leaked into a bucket: %+v", p)
	}
	if p.MoodIndex != 0 {
		t.Errorf("bucket mood = %v, want 0", p.MoodIndex)
	}
}

func TestTrendMonthlyBuckets(t *testing.T) {
	db := setupCorpus(t)
	plant(t, db, []seed{
		{fingerprint: "f1", source: "detik", title: "a", body: "isi", published: time.Date(2025, 2, 20, 5, 0, 0, 0, time.UTC), labelA: models.LabelPositive},
		{fingerprint: "f2", source: "detik", title: "b", body: "isi", published: time.Date(2025, 3, 2, 5, 0, 0, 0, time.UTC), labelA: models.LabelPositive},
		{fingerprint: "f3", source: "detik", title: "c", body: "isi", published: time.Date(2025, 3, 28, 5, 0, 0, 0, time.UTC), labelA: models.LabelNegative},
	})

	rows, err := Load(db, Filters{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	trend, err := ComputeTrend(rows, modelA, "monthly")
	if err != nil {
		t.Fatalf("ComputeTrend failed: %v", err)
	}
	if len(trend.Points) != 2 {
		t.Fatalf("expected 2 monthly buckets, got %d", len(trend.Points))
	}
	if !trend.Points[0].Start.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected first bucket start: %v", trend.Points[0].Start)
	}
	if trend.Points[1].Labels.Total() != 2 {
		t.Errorf("expected both March articles in one bucket: %+v", trend.Points[1])
	}

	if _, err := ComputeTrend(rows, modelA, "hourly"); err == nil {
		t.Error("expected error for unknown interval")
	}
}

func TestAgreementExcludesPartialCoverage(t *testing.T) {
	db := setupCorpus(t)
	plant(t, db, []seed{
		{fingerprint: "f1", source: "detik", title: "a", body: "isi", published: day(1), labelA: models.LabelNegative, labelB: models.LabelNegative},
		{fingerprint: "f2", source: "detik", title: "b", body: "isi", published: day(2), labelA: models.LabelPositive, labelB: models.LabelNeutral},
		{fingerprint: "f3", source: "detik", title: "c", body: "isi", published: day(3), labelA: models.LabelPositive}, // only model A
		{fingerprint: "f4", source: "detik", title: "d", body: "isi", published: day(4)},                              // unscored
	})

	rows, err := Load(db, Filters{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	ag := ComputeAgreement(rows, modelA, modelB)

	if ag.DualScored != 2 {
		t.Errorf("expected 2 dually scored, got %d", ag.DualScored)
	}
	if ag.Agreed != 1 || ag.Rate != 0.5 {
		t.Errorf("unexpected agreement: %+v", ag)
	}
	if ag.Matrix[models.LabelPositive][models.LabelNeutral] != 1 {
		t.Errorf("unexpected matrix: %+v", ag.Matrix)
	}
}

func TestSourceLeaderboard(t *testing.T) {
	db := setupCorpus(t)
	plant(t, db, []seed{
		{fingerprint: "f1", source: "detik", topic: "keracunan", title: "a", body: "isi", published: day(1), labelA: models.LabelNegative},
		{fingerprint: "f2", source: "detik", topic: "keracunan", title: "b", body: "isi", published: day(2), labelA: models.LabelPositive},
		{fingerprint: "f3", source: "kompas", topic: "anggaran", title: "c", body: "isi", published: day(3), labelA: models.LabelNegative},
	})

	rows, err := Load(db, Filters{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	stats := SourceLeaderboard(rows, modelA)

	if len(stats) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(stats))
	}
	if stats[0].Source != "detik" || stats[0].Articles != 2 {
		t.Errorf("unexpected leader: %+v", stats[0])
	}
	if stats[0].NegativeRate != 0.5 {
		t.Errorf("detik negative rate = %v, want 0.5", stats[0].NegativeRate)
	}
	if stats[0].TopTopic != "keracunan" {
		t.Errorf("detik top topic = %q", stats[0].TopTopic)
	}
	if stats[1].NegativeRate != 1.0 {
		t.Errorf("kompas negative rate = %v, want 1", stats[1].NegativeRate)
	}
}

func TestKeywordsRecomputedOverFilteredSubset(t *testing.T) {
	db := setupCorpus(t)
	plant(t, db, []seed{
		{fingerprint: "f1", source: "detik", title: "Keracunan siswa", body: "dapur keracunan", published: day(1)},
		{fingerprint: "f2", source: "detik", title: "Anggaran naik", body: "anggaran dapur anggaran", published: day(2)},
	})

	all, err := Load(db, Filters{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	kw := Keywords(all, 1)
	if len(kw) != 1 || kw[0].Word != "anggaran" {
		t.Errorf("expected corpus-wide top keyword anggaran, got %v", kw)
	}

	filtered, err := Load(db, Filters{TitleContains: "keracunan"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	kw = Keywords(filtered, 1)
	if len(kw) != 1 || kw[0].Word != "keracunan" {
		t.Errorf("expected filtered top keyword keracunan, got %v", kw)
	}
}

func TestModelNames(t *testing.T) {
	db := setupCorpus(t)
	plant(t, db, []seed{
		{fingerprint: "f1", source: "detik", title: "a", body: "isi", published: day(1), labelA: models.LabelPositive, labelB: models.LabelNeutral},
	})

	rows, err := Load(db, Filters{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	names := ModelNames(rows)
	if len(names) != 2 || names[0] != modelB || names[1] != modelA {
		t.Errorf("unexpected model names: %v", names)
	}
}
