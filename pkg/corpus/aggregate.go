package corpus

import (
	"fmt"
	"sort"
	"time"

	"github.com/hpratama/mbg-insight/models"
	"github.com/hpratama/mbg-insight/pkg/analytics"
	"github.com/hpratama/mbg-insight/pkg/mapreduce"
)

// LabelCounts tallies canonical labels.
type LabelCounts struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

func (c *LabelCounts) add(l models.Label) {
	switch l {
	case models.LabelPositive:
		c.Positive++
	case models.LabelNeutral:
		c.Neutral++
	case models.LabelNegative:
		c.Negative++
	}
}

func (c LabelCounts) Total() int {
	return c.Positive + c.Neutral + c.Negative
}

// MoodIndex is (positive - negative) / total, in [-1, 1]. An empty tally
// yields 0, not NaN.
func (c LabelCounts) MoodIndex() float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	return float64(c.Positive-c.Negative) / float64(total)
}

// Summary is the headline view of a filtered corpus slice, computed from
// one model's labels.
type Summary struct {
	Articles       int         `json:"articles"`
	Scored         int         `json:"scored"`
	Labels         LabelCounts `json:"labels"`
	NegativityRate float64     `json:"negativity_rate"`
	MoodIndex      float64     `json:"mood_index"`
	TopTopic       string      `json:"top_topic,omitempty"`
	TopSource      string      `json:"top_source,omitempty"`
}

// Summarize computes the summary over rows using the given model's labels.
// Unscored articles count toward Articles but not toward any label tally.
func Summarize(rows []Row, model string) Summary {
	s := Summary{Articles: len(rows)}

	topicCounts := make(map[string]int)
	sourceCounts := make(map[string]int)
	for _, r := range rows {
		if r.Article.Topic != "" {
			topicCounts[r.Article.Topic]++
		}
		sourceCounts[r.Article.Source]++
		if label, ok := r.Label(model); ok {
			s.Scored++
			s.Labels.add(label)
		}
	}

	if s.Scored > 0 {
		s.NegativityRate = float64(s.Labels.Negative) / float64(s.Scored)
	}
	s.MoodIndex = s.Labels.MoodIndex()
	s.TopTopic = maxKey(topicCounts)
	s.TopSource = maxKey(sourceCounts)
	return s
}

// TrendPoint is one time bucket of the sentiment trend.
type TrendPoint struct {
	Start     time.Time   `json:"start"`
	Labels    LabelCounts `json:"labels"`
	MoodIndex float64     `json:"mood_index"`
}

// Trend is the bucketed sentiment timeline. Articles without a publication
// date appear in TotalArticles and Undated but in no bucket.
type Trend struct {
	Interval      string       `json:"interval"`
	Points        []TrendPoint `json:"points"`
	TotalArticles int          `json:"total_articles"`
	Undated       int          `json:"undated"`
}

// ComputeTrend buckets rows by publication time (UTC) at the given
// interval: "daily", "weekly" or "monthly".
func ComputeTrend(rows []Row, model, interval string) (Trend, error) {
	switch interval {
	case "daily", "weekly", "monthly":
	default:
		return Trend{}, fmt.Errorf("unknown trend interval %q", interval)
	}

	trend := Trend{Interval: interval, TotalArticles: len(rows)}
	buckets := make(map[time.Time]*LabelCounts)
	for _, r := range rows {
		if r.Article.PublishedAt.IsZero() {
			trend.Undated++
			continue
		}
		start := bucketStart(r.Article.PublishedAt.UTC(), interval)
		if _, ok := buckets[start]; !ok {
			buckets[start] = &LabelCounts{}
		}
		if label, ok := r.Label(model); ok {
			buckets[start].add(label)
		}
	}

	starts := make([]time.Time, 0, len(buckets))
	for start := range buckets {
		starts = append(starts, start)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })

	for _, start := range starts {
		c := *buckets[start]
		trend.Points = append(trend.Points, TrendPoint{
			Start:     start,
			Labels:    c,
			MoodIndex: c.MoodIndex(),
		})
	}
	return trend, nil
}

func bucketStart(t time.Time, interval string) time.Time {
	switch interval {
	case "weekly":
		// back to Monday
		offset := (int(t.Weekday()) + 6) % 7
		t = t.AddDate(0, 0, -offset)
	case "monthly":
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Agreement compares two models over the articles both have scored.
// Articles scored by only one model stay out of the denominator.
type Agreement struct {
	DualScored int                                   `json:"dual_scored"`
	Agreed     int                                   `json:"agreed"`
	Rate       float64                               `json:"rate"`
	Matrix     map[models.Label]map[models.Label]int `json:"matrix"`
}

// ComputeAgreement builds the agreement rate and the full crosstab of
// modelA's label (rows) against modelB's (columns).
func ComputeAgreement(rows []Row, modelA, modelB string) Agreement {
	ag := Agreement{Matrix: make(map[models.Label]map[models.Label]int)}
	for _, l := range []models.Label{models.LabelPositive, models.LabelNeutral, models.LabelNegative} {
		ag.Matrix[l] = make(map[models.Label]int)
	}

	for _, r := range rows {
		la, okA := r.Label(modelA)
		lb, okB := r.Label(modelB)
		if !okA || !okB {
			continue
		}
		ag.DualScored++
		if la == lb {
			ag.Agreed++
		}
		if _, ok := ag.Matrix[la]; !ok {
			ag.Matrix[la] = make(map[models.Label]int)
		}
		ag.Matrix[la][lb]++
	}

	if ag.DualScored > 0 {
		ag.Rate = float64(ag.Agreed) / float64(ag.DualScored)
	}
	return ag
}

// TopicCounts tallies articles per topic. Untopiced articles are skipped.
func TopicCounts(rows []Row) map[string]int {
	counts := make(map[string]int)
	for _, r := range rows {
		if r.Article.Topic != "" {
			counts[r.Article.Topic]++
		}
	}
	return counts
}

// SourceStat is one outlet's row in the leaderboard.
type SourceStat struct {
	Source       string  `json:"source"`
	Articles     int     `json:"articles"`
	Negative     int     `json:"negative"`
	NegativeRate float64 `json:"negative_rate"`
	TopTopic     string  `json:"top_topic,omitempty"`
}

// SourceLeaderboard ranks outlets by coverage volume, with the negative
// share and dominant topic per outlet.
func SourceLeaderboard(rows []Row, model string) []SourceStat {
	type acc struct {
		articles int
		scored   int
		negative int
		topics   map[string]int
	}
	bySource := make(map[string]*acc)
	for _, r := range rows {
		a, ok := bySource[r.Article.Source]
		if !ok {
			a = &acc{topics: make(map[string]int)}
			bySource[r.Article.Source] = a
		}
		a.articles++
		if r.Article.Topic != "" {
			a.topics[r.Article.Topic]++
		}
		if label, ok := r.Label(model); ok {
			a.scored++
			if label == models.LabelNegative {
				a.negative++
			}
		}
	}

	stats := make([]SourceStat, 0, len(bySource))
	for source, a := range bySource {
		s := SourceStat{
			Source:   source,
			Articles: a.articles,
			Negative: a.negative,
			TopTopic: maxKey(a.topics),
		}
		if a.scored > 0 {
			s.NegativeRate = float64(a.negative) / float64(a.scored)
		}
		stats = append(stats, s)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Articles != stats[j].Articles {
			return stats[i].Articles > stats[j].Articles
		}
		return stats[i].Source < stats[j].Source
	})
	return stats
}

// Keywords recomputes the top-N word frequencies over exactly the given
// rows, so a filtered query yields keywords of the filtered subset only.
func Keywords(rows []Row, n int) []mapreduce.Keyword {
	a := &analytics.Analytics{}
	intermediate := make([]map[string]int, 0, len(rows))
	for _, r := range rows {
		intermediate = append(intermediate, mapreduce.Map(r.Article.Title+" "+r.Article.BodyText, a))
	}
	return mapreduce.TopKeywords(mapreduce.Reduce(intermediate), n)
}

// maxKey returns the key with the highest count, smallest key on ties,
// "" for an empty map.
func maxKey(counts map[string]int) string {
	best, bestCount := "", 0
	for k, v := range counts {
		if v > bestCount || (v == bestCount && best != "" && k < best) {
			best, bestCount = k, v
		}
	}
	return best
}
