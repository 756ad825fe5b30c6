package corpus

import (
	"fmt"
	"strings"
	"time"

	"github.com/hpratama/mbg-insight/models"
)

// Filters restricts a corpus query. The zero value matches everything;
// every set field adds an AND condition.
type Filters struct {
	DateFrom time.Time
	DateTo   time.Time
	Sources  []string
	Topics   []string
	// Sentiments restricts by the label assigned by Model.
	Sentiments []models.Label
	Model      string
	// TitleContains matches title or body, case-insensitive.
	TitleContains string
}

// FilterResult holds the generated WHERE clause and its prepared-statement
// args. WhereClause is always a valid expression ("1=1" when unfiltered).
type FilterResult struct {
	WhereClause string
	Args        []interface{}
}

// BuildWhere renders the filters as SQL against the aliased articles table
// (alias "a") and, when a sentiment restriction is present, the score join
// alias "fs".
func (f Filters) BuildWhere() (*FilterResult, error) {
	var parts []string
	var args []interface{}

	if !f.DateFrom.IsZero() {
		parts = append(parts, "a.published_at >= ?")
		args = append(args, f.DateFrom.UTC())
	}
	if !f.DateTo.IsZero() {
		parts = append(parts, "a.published_at < ?")
		args = append(args, f.DateTo.UTC())
	}
	if len(f.Sources) > 0 {
		parts = append(parts, "a.source IN ("+placeholders(len(f.Sources))+")")
		for _, s := range f.Sources {
			args = append(args, s)
		}
	}
	if len(f.Topics) > 0 {
		parts = append(parts, "a.topic IN ("+placeholders(len(f.Topics))+")")
		for _, t := range f.Topics {
			args = append(args, t)
		}
	}
	if len(f.Sentiments) > 0 {
		if f.Model == "" {
			return nil, fmt.Errorf("sentiment filter requires a model name")
		}
		for _, l := range f.Sentiments {
			if !models.ValidLabel(l) {
				return nil, fmt.Errorf("invalid sentiment label %q", l)
			}
		}
		parts = append(parts, "fs.label IN ("+placeholders(len(f.Sentiments))+")")
		for _, l := range f.Sentiments {
			args = append(args, string(l))
		}
	}
	if f.TitleContains != "" {
		parts = append(parts, "(LOWER(a.title) LIKE ? OR LOWER(a.body_text) LIKE ?)")
		needle := "%" + strings.ToLower(f.TitleContains) + "%"
		args = append(args, needle, needle)
	}

	if len(parts) == 0 {
		return &FilterResult{WhereClause: "1=1", Args: []interface{}{}}, nil
	}
	return &FilterResult{
		WhereClause: strings.Join(parts, " AND "),
		Args:        args,
	}, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
