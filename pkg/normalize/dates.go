package normalize

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Indonesian month and day names rewritten to English so the standard
// layouts and dateparse can handle them. Long forms first so "Agustus"
// does not partially match "Agu".
var indonesianDateReplacer = strings.NewReplacer(
	"Januari", "January", "Februari", "February", "Maret", "March",
	"April", "April", "Agustus", "August", "September", "September",
	"Oktober", "October", "November", "November", "Desember", "December",
	"Mei", "May", "Agu", "Aug", "Okt", "Oct", "Des", "Dec",
	"Senin", "", "Selasa", "", "Rabu", "", "Kamis", "",
	"Jumat", "", "Jum'at", "", "Sabtu", "", "Minggu", "",
	"WIB", "+0700", "WITA", "+0800", "WIT", "+0900",
	"Pukul", "", "pukul", "",
)

// ParseDate parses a publication timestamp the way the outlets print them:
// per-source layouts first, then a permissive fallback. The result is UTC.
// An unparseable date returns the zero time; callers store it as NULL
// rather than failing the article.
func ParseDate(raw string, layouts []string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}

	normalized := strings.TrimSpace(indonesianDateReplacer.Replace(raw))
	normalized = strings.TrimPrefix(normalized, ",")
	normalized = strings.TrimSpace(normalized)

	for _, layout := range layouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t.UTC()
		}
	}

	if t, err := dateparse.ParseAny(normalized); err == nil {
		return t.UTC()
	}
	return time.Time{}
}
