package mapreduce

import (
	"sort"
)

// Keyword is one aggregated keyword with its corpus-wide count.
type Keyword struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// isValidKeyword filters obviously broken tokens (unmatched delimiters,
// trailing separators, unmatched quotes) that survive text cleaning.
func isValidKeyword(word string) bool {
	if word == "" {
		return false
	}
	last := word[len(word)-1]
	if last == ':' || last == '=' || last == '-' {
		return false
	}

	opened, closed := 0, 0
	quotes := 0
	for i := 0; i < len(word); i++ {
		switch word[i] {
		case '(', '[', '{':
			opened++
		case ')', ']', '}':
			closed++
		case '"', '\'':
			quotes++
		}
	}
	if opened != closed {
		return false
	}
	return quotes%2 == 0
}

// TopKeywords returns the N most frequent keywords from aggregated word
// counts, ordered by count descending with alphabetical tie-break.
func TopKeywords(wordCounts map[string]int, n int) []Keyword {
	var ss []Keyword
	for k, v := range wordCounts {
		if isValidKeyword(k) {
			ss = append(ss, Keyword{k, v})
		}
	}

	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Count != ss[j].Count {
			return ss[i].Count > ss[j].Count
		}
		return ss[i].Word < ss[j].Word
	})

	if n < 0 {
		n = 0
	}
	if len(ss) > n {
		ss = ss[:n]
	}
	return ss
}
