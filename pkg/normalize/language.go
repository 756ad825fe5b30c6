package normalize

import (
	"github.com/pemistahl/lingua-go"
)

// languageDetector tags article text with an ISO 639-1 code. The candidate
// set is limited to the languages that actually show up in Indonesian news
// coverage; a smaller set keeps detection fast and accurate.
type languageDetector struct {
	detector lingua.LanguageDetector
}

func newLanguageDetector() *languageDetector {
	d := lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.Indonesian,
			lingua.Malay,
			lingua.English,
		).
		Build()
	return &languageDetector{detector: d}
}

// Detect returns a lowercase ISO 639-1 code, or "" when the text is too
// short or ambiguous to call.
func (ld *languageDetector) Detect(text string) string {
	if len(text) < 20 {
		return ""
	}
	lang, ok := ld.detector.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	switch lang {
	case lingua.Indonesian:
		return "id"
	case lingua.Malay:
		return "ms"
	case lingua.English:
		return "en"
	}
	return ""
}
