package analytics

import (
	"reflect"
	"testing"
)

func TestIsStopword(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"yang", true},
		{"YANG", true},
		{"dengan", true},
		{"mbg", true},
		{"gratis", true},
		{"keracunan", false},
		{"anggaran", false},
		{"dapur", false},
	}
	for _, tt := range tests {
		if got := IsStopword(tt.word); got != tt.want {
			t.Errorf("IsStopword(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestWordFrequency(t *testing.T) {
	a := &Analytics{}

	freq := a.WordFrequency("Anggaran MBG naik, anggaran dapur juga naik.")
	want := map[string]int{"anggaran": 2, "naik": 2, "dapur": 1}
	if !reflect.DeepEqual(freq, want) {
		t.Errorf("got %v, want %v", freq, want)
	}
}

func TestWordFrequencyStripsPunctuation(t *testing.T) {
	a := &Analytics{}

	freq := a.WordFrequency(`"Keracunan," kata dinas. (Keracunan massal)`)
	if freq["keracunan"] != 2 {
		t.Errorf("expected punctuation-stripped count 2, got %d", freq["keracunan"])
	}
	if freq["dinas"] != 1 {
		t.Errorf("expected dinas counted once, got %d", freq["dinas"])
	}
}

func TestTopNWords(t *testing.T) {
	a := &Analytics{}

	text := "siswa siswa siswa keracunan keracunan anggaran"
	got := a.TopNWords(text, 2)
	want := []string{"siswa", "keracunan"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	// n larger than vocabulary returns everything.
	got = a.TopNWords(text, 10)
	if len(got) != 3 {
		t.Errorf("expected 3 words, got %v", got)
	}
}
