package mapreduce

import (
	"reflect"
	"testing"

	"github.com/hpratama/mbg-insight/pkg/analytics"
)

func TestMapReduce(t *testing.T) {
	a := &analytics.Analytics{}

	intermediate := []map[string]int{
		Map("keracunan siswa keracunan", a),
		Map("anggaran siswa", a),
	}
	got := Reduce(intermediate)
	want := map[string]int{"keracunan": 2, "siswa": 2, "anggaran": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTopKeywords(t *testing.T) {
	counts := map[string]int{
		"keracunan": 5,
		"anggaran":  3,
		"dapur":     3,
		"siswa":     1,
	}

	got := TopKeywords(counts, 3)
	want := []Keyword{
		{"keracunan", 5},
		{"anggaran", 3},
		{"dapur", 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTopKeywordsFiltersMalformed(t *testing.T) {
	counts := map[string]int{
		"baca:":     9,
		"(siaran":   8,
		`kata"`:     7,
		"keracunan": 1,
	}

	got := TopKeywords(counts, 10)
	if len(got) != 1 || got[0].Word != "keracunan" {
		t.Errorf("expected only valid keyword to survive, got %v", got)
	}
}

func TestTopKeywordsEmpty(t *testing.T) {
	if got := TopKeywords(nil, 5); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}
