package analyzer

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractSkills(t *testing.T) {
	got := ExtractSkills("Experienced with Python and React, some Docker too")
	want := []string{"docker", "python", "react"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExtractSkills = %v, want %v", got, want)
	}
	if skills := ExtractSkills("nothing relevant here"); len(skills) != 0 {
		t.Fatalf("expected no skills, got %v", skills)
	}
}

func TestScore(t *testing.T) {
	res := Score(
		"Experienced with python and react",
		"Looking for python, react and docker",
	)
	if res.Score != 66 {
		t.Fatalf("Score = %d, want 66", res.Score)
	}
	if !reflect.DeepEqual(res.MatchedSkills, []string{"python", "react"}) {
		t.Fatalf("MatchedSkills = %v", res.MatchedSkills)
	}
	if !reflect.DeepEqual(res.MissingKeywords, []string{"docker"}) {
		t.Fatalf("MissingKeywords = %v", res.MissingKeywords)
	}
	if !strings.Contains(res.Recommendations, "docker") {
		t.Fatalf("Recommendations should name the missing skill: %q", res.Recommendations)
	}
}

func TestScoreWithoutJobSkills(t *testing.T) {
	res := Score("python everywhere", "we need a strong communicator")
	if res.Score != 0 {
		t.Fatalf("Score = %d, want 0", res.Score)
	}
	if len(res.MatchedSkills) != 0 || len(res.MissingKeywords) != 0 {
		t.Fatalf("unexpected skills: %+v", res)
	}
}

func TestRecommendationTiers(t *testing.T) {
	full := Score("python", "python")
	if full.Score != 100 || !strings.Contains(full.Recommendations, "Strong match") {
		t.Fatalf("full match: %d %q", full.Score, full.Recommendations)
	}

	low := Score("nothing", "python, react and docker please")
	if low.Score != 0 || !strings.Contains(low.Recommendations, "Low match") {
		t.Fatalf("low match: %d %q", low.Score, low.Recommendations)
	}
	if !strings.Contains(low.Recommendations, "Add experience with:") {
		t.Fatalf("missing skills line absent: %q", low.Recommendations)
	}
}
