// Package analyzer scores resume text against a job description.
//
// The scorer is intentionally simple: a fixed skill vocabulary, keyword
// overlap and templated recommendations. It produces the right result
// shape for the API; swapping in a real scoring engine means replacing
// this package behind the same functions.
package analyzer

import (
	"fmt"
	"sort"
	"strings"
)

// Result is what one scoring run produces.
type Result struct {
	Score           int
	ExtractedSkills []string
	MatchedSkills   []string
	MissingKeywords []string
	Recommendations string
}

var skillVocabulary = []string{
	// languages
	"python", "java", "javascript", "typescript", "c++", "c#", "php", "ruby",
	"go", "rust", "swift", "kotlin", "scala", "bash",
	// web
	"html", "css", "react", "angular", "vue", "node.js", "express", "django",
	"flask", "spring", "rails", "next.js",
	// data stores
	"mysql", "postgresql", "mongodb", "redis", "sqlite", "elasticsearch",
	// cloud and ops
	"aws", "azure", "gcp", "docker", "kubernetes", "jenkins", "git",
	"terraform", "ansible", "linux", "ci/cd",
	// data and ml
	"machine learning", "deep learning", "tensorflow", "pytorch", "pandas",
	"numpy", "data analysis", "tableau",
	// mobile
	"android", "ios", "react native", "flutter",
	// practices
	"agile", "scrum", "rest api", "graphql", "microservices",
}

// ExtractSkills returns the vocabulary entries present in text, sorted.
func ExtractSkills(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, skill := range skillVocabulary {
		if strings.Contains(lower, skill) {
			found = append(found, skill)
		}
	}
	sort.Strings(found)
	return found
}

// Score compares resume text against a job description. The score is the
// share of the job's skills found in the resume, 0-100.
func Score(resumeText, jobText string) Result {
	resumeSkills := ExtractSkills(resumeText)
	jobSkills := ExtractSkills(jobText)

	resumeSet := make(map[string]bool, len(resumeSkills))
	for _, s := range resumeSkills {
		resumeSet[s] = true
	}

	matched := []string{}
	missing := []string{}
	for _, s := range jobSkills {
		if resumeSet[s] {
			matched = append(matched, s)
		} else {
			missing = append(missing, s)
		}
	}

	score := 0
	if len(jobSkills) > 0 {
		score = len(matched) * 100 / len(jobSkills)
	}
	if score > 100 {
		score = 100
	}

	return Result{
		Score:           score,
		ExtractedSkills: resumeSkills,
		MatchedSkills:   matched,
		MissingKeywords: missing,
		Recommendations: recommendations(score, missing),
	}
}

func recommendations(score int, missing []string) string {
	var lines []string
	switch {
	case score >= 80:
		lines = append(lines, "Strong match. Your resume covers most of what this role asks for.")
	case score >= 50:
		lines = append(lines, "Decent match, but there is room to tailor your resume to this role.")
	default:
		lines = append(lines, "Low match. Consider reworking your resume for this role before applying.")
	}
	if len(missing) > 0 {
		shown := missing
		if len(shown) > 5 {
			shown = shown[:5]
		}
		lines = append(lines, fmt.Sprintf("Add experience with: %s.", strings.Join(shown, ", ")))
	}
	return strings.Join(lines, "\n")
}
