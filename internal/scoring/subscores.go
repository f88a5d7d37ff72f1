package scoring

import (
	"math"
	"regexp"
	"strings"
)

var (
	projectMentionRe = regexp.MustCompile(`\bproject\b`)
	emailRe          = regexp.MustCompile(`[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}`)
	phoneRe          = regexp.MustCompile(`\b\d{10}\b|\+\d{1,3}[\s-]\d{5,}`)
)

// SubScore is one scoring component on both scales the API exposes.
type SubScore struct {
	Raw     float64
	Percent int
}

func newSubScore(raw float64) SubScore {
	raw = round4(raw)
	return SubScore{Raw: raw, Percent: int(raw * 100)}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// ProjectScore rates project depth from resume text on a 0.0 to 1.0 scale.
// Mentions of "project" contribute up to 0.30 (0.10 each), action verbs up
// to 0.30 (0.05 each), and technical complexity keywords up to 0.40
// (0.05 each).
func ProjectScore(resumeText string) SubScore {
	text := strings.ToLower(resumeText)

	mentions := len(projectMentionRe.FindAllString(text, -1))
	actionHits := 0
	for _, v := range actionVerbs {
		if strings.Contains(text, v) {
			actionHits++
		}
	}
	complexityHits := 0
	for _, k := range complexityKeywords {
		if strings.Contains(text, k) {
			complexityHits++
		}
	}

	total := math.Min(float64(mentions)*0.10, 0.30) +
		math.Min(float64(actionHits)*0.05, 0.30) +
		math.Min(float64(complexityHits)*0.05, 0.40)
	return newSubScore(math.Min(total, 1.0))
}

// ATSScore rates machine-readability on a 0.0 to 1.0 scale. Section
// headings contribute up to 0.60 (0.15 each), a detectable email address
// adds 0.20, and a phone number adds 0.20.
func ATSScore(resumeText string) SubScore {
	text := strings.ToLower(resumeText)

	headingHits := 0
	for _, h := range sectionHeadings {
		if strings.Contains(text, h) {
			headingHits++
		}
	}
	total := math.Min(float64(headingHits)*0.15, 0.60)

	if emailRe.MatchString(text) {
		total += 0.20
	}
	if phoneRe.MatchString(text) {
		total += 0.20
	}
	return newSubScore(math.Min(total, 1.0))
}

// StructureScore rates layout completeness: each expected section found by
// the parser adds an equal share.
func StructureScore(sectionsDetected []string) SubScore {
	detected := make(map[string]bool, len(sectionsDetected))
	for _, s := range sectionsDetected {
		detected[strings.ToLower(strings.TrimSpace(s))] = true
	}
	hits := 0
	for _, s := range expectedSections {
		if detected[s] {
			hits++
		}
	}
	return newSubScore(float64(hits) / float64(len(expectedSections)))
}
