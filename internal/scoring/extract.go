package scoring

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/config"
)

// ExtractSkills returns the canonical skill names found in text, sorted.
// Matching is case-insensitive and whole-word; synonyms from the skill
// dictionary resolve to their canonical name.
func ExtractSkills(text string, dict config.SkillDictionary) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0)

	for canonical, synonyms := range dict {
		for _, synonym := range synonyms {
			re, err := regexp.Compile(`\b` + regexp.QuoteMeta(strings.ToLower(synonym)) + `\b`)
			if err != nil {
				continue
			}
			if re.MatchString(lower) {
				found = append(found, strings.ToLower(canonical))
				break
			}
		}
	}
	sort.Strings(found)
	return found
}
