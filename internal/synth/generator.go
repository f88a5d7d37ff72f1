package synth

import (
	"math/rand"
	"sort"

	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/scoring"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/types"
)

// DataType tags every generated record.
const DataType = "synthetic_v2"

// Probability bounds for tiered skill sampling. The ranges are wide on
// purpose: a corpus of clean resumes teaches the classifier nothing.
const (
	coreProbLo, coreProbHi             = 0.70, 0.85
	optionalProbLo, optionalProbHi     = 0.40, 0.70
	peripheralProbLo, peripheralProbHi = 0.20, 0.35
)

// Controlled-variance rates.
const (
	forceMissRate  = 0.10
	labelNoiseRate = 0.05
	donorCoreRate  = 0.10
)

// Generator produces synthetic resume records. One seeded RNG drives every
// random draw, so a seed fully determines the dataset.
type Generator struct {
	scorer *scoring.Scorer
	rng    *rand.Rand
}

// NewGenerator builds a Generator scoring with the given deterministic
// scorer and seed.
func NewGenerator(scorer *scoring.Scorer, seed int64) *Generator {
	return &Generator{scorer: scorer, rng: rand.New(rand.NewSource(seed))}
}

// Dataset generates count records with a balanced role distribution.
// About 10% of resumes are forced to miss multiple core skills and about
// 5% carry an adjacent-role label to simulate annotation noise.
func (g *Generator) Dataset(count int) []types.ResumeRecord {
	perRole := count / len(RoleNames)
	roleList := make([]string, 0, count)
	for _, role := range RoleNames {
		for i := 0; i < perRole; i++ {
			roleList = append(roleList, role)
		}
	}
	for len(roleList) < count {
		roleList = append(roleList, RoleNames[g.rng.Intn(len(RoleNames))])
	}
	g.rng.Shuffle(len(roleList), func(a, b int) {
		roleList[a], roleList[b] = roleList[b], roleList[a]
	})

	records := make([]types.ResumeRecord, 0, count)
	for _, role := range roleList {
		forceMiss := g.rng.Float64() < forceMissRate
		labelNoise := g.rng.Float64() < labelNoiseRate
		records = append(records, g.resume(role, forceMiss, labelNoise))
	}
	return records
}

// resume generates one record for the given true role. Scoring always uses
// the true role; label noise only swaps the output label.
func (g *Generator) resume(roleName string, forceMissMultiple, applyLabelNoise bool) types.ResumeRecord {
	profile := Profiles[roleName]
	selected := make(map[string]bool)

	coreProb := g.uniform(coreProbLo, coreProbHi)
	optProb := g.uniform(optionalProbLo, optionalProbHi)
	periProb := g.uniform(peripheralProbLo, peripheralProbHi)

	for _, s := range profile.Core {
		if g.rng.Float64() < coreProb {
			selected[s] = true
		}
	}
	for _, s := range profile.Optional {
		if g.rng.Float64() < optProb {
			selected[s] = true
		}
	}
	for _, s := range profile.Peripheral {
		if g.rng.Float64() < periProb {
			selected[s] = true
		}
	}

	// Cross-role contamination: 2 to 5 skills drawn from other roles.
	others := otherRoles(roleName)
	numCross := g.randint(2, 5)
	for i := 0; i < numCross; i++ {
		donor := Profiles[others[g.rng.Intn(len(others))]]
		pool := append(append(append([]string{}, donor.Core...), donor.Optional...), donor.Peripheral...)
		selected[pool[g.rng.Intn(len(pool))]] = true
	}

	// Occasionally pull two core skills from a donor role.
	if g.rng.Float64() < donorCoreRate {
		donor := Profiles[others[g.rng.Intn(len(others))]]
		for _, s := range g.sample(donor.Core, min(2, len(donor.Core))) {
			selected[s] = true
		}
	}

	for _, s := range g.sample(genericSkillPool, g.randint(2, 4)) {
		selected[s] = true
	}

	// No perfectly clean resumes: always miss at least one core skill.
	if containsAll(selected, profile.Core) {
		delete(selected, profile.Core[g.rng.Intn(len(profile.Core))])
	}

	if forceMissMultiple {
		present := make([]string, 0, len(profile.Core))
		for _, s := range profile.Core {
			if selected[s] {
				present = append(present, s)
			}
		}
		drop := min(g.randint(2, 3), len(present))
		for _, s := range g.sample(present, drop) {
			delete(selected, s)
		}
	}

	detected := make([]string, 0, len(selected))
	for s := range selected {
		detected = append(detected, s)
	}
	sort.Strings(detected)

	projectPct := g.sampleProjectScore()
	atsPct := g.randint(50, 100)
	structurePct := g.randint(40, 100)

	matchedCore, missingCore := partition(profile.Core, selected)
	matchedOptional, missingOptional := partition(profile.Optional, selected)

	coreCoverage := ratio(len(matchedCore), len(profile.Core))
	optionalCoverage := ratio(len(matchedOptional), len(profile.Optional))

	finalScore := g.scorer.FinalScore(
		coreCoverage, optionalCoverage,
		float64(projectPct)/100, float64(atsPct)/100, float64(structurePct)/100)

	outputRole := roleName
	if applyLabelNoise {
		if adjacent, ok := adjacentRoles[roleName]; ok {
			outputRole = adjacent
		}
	}

	return types.ResumeRecord{
		DetectedSkills:          detected,
		Role:                    outputRole,
		FinalScore:              finalScore,
		ReadinessCategory:       g.scorer.Category(finalScore),
		CoreCoveragePercent:     float64(int(coreCoverage * 100)),
		OptionalCoveragePercent: float64(int(optionalCoverage * 100)),
		ProjectScorePercent:     float64(projectPct),
		ATSScorePercent:         float64(atsPct),
		StructureScorePercent:   float64(structurePct),
		MissingCoreSkills:       missingCore,
		MissingOptionalSkills:   missingOptional,
		DataType:                DataType,
	}
}

// sampleProjectScore draws a stratified project score: 20% low (30-50),
// 60% mid (50-75), 20% high (75-95).
func (g *Generator) sampleProjectScore() int {
	r := g.rng.Float64()
	switch {
	case r < 0.20:
		return g.randint(30, 50)
	case r < 0.80:
		return g.randint(50, 75)
	default:
		return g.randint(75, 95)
	}
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*g.rng.Float64()
}

// randint draws an integer in [lo, hi] inclusive.
func (g *Generator) randint(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

// sample draws k distinct elements without mutating the input.
func (g *Generator) sample(pool []string, k int) []string {
	if k >= len(pool) {
		k = len(pool)
	}
	shuffled := append([]string{}, pool...)
	g.rng.Shuffle(len(shuffled), func(a, b int) {
		shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
	})
	return shuffled[:k]
}

func otherRoles(role string) []string {
	out := make([]string, 0, len(RoleNames)-1)
	for _, r := range RoleNames {
		if r != role {
			out = append(out, r)
		}
	}
	return out
}

func containsAll(set map[string]bool, items []string) bool {
	for _, s := range items {
		if !set[s] {
			return false
		}
	}
	return true
}

func partition(items []string, set map[string]bool) (present, missing []string) {
	present = make([]string, 0, len(items))
	missing = make([]string, 0)
	for _, s := range items {
		if set[s] {
			present = append(present, s)
		} else {
			missing = append(missing, s)
		}
	}
	return present, missing
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
