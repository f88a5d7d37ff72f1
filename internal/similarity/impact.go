package similarity

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/types"
)

// Delta thresholds for impact labels.
const (
	impactHighDelta   = 5.0
	impactMediumDelta = 0.0
)

// ComputeSkillImpact ranks every skill in the dataset by how much the mean
// score of resumes containing it differs from the global mean. Positive
// delta marks a high-value skill.
func ComputeSkillImpact(records []types.ResumeRecord) types.SkillImpactReport {
	if len(records) == 0 {
		return types.SkillImpactReport{Ranking: []types.SkillImpact{}}
	}

	all := make([]float64, len(records))
	for i, r := range records {
		all[i] = float64(r.FinalScore)
	}
	globalMean := stat.Mean(all, nil)

	perSkill := make(map[string][]float64)
	for _, r := range records {
		for _, skill := range r.DetectedSkills {
			perSkill[skill] = append(perSkill[skill], float64(r.FinalScore))
		}
	}

	ranking := make([]types.SkillImpact, 0, len(perSkill))
	for skill, scores := range perSkill {
		meanWith := stat.Mean(scores, nil)
		delta := meanWith - globalMean

		label := types.ImpactLow
		switch {
		case delta >= impactHighDelta:
			label = types.ImpactHigh
		case delta >= impactMediumDelta:
			label = types.ImpactMedium
		}

		ranking = append(ranking, types.SkillImpact{
			Skill:              skill,
			MeanScoreWithSkill: round1(meanWith),
			DeltaFromGlobal:    round1(delta),
			SampleCount:        len(scores),
			ImpactLabel:        label,
		})
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		if ranking[i].DeltaFromGlobal != ranking[j].DeltaFromGlobal {
			return ranking[i].DeltaFromGlobal > ranking[j].DeltaFromGlobal
		}
		return ranking[i].Skill < ranking[j].Skill
	})

	return types.SkillImpactReport{
		GlobalMeanScore: round1(globalMean),
		DatasetSize:     len(records),
		Ranking:         ranking,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
