package similarity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/features"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/types"
)

// projectionTopK is the neighbor count for the weighted-average projection.
const projectionTopK = 5

// weightedAvgScore computes the similarity-weighted average final score of
// the topK most similar records. Only records with positive similarity
// participate; 0.0 means no similar record exists.
func weightedAvgScore(skills []string, records []types.ResumeRecord, topK int) float64 {
	vocab := features.BuildVocabulary(records)
	query := features.Encode(skills, vocab)

	type weighted struct {
		sim   float64
		score float64
	}
	scored := make([]weighted, 0, len(records))
	for _, r := range records {
		sim := Cosine(query, features.Encode(r.DetectedSkills, vocab))
		if sim > 0 {
			scored = append(scored, weighted{sim: sim, score: float64(r.FinalScore)})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].sim > scored[j].sim })
	if len(scored) > topK {
		scored = scored[:topK]
	}
	if len(scored) == 0 {
		return 0
	}

	totalWeight := 0.0
	weightedSum := 0.0
	for _, w := range scored {
		totalWeight += w.sim
		weightedSum += w.sim * w.score
	}
	if totalWeight == 0 {
		return 0
	}
	return weightedSum / totalWeight
}

// ProjectScore simulates adding one skill to a candidate's skill set and
// predicts the score change as the difference between the similarity-
// weighted neighborhood averages of the projected and current sets.
func ProjectScore(currentSkills []string, addSkill string, records []types.ResumeRecord) types.ScoreProjection {
	if len(records) == 0 {
		return types.ScoreProjection{
			SkillAdded:     addSkill,
			Recommendation: "No historical data available yet.",
		}
	}

	current := types.NormalizeSkills(currentSkills)
	projected := types.NormalizeSkills(append(append([]string{}, current...), strings.ToLower(strings.TrimSpace(addSkill))))

	currentScore := weightedAvgScore(current, records, projectionTopK)
	projectedScore := weightedAvgScore(projected, records, projectionTopK)
	improvement := projectedScore - currentScore

	var recommendation string
	switch {
	case improvement >= 5:
		recommendation = fmt.Sprintf("Highly recommended: adding '%s' is projected to raise your score significantly.", addSkill)
	case improvement > 0:
		recommendation = fmt.Sprintf("Beneficial: adding '%s' shows a moderate projected improvement.", addSkill)
	case improvement == 0:
		recommendation = fmt.Sprintf("Neutral: '%s' does not appear in enough similar profiles to project impact.", addSkill)
	default:
		recommendation = fmt.Sprintf("Low priority: '%s' shows minimal positive impact based on current data.", addSkill)
	}

	return types.ScoreProjection{
		SkillAdded:              addSkill,
		CurrentPredictedScore:   round1(currentScore),
		ProjectedPredictedScore: round1(projectedScore),
		ExpectedImprovement:     round1(improvement),
		Recommendation:          recommendation,
		DatasetSize:             len(records),
	}
}
