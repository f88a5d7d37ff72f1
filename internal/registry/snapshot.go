package registry

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/types"
)

// SnapshotFile holds the statistics-only hybrid model, refreshed on demand
// without retraining the forests.
const SnapshotFile = "hybrid.json"

// RoleStats summarizes score distribution for one role.
type RoleStats struct {
	Avg   float64 `json:"avg"`
	Min   int     `json:"min"`
	Max   int     `json:"max"`
	Count int     `json:"count"`
}

// Snapshot is the persisted statistical model: global skill impact ranking
// plus per-role score statistics.
type Snapshot struct {
	Version         string               `json:"version"`
	UpdatedAt       time.Time            `json:"updated_at"`
	DatasetSize     int                  `json:"dataset_size"`
	GlobalMeanScore float64              `json:"global_mean_score"`
	Ranking         []types.SkillImpact  `json:"skill_impact_ranking"`
	RoleStats       map[string]RoleStats `json:"role_stats"`
}

// BuildRoleStats computes per-role score statistics over a record set.
func BuildRoleStats(records []types.ResumeRecord) map[string]RoleStats {
	sums := make(map[string]int)
	mins := make(map[string]int)
	maxs := make(map[string]int)
	counts := make(map[string]int)

	for _, r := range records {
		if counts[r.Role] == 0 || r.FinalScore < mins[r.Role] {
			mins[r.Role] = r.FinalScore
		}
		if counts[r.Role] == 0 || r.FinalScore > maxs[r.Role] {
			maxs[r.Role] = r.FinalScore
		}
		sums[r.Role] += r.FinalScore
		counts[r.Role]++
	}

	stats := make(map[string]RoleStats, len(counts))
	for role, count := range counts {
		avg := float64(sums[role]) / float64(count)
		stats[role] = RoleStats{
			Avg:   math.Round(avg*10) / 10,
			Min:   mins[role],
			Max:   maxs[role],
			Count: count,
		}
	}
	return stats
}

// NewSnapshot assembles a snapshot from a skill impact report and role
// statistics, stamped with the current time.
func NewSnapshot(report types.SkillImpactReport, stats map[string]RoleStats) Snapshot {
	if stats == nil {
		stats = map[string]RoleStats{}
	}
	return Snapshot{
		Version:         "hybrid_v1",
		UpdatedAt:       time.Now().UTC(),
		DatasetSize:     report.DatasetSize,
		GlobalMeanScore: report.GlobalMeanScore,
		Ranking:         report.Ranking,
		RoleStats:       stats,
	}
}

func (r *Registry) snapshotPath() string {
	return filepath.Join(r.dir, SnapshotFile)
}

// SaveSnapshot overwrites the hybrid snapshot. Unlike trained versions the
// snapshot is mutable; it is recomputed from data, not trained.
func (r *Registry) SaveSnapshot(s Snapshot) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("registry: create dir: %w", err)
	}
	if err := writeJSON(r.snapshotPath(), s); err != nil {
		return fmt.Errorf("registry: write snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads the hybrid snapshot if present.
func (r *Registry) LoadSnapshot() (*Snapshot, error) {
	var s Snapshot
	if err := readJSON(r.snapshotPath(), &s); err != nil {
		if os.IsNotExist(err) {
			return nil, &ArtifactMissingError{Version: "hybrid", Artifact: SnapshotFile}
		}
		return nil, fmt.Errorf("registry: read snapshot: %w", err)
	}
	return &s, nil
}

// SnapshotExists reports whether a hybrid snapshot has been saved.
func (r *Registry) SnapshotExists() bool {
	_, err := os.Stat(r.snapshotPath())
	return err == nil
}
