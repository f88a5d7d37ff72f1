// Package config loads and validates the JSON configuration that drives the
// deterministic scoring pipeline: scoring weights with readiness thresholds,
// the canonical skill dictionary, and the role requirement matrix.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Config file names expected inside the config directory.
const (
	ScoringFile = "scoring.json"
	SkillsFile  = "skills.json"
	RolesFile   = "roles.json"
)

// weightSumTolerance absorbs float representation noise when checking that
// scoring weights do not exceed 1.0.
const weightSumTolerance = 1e-9

// Error reports a configuration problem tied to one config file.
type Error struct {
	File    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config error in %s: %s", e.File, e.Message)
}

// Weights are the scoring component weights. They must sum to at most 1.0.
type Weights struct {
	Core      float64 `json:"core"`
	Optional  float64 `json:"optional"`
	Project   float64 `json:"project"`
	ATS       float64 `json:"ats"`
	Structure float64 `json:"structure"`
}

// Sum returns the total of all component weights.
func (w Weights) Sum() float64 {
	return w.Core + w.Optional + w.Project + w.ATS + w.Structure
}

// Thresholds are the final-score cutoffs for readiness categories.
// A score at or above JobReady is "Job Ready", at or above Improving is
// "Improving", anything lower is "Needs Development".
type Thresholds struct {
	JobReady  int `json:"job_ready"`
	Improving int `json:"improving"`
}

// Scoring is the content of scoring.json.
type Scoring struct {
	Weights    Weights    `json:"weights"`
	Thresholds Thresholds `json:"readiness_thresholds"`
}

// SkillDictionary maps a canonical skill name to the surface variants that
// should be recognized as that skill.
type SkillDictionary map[string][]string

// Canonical returns the set of canonical skill names, lowercased.
func (d SkillDictionary) Canonical() map[string]bool {
	set := make(map[string]bool, len(d))
	for name := range d {
		set[strings.ToLower(strings.TrimSpace(name))] = true
	}
	return set
}

// Role lists the core and optional skills required for one target role.
type Role struct {
	Core     []string `json:"core"`
	Optional []string `json:"optional"`
}

// RoleMatrix maps a role name to its skill requirements.
type RoleMatrix map[string]Role

// Names returns the role names in sorted order.
func (m RoleMatrix) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get looks up a role by exact name.
func (m RoleMatrix) Get(name string) (Role, bool) {
	role, ok := m[name]
	return role, ok
}

// Config is the full validated configuration.
type Config struct {
	Scoring Scoring
	Skills  SkillDictionary
	Roles   RoleMatrix
}

// Load reads, schema-validates, and cross-validates all config files from dir.
func Load(dir string) (*Config, error) {
	scoringRaw, err := readFile(dir, ScoringFile)
	if err != nil {
		return nil, err
	}
	skillsRaw, err := readFile(dir, SkillsFile)
	if err != nil {
		return nil, err
	}
	rolesRaw, err := readFile(dir, RolesFile)
	if err != nil {
		return nil, err
	}

	if err := validateDocument(ScoringFile, scoringSchema, scoringRaw); err != nil {
		return nil, err
	}
	if err := validateDocument(SkillsFile, skillsSchema, skillsRaw); err != nil {
		return nil, err
	}
	if err := validateDocument(RolesFile, rolesSchema, rolesRaw); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(scoringRaw, &cfg.Scoring); err != nil {
		return nil, &Error{File: ScoringFile, Message: err.Error()}
	}
	if err := json.Unmarshal(skillsRaw, &cfg.Skills); err != nil {
		return nil, &Error{File: SkillsFile, Message: err.Error()}
	}
	if err := json.Unmarshal(rolesRaw, &cfg.Roles); err != nil {
		return nil, &Error{File: RolesFile, Message: err.Error()}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readFile(dir, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return nil, &Error{File: name, Message: err.Error()}
	}
	return data, nil
}

// validate enforces the cross-file invariants: weights bounded by 1.0 and
// every role skill present in the skill dictionary.
func (c *Config) validate() error {
	if sum := c.Scoring.Weights.Sum(); sum > 1.0+weightSumTolerance {
		return &Error{
			File:    ScoringFile,
			Message: fmt.Sprintf("weights sum to %.4f, must not exceed 1.0", sum),
		}
	}
	if c.Scoring.Thresholds.Improving > c.Scoring.Thresholds.JobReady {
		return &Error{
			File: ScoringFile,
			Message: fmt.Sprintf("improving threshold %d exceeds job_ready threshold %d",
				c.Scoring.Thresholds.Improving, c.Scoring.Thresholds.JobReady),
		}
	}

	canonical := c.Skills.Canonical()
	for roleName, role := range c.Roles {
		for _, skill := range append(append([]string{}, role.Core...), role.Optional...) {
			if !canonical[strings.ToLower(strings.TrimSpace(skill))] {
				return &Error{
					File:    RolesFile,
					Message: fmt.Sprintf("role %q references unknown skill %q", roleName, skill),
				}
			}
		}
	}
	return nil
}
