// Package synth generates the synthetic training corpus: realistic,
// deliberately ambiguous resume records sampled from role skill profiles
// and scored with the real deterministic formula.
package synth

// Profile groups a role's skills by how likely a real resume is to carry
// them. Core skills are near-essential, optional skills add strength, and
// peripheral skills are plausible noise.
type Profile struct {
	Core       []string
	Optional   []string
	Peripheral []string
}

// RoleNames lists the generated roles in a fixed order so balanced
// datasets come out identical for a given seed.
var RoleNames = []string{
	"Frontend Developer",
	"Backend Developer",
	"Full Stack Developer",
	"Data Scientist",
	"ML Engineer",
	"DevOps Engineer",
}

// Profiles defines the six role skill profiles.
var Profiles = map[string]Profile{
	"Frontend Developer": {
		Core:       []string{"html", "css", "javascript", "react"},
		Optional:   []string{"typescript", "redux", "next.js"},
		Peripheral: []string{"firebase", "git", "api"},
	},
	"Backend Developer": {
		Core:       []string{"python", "java", "sql", "api"},
		Optional:   []string{"docker", "microservices", "gcp"},
		Peripheral: []string{"redis", "linux", "git"},
	},
	"Full Stack Developer": {
		Core:       []string{"javascript", "react", "node.js", "sql"},
		Optional:   []string{"docker", "aws", "typescript"},
		Peripheral: []string{"firebase", "git", "api"},
	},
	"Data Scientist": {
		Core:       []string{"python", "pandas", "numpy", "scikit-learn"},
		Optional:   []string{"tensorflow", "pytorch", "matplotlib"},
		Peripheral: []string{"sql", "jupyter", "statistics"},
	},
	"ML Engineer": {
		Core:       []string{"python", "tensorflow", "pytorch", "mlops"},
		Optional:   []string{"docker", "kubernetes", "gcp"},
		Peripheral: []string{"api", "sql", "linux"},
	},
	"DevOps Engineer": {
		Core:       []string{"docker", "kubernetes", "aws", "linux"},
		Optional:   []string{"terraform", "gcp", "ci/cd"},
		Peripheral: []string{"python", "bash", "monitoring"},
	},
}

// adjacentRoles maps each role to its most confusable neighbor, used for
// label noise.
var adjacentRoles = map[string]string{
	"Frontend Developer":   "Full Stack Developer",
	"Backend Developer":    "Full Stack Developer",
	"Full Stack Developer": "Backend Developer",
	"Data Scientist":       "ML Engineer",
	"ML Engineer":          "Data Scientist",
	"DevOps Engineer":      "Backend Developer",
}

// genericSkillPool holds role-agnostic skills injected into every resume.
var genericSkillPool = []string{
	"git", "linux", "sql", "debugging", "agile",
	"problem solving", "communication", "rest", "api", "testing",
}
