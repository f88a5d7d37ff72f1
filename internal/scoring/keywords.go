package scoring

// Keyword lists backing the project sub-score. Matching is substring-based
// over lowercased resume text, mirroring what the dashboard documents.
var (
	actionVerbs = []string{
		"developed", "built", "designed", "implemented",
		"optimized", "engineered", "deployed", "created", "trained",
	}

	complexityKeywords = []string{
		"scalable", "distributed", "microservices", "real-time",
		"deep learning", "computer vision", "nlp", "api", "cloud",
		"pipeline", "automation", "end-to-end",
	}
)

// sectionHeadings are the headings an applicant tracking system scans for.
var sectionHeadings = []string{"skills", "projects", "education", "experience"}

// expectedSections are the parser-detected sections that each contribute
// equally to the structure score.
var expectedSections = []string{"skills", "projects", "education", "links"}
