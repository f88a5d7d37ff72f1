package types

// PredictionRequest is the input payload for POST /predict. Score fields use
// the same 0-100 scale as the dashboard; the feature codec normalizes them
// to 0-1 internally. Skills are lowercased and trimmed server-side.
type PredictionRequest struct {
	Skills           []string `json:"skills" validate:"required,min=1"`
	CoreCoverage     float64  `json:"core_coverage" validate:"gte=0,lte=100"`
	OptionalCoverage float64  `json:"optional_coverage" validate:"gte=0,lte=100"`
	ProjectScore     float64  `json:"project_score" validate:"gte=0,lte=100"`
	ATSScore         float64  `json:"ats_score" validate:"gte=0,lte=100"`
	StructureScore   float64  `json:"structure_score" validate:"gte=0,lte=100"`
}

// NormalizedSkills returns the cleaned skill list for encoding.
func (r PredictionRequest) NormalizedSkills() []string {
	return NormalizeSkills(r.Skills)
}

// PredictionResponse is the output of POST /predict.
type PredictionResponse struct {
	PredictedRole   string   `json:"predicted_role"`
	Confidence      float64  `json:"confidence"`
	ResumeScore     float64  `json:"resume_score"`
	WeakAreas       []string `json:"weak_areas"`
	ModelVersion    string   `json:"model_version"`
	InferenceTimeMs float64  `json:"inference_time_ms,omitempty"`
}

// EvaluationMetrics bundles the held-out evaluation of one training run.
type EvaluationMetrics struct {
	Classifier ClassifierMetrics `json:"classifier"`
	Regressor  RegressorMetrics  `json:"regressor"`
}

// ClassifierMetrics reports role-classifier quality on the test split.
type ClassifierMetrics struct {
	Accuracy        float64  `json:"accuracy"`
	F1Macro         float64  `json:"f1_macro"`
	ConfusionMatrix [][]int  `json:"confusion_matrix"`
	ClassLabels     []string `json:"class_labels"`
}

// RegressorMetrics reports score-regressor quality on the test split.
type RegressorMetrics struct {
	RMSE float64 `json:"rmse"`
	R2   float64 `json:"r2"`
}
