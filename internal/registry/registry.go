// Package registry persists and loads trained model artifacts. Each model
// version owns one directory under the registry root holding the classifier
// bundle, the regressor, the feature vocabulary, and training metadata.
// Saved versions are immutable; retraining writes a new version.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/forest"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/types"
)

// Artifact file names inside a version directory.
const (
	ClassifierFile = "classifier.json"
	RegressorFile  = "regressor.json"
	VocabularyFile = "vocabulary.json"
	MetadataFile   = "metadata.json"
)

// ErrVersionExists is returned when saving over an existing version.
var ErrVersionExists = errors.New("registry: model version already exists")

// ErrNoVersions is returned by Latest when the registry is empty.
var ErrNoVersions = errors.New("registry: no trained model versions found")

// ArtifactMissingError reports an incomplete version directory.
type ArtifactMissingError struct {
	Version  string
	Artifact string
}

func (e *ArtifactMissingError) Error() string {
	return fmt.Sprintf("registry: version %q is missing artifact %s", e.Version, e.Artifact)
}

// ClassifierBundle stores the role classifier together with the label
// encoding it was trained against, so class indices always decode with the
// labels they were fit with.
type ClassifierBundle struct {
	Model  *forest.Classifier `json:"model"`
	Labels []string           `json:"labels"`
}

// Metadata is the training summary saved alongside each version.
type Metadata struct {
	Version          string                  `json:"version"`
	RunID            string                  `json:"run_id,omitempty"`
	TrainedOnRecords int                     `json:"trained_on_records"`
	RealRecords      int                     `json:"real_records"`
	SyntheticRecords int                     `json:"synthetic_records"`
	Accuracy         float64                 `json:"accuracy"`
	F1Macro          float64                 `json:"f1_macro"`
	RMSE             float64                 `json:"rmse"`
	R2               float64                 `json:"r2"`
	Hyperparameters  forest.Hyperparams      `json:"hyperparameters"`
	DateTrained      time.Time               `json:"date_trained"`
	RandomSeed       int64                   `json:"random_seed"`
	VocabularySize   int                     `json:"vocabulary_size"`
	FeatureDim       int                     `json:"feature_dim"`
	NumericOrder     []string                `json:"numeric_feature_order"`
	Evaluation       types.EvaluationMetrics `json:"evaluation"`
	Artifacts        map[string]string       `json:"artifacts"`
}

// Bundle is everything one training run produces.
type Bundle struct {
	Classifier ClassifierBundle
	Regressor  *forest.Regressor
	Vocabulary []string
	Metadata   Metadata
}

// Model is a fully loaded version ready for inference.
type Model struct {
	Classifier *forest.Classifier
	Labels     []string
	Regressor  *forest.Regressor
	Vocabulary []string
	Metadata   Metadata
}

// Registry stores model versions under a root directory.
type Registry struct {
	dir string
}

// New creates a registry rooted at dir. The directory is created lazily on
// first save.
func New(dir string) *Registry {
	return &Registry{dir: dir}
}

// Dir returns the registry root.
func (r *Registry) Dir() string { return r.dir }

func (r *Registry) versionDir(version string) string {
	return filepath.Join(r.dir, version)
}

// Exists reports whether a version directory is present with all artifacts.
func (r *Registry) Exists(version string) bool {
	for _, name := range []string{ClassifierFile, RegressorFile, VocabularyFile, MetadataFile} {
		if _, err := os.Stat(filepath.Join(r.versionDir(version), name)); err != nil {
			return false
		}
	}
	return true
}

// Save persists a bundle as a new immutable version. Saving an existing
// version fails with ErrVersionExists.
func (r *Registry) Save(version string, b Bundle) error {
	dir := r.versionDir(version)
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("%w: %s", ErrVersionExists, version)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("registry: create version dir: %w", err)
	}

	files := map[string]any{
		ClassifierFile: b.Classifier,
		RegressorFile:  b.Regressor,
		VocabularyFile: b.Vocabulary,
		MetadataFile:   b.Metadata,
	}
	for name, payload := range files {
		if err := writeJSON(filepath.Join(dir, name), payload); err != nil {
			return fmt.Errorf("registry: write %s: %w", name, err)
		}
	}
	return nil
}

// Load reads all artifacts for a version. A missing artifact yields a
// typed ArtifactMissingError naming the file.
func (r *Registry) Load(version string) (*Model, error) {
	dir := r.versionDir(version)

	var bundle ClassifierBundle
	if err := readJSON(filepath.Join(dir, ClassifierFile), &bundle); err != nil {
		return nil, missOrErr(version, ClassifierFile, err)
	}
	var reg forest.Regressor
	if err := readJSON(filepath.Join(dir, RegressorFile), &reg); err != nil {
		return nil, missOrErr(version, RegressorFile, err)
	}
	var vocab []string
	if err := readJSON(filepath.Join(dir, VocabularyFile), &vocab); err != nil {
		return nil, missOrErr(version, VocabularyFile, err)
	}
	var meta Metadata
	if err := readJSON(filepath.Join(dir, MetadataFile), &meta); err != nil {
		return nil, missOrErr(version, MetadataFile, err)
	}

	return &Model{
		Classifier: bundle.Model,
		Labels:     bundle.Labels,
		Regressor:  &reg,
		Vocabulary: vocab,
		Metadata:   meta,
	}, nil
}

// LoadMetadata reads only the training summary for a version.
func (r *Registry) LoadMetadata(version string) (*Metadata, error) {
	var meta Metadata
	if err := readJSON(filepath.Join(r.versionDir(version), MetadataFile), &meta); err != nil {
		return nil, missOrErr(version, MetadataFile, err)
	}
	return &meta, nil
}

// Versions lists all complete versions, oldest first.
func (r *Registry) Versions() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("registry: list versions: %w", err)
	}
	versions := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() && r.Exists(e.Name()) {
			versions = append(versions, e.Name())
		}
	}
	sort.Slice(versions, func(i, j int) bool {
		return compareVersions(versions[i], versions[j]) < 0
	})
	return versions, nil
}

// Latest returns the newest complete version, or ErrNoVersions.
func (r *Registry) Latest() (string, error) {
	versions, err := r.Versions()
	if err != nil {
		return "", err
	}
	if len(versions) == 0 {
		return "", ErrNoVersions
	}
	return versions[len(versions)-1], nil
}

// compareVersions orders "v2" before "v10" by comparing numeric suffixes
// when both parse, falling back to lexicographic order.
func compareVersions(a, b string) int {
	na, okA := versionNumber(a)
	nb, okB := versionNumber(b)
	if okA && okB {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return strings.Compare(a, b)
		}
	}
	return strings.Compare(a, b)
}

func versionNumber(v string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimPrefix(strings.ToLower(v), "v"), 64)
	return n, err == nil
}

func missOrErr(version, artifact string, err error) error {
	if os.IsNotExist(err) {
		return &ArtifactMissingError{Version: version, Artifact: artifact}
	}
	return fmt.Errorf("registry: read %s for %s: %w", artifact, version, err)
}

func writeJSON(path string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
