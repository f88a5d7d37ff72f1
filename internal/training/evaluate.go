package training

import (
	"math"

	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/forest"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/types"
)

// Accuracy is the fraction of exact label matches.
func Accuracy(yTrue, yPred []int) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	hits := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			hits++
		}
	}
	return float64(hits) / float64(len(yTrue))
}

// MacroF1 averages per-class F1 over all numClasses classes. Classes with
// no predictions or no support contribute zero rather than dividing by
// zero.
func MacroF1(yTrue, yPred []int, numClasses int) float64 {
	if numClasses == 0 {
		return 0
	}
	tp := make([]float64, numClasses)
	fp := make([]float64, numClasses)
	fn := make([]float64, numClasses)
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			tp[yTrue[i]]++
		} else {
			fp[yPred[i]]++
			fn[yTrue[i]]++
		}
	}

	sum := 0.0
	for c := 0; c < numClasses; c++ {
		precision := 0.0
		if tp[c]+fp[c] > 0 {
			precision = tp[c] / (tp[c] + fp[c])
		}
		recall := 0.0
		if tp[c]+fn[c] > 0 {
			recall = tp[c] / (tp[c] + fn[c])
		}
		if precision+recall > 0 {
			sum += 2 * precision * recall / (precision + recall)
		}
	}
	return sum / float64(numClasses)
}

// ConfusionMatrix returns counts indexed [true][predicted].
func ConfusionMatrix(yTrue, yPred []int, numClasses int) [][]int {
	cm := make([][]int, numClasses)
	for i := range cm {
		cm[i] = make([]int, numClasses)
	}
	for i := range yTrue {
		if yTrue[i] >= 0 && yPred[i] >= 0 {
			cm[yTrue[i]][yPred[i]]++
		}
	}
	return cm
}

// RMSE is the root mean squared prediction error.
func RMSE(yTrue, yPred []float64) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	sum := 0.0
	for i := range yTrue {
		d := yTrue[i] - yPred[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(yTrue)))
}

// R2 is the coefficient of determination. A constant target yields 0.
func R2(yTrue, yPred []float64) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range yTrue {
		mean += v
	}
	mean /= float64(len(yTrue))

	ssRes, ssTot := 0.0, 0.0
	for i := range yTrue {
		ssRes += (yTrue[i] - yPred[i]) * (yTrue[i] - yPred[i])
		ssTot += (yTrue[i] - mean) * (yTrue[i] - mean)
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}

// EvaluateClassifier scores the role classifier on held-out data.
func EvaluateClassifier(clf *forest.Classifier, le *LabelEncoder, XTest [][]float64, yTest []int) types.ClassifierMetrics {
	yPred := make([]int, len(XTest))
	for i, x := range XTest {
		yPred[i] = clf.Predict(x)
	}
	numClasses := len(le.Classes)
	return types.ClassifierMetrics{
		Accuracy:        round4(Accuracy(yTest, yPred)),
		F1Macro:         round4(MacroF1(yTest, yPred, numClasses)),
		ConfusionMatrix: ConfusionMatrix(yTest, yPred, numClasses),
		ClassLabels:     le.Classes,
	}
}

// EvaluateRegressor scores the score regressor on held-out data.
func EvaluateRegressor(reg *forest.Regressor, XTest [][]float64, yTest []float64) types.RegressorMetrics {
	yPred := make([]float64, len(XTest))
	for i, x := range XTest {
		yPred[i] = reg.Predict(x)
	}
	return types.RegressorMetrics{
		RMSE: round4(RMSE(yTest, yPred)),
		R2:   round4(R2(yTest, yPred)),
	}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
