package forest

import (
	"math/rand"
	"sort"
)

// node is one decision tree node. Leaves carry either a class distribution
// (classification) or a value (regression); internal nodes carry a feature
// index and threshold. The layout is JSON-stable so trained trees round-trip
// through the model registry unchanged.
type node struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold,omitempty"`
	Left      *node     `json:"left,omitempty"`
	Right     *node     `json:"right,omitempty"`
	Dist      []float64 `json:"dist,omitempty"`
	Value     float64   `json:"value,omitempty"`
}

// leafFeature marks a node with no split.
const leafFeature = -1

func (n *node) isLeaf() bool { return n.Feature == leafFeature }

// descend walks a sample down to its leaf.
func (n *node) descend(x []float64) *node {
	cur := n
	for !cur.isLeaf() {
		if x[cur.Feature] <= cur.Threshold {
			cur = cur.Left
		} else {
			cur = cur.Right
		}
	}
	return cur
}

// classGrower builds one weighted CART classification tree using Gini
// impurity. importances accumulates the weighted impurity decrease per
// feature across all splits.
type classGrower struct {
	X           [][]float64
	y           []int
	w           []float64
	numClasses  int
	maxDepth    int
	minLeaf     int
	mtry        int
	rng         *rand.Rand
	importances []float64
}

func (g *classGrower) grow(indices []int, depth int) *node {
	counts := make([]float64, g.numClasses)
	total := 0.0
	for _, i := range indices {
		counts[g.y[i]] += g.w[i]
		total += g.w[i]
	}

	leaf := func() *node {
		dist := make([]float64, g.numClasses)
		if total > 0 {
			for c := range dist {
				dist[c] = counts[c] / total
			}
		}
		return &node{Feature: leafFeature, Dist: dist}
	}

	if depth >= g.maxDepth || len(indices) < 2*g.minLeaf || gini(counts, total) == 0 {
		return leaf()
	}

	feat, thresh, decrease, left, right := g.bestSplit(indices, counts, total)
	if feat == leafFeature {
		return leaf()
	}
	g.importances[feat] += decrease

	return &node{
		Feature:   feat,
		Threshold: thresh,
		Left:      g.grow(left, depth+1),
		Right:     g.grow(right, depth+1),
	}
}

// bestSplit searches a random feature subset for the split with the largest
// weighted Gini decrease, honoring the minimum leaf size on both sides.
func (g *classGrower) bestSplit(indices []int, counts []float64, total float64) (int, float64, float64, []int, []int) {
	parentImpurity := gini(counts, total)
	bestFeat := leafFeature
	bestThresh := 0.0
	bestDecrease := 0.0

	order := make([]int, len(indices))
	left := make([]float64, g.numClasses)

	for _, f := range sampleFeatures(len(g.X[0]), g.mtry, g.rng) {
		copy(order, indices)
		sort.Slice(order, func(a, b int) bool { return g.X[order[a]][f] < g.X[order[b]][f] })

		for c := range left {
			left[c] = 0
		}
		leftW := 0.0

		for pos := 0; pos < len(order)-1; pos++ {
			i := order[pos]
			left[g.y[i]] += g.w[i]
			leftW += g.w[i]

			if pos+1 < g.minLeaf || len(order)-pos-1 < g.minLeaf {
				continue
			}
			lo, hi := g.X[order[pos]][f], g.X[order[pos+1]][f]
			if lo == hi {
				continue
			}

			rightW := total - leftW
			leftImp := 0.0
			rightImp := 0.0
			if leftW > 0 {
				leftImp = giniFromLeft(left, leftW)
			}
			if rightW > 0 {
				rightImp = giniRemainder(counts, left, rightW)
			}
			decrease := total*parentImpurity - leftW*leftImp - rightW*rightImp
			if decrease > bestDecrease {
				bestDecrease = decrease
				bestFeat = f
				bestThresh = (lo + hi) / 2
			}
		}
	}

	if bestFeat == leafFeature {
		return leafFeature, 0, 0, nil, nil
	}
	var leftIdx, rightIdx []int
	for _, i := range indices {
		if g.X[i][bestFeat] <= bestThresh {
			leftIdx = append(leftIdx, i)
		} else {
			rightIdx = append(rightIdx, i)
		}
	}
	return bestFeat, bestThresh, bestDecrease, leftIdx, rightIdx
}

func gini(counts []float64, total float64) float64 {
	if total == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range counts {
		p := c / total
		sum += p * p
	}
	return 1 - sum
}

func giniFromLeft(left []float64, leftW float64) float64 {
	return gini(left, leftW)
}

func giniRemainder(total, left []float64, rightW float64) float64 {
	sum := 0.0
	for c := range total {
		p := (total[c] - left[c]) / rightW
		sum += p * p
	}
	return 1 - sum
}

// regGrower builds one weighted CART regression tree using weighted
// variance as the impurity criterion.
type regGrower struct {
	X           [][]float64
	y           []float64
	w           []float64
	maxDepth    int
	minLeaf     int
	mtry        int
	rng         *rand.Rand
	importances []float64
}

func (g *regGrower) grow(indices []int, depth int) *node {
	sumW, sumWY, sumWY2 := 0.0, 0.0, 0.0
	for _, i := range indices {
		sumW += g.w[i]
		sumWY += g.w[i] * g.y[i]
		sumWY2 += g.w[i] * g.y[i] * g.y[i]
	}

	leaf := func() *node {
		mean := 0.0
		if sumW > 0 {
			mean = sumWY / sumW
		}
		return &node{Feature: leafFeature, Value: mean}
	}

	if depth >= g.maxDepth || len(indices) < 2*g.minLeaf || variance(sumW, sumWY, sumWY2) == 0 {
		return leaf()
	}

	feat, thresh, decrease, left, right := g.bestSplit(indices, sumW, sumWY, sumWY2)
	if feat == leafFeature {
		return leaf()
	}
	g.importances[feat] += decrease

	return &node{
		Feature:   feat,
		Threshold: thresh,
		Left:      g.grow(left, depth+1),
		Right:     g.grow(right, depth+1),
	}
}

func (g *regGrower) bestSplit(indices []int, sumW, sumWY, sumWY2 float64) (int, float64, float64, []int, []int) {
	parentImpurity := variance(sumW, sumWY, sumWY2)
	bestFeat := leafFeature
	bestThresh := 0.0
	bestDecrease := 0.0

	order := make([]int, len(indices))

	for _, f := range sampleFeatures(len(g.X[0]), g.mtry, g.rng) {
		copy(order, indices)
		sort.Slice(order, func(a, b int) bool { return g.X[order[a]][f] < g.X[order[b]][f] })

		lW, lWY, lWY2 := 0.0, 0.0, 0.0
		for pos := 0; pos < len(order)-1; pos++ {
			i := order[pos]
			lW += g.w[i]
			lWY += g.w[i] * g.y[i]
			lWY2 += g.w[i] * g.y[i] * g.y[i]

			if pos+1 < g.minLeaf || len(order)-pos-1 < g.minLeaf {
				continue
			}
			lo, hi := g.X[order[pos]][f], g.X[order[pos+1]][f]
			if lo == hi {
				continue
			}

			rW := sumW - lW
			decrease := sumW*parentImpurity -
				lW*variance(lW, lWY, lWY2) -
				rW*variance(rW, sumWY-lWY, sumWY2-lWY2)
			if decrease > bestDecrease {
				bestDecrease = decrease
				bestFeat = f
				bestThresh = (lo + hi) / 2
			}
		}
	}

	if bestFeat == leafFeature {
		return leafFeature, 0, 0, nil, nil
	}
	var leftIdx, rightIdx []int
	for _, i := range indices {
		if g.X[i][bestFeat] <= bestThresh {
			leftIdx = append(leftIdx, i)
		} else {
			rightIdx = append(rightIdx, i)
		}
	}
	return bestFeat, bestThresh, bestDecrease, leftIdx, rightIdx
}

// variance computes the weighted variance from sufficient statistics,
// clamped at zero to absorb float cancellation.
func variance(sumW, sumWY, sumWY2 float64) float64 {
	if sumW == 0 {
		return 0
	}
	mean := sumWY / sumW
	v := sumWY2/sumW - mean*mean
	if v < 0 {
		return 0
	}
	return v
}

// sampleFeatures draws mtry distinct feature indices. mtry <= 0 or
// mtry >= total selects every feature in order.
func sampleFeatures(total, mtry int, rng *rand.Rand) []int {
	if mtry <= 0 || mtry >= total {
		all := make([]int, total)
		for i := range all {
			all[i] = i
		}
		return all
	}
	perm := rng.Perm(total)
	return perm[:mtry]
}
