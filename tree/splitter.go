package tree

import "github.com/savthe/rafor/impurity"

// Metric selects the impurity criterion a tree trains with. It must match
// the tree kind: Gini for classifiers, MSE for regressors.
type Metric int

const (
	Gini Metric = iota
	MSE
)

// newAccumulator returns a fresh, empty accumulator for metric. numClasses
// is ignored for MSE.
func newAccumulator(metric Metric, numClasses int) impurity.Accumulator {
	switch metric {
	case Gini:
		return impurity.NewGini(numClasses)
	case MSE:
		return impurity.NewMSE()
	default:
		panic("tree: unknown metric")
	}
}

// rangeAccumulator builds the accumulator for the full [lo, hi) range of a
// node, pushing every weighted target once.
func rangeAccumulator(metric Metric, numClasses int, targets []weightedTarget) impurity.Accumulator {
	acc := newAccumulator(metric, numClasses)
	for _, wt := range targets {
		acc.Push(wt.target, wt.weight)
	}
	return acc
}

// Splitter finds the best (feature, threshold) for a node's range by
// scanning sorted values per feature and tracking left/right impurity.
// A Splitter is reused across nodes within one tree fit; its scratch
// buffers grow to the largest range seen and are never reallocated
// smaller, avoiding per-node allocation.
type Splitter struct {
	metric         Metric
	numClasses     int
	minSamplesLeaf int

	scratchVal []float32
	scratchWt  []weightedTarget
}

// NewSplitter returns a Splitter for the given metric/class count/leaf
// size floor.
func NewSplitter(metric Metric, numClasses, minSamplesLeaf int) *Splitter {
	return &Splitter{metric: metric, numClasses: numClasses, minSamplesLeaf: minSamplesLeaf}
}

// candidate describes a legal split found while scanning one feature.
type candidate struct {
	found     bool
	pivotOff  int // pivot offset within [0, hi-lo)
	threshold float32
	score     float64
}

// FindSplit scans feature over space's [lo, hi) range and returns the best
// legal candidate split for that feature alone, scored against base (the
// impurity accumulator of the full range, reused read-only across every
// feature via Clone). The trainer calls FindSplit once per candidate
// feature and keeps the best result across the whole permutation.
func (sp *Splitter) FindSplit(space *Space, lo, hi, feature int, base impurity.Accumulator) candidate {
	n := hi - lo
	if cap(sp.scratchVal) < n {
		sp.scratchVal = make([]float32, n)
		sp.scratchWt = make([]weightedTarget, n)
	}
	val := sp.scratchVal[:n]
	wt := sp.scratchWt[:n]

	targets := space.Targets(lo, hi)
	for i := 0; i < n; i++ {
		val[i] = space.FeatureVal(lo+i, feature)
		wt[i] = targets[i]
	}

	sortByFeatureVal(val, wt)

	left := newAccumulator(sp.metric, sp.numClasses)
	right := base.Clone()

	var best candidate

	limit := n - sp.minSamplesLeaf
	for i := 0; i < limit; i++ {
		left.Push(wt[i].target, wt[i].weight)
		right.Pop(wt[i].target, wt[i].weight)

		legal := val[i] != val[i+1] && i+1 >= sp.minSamplesLeaf
		if !legal {
			continue
		}

		score := impurity.SplitScore(left, right)
		if !best.found || score < best.score {
			best = candidate{
				found:    true,
				pivotOff: i + 1,
				// val[i] as the threshold always separates the two sides
				// cleanly: val is sorted ascending and legal requires
				// val[i] != val[i+1], so val[i] < val[i+1]. A midpoint
				// computed as a+(b-a)/2 can round to either neighbor when
				// they are one float32 ULP apart, which would put val[i+1]
				// on the wrong side of Space.Split's "> threshold" test.
				threshold: val[i],
				score:     score,
			}
		}
		if best.found && best.score == 0 {
			break
		}
	}

	return best
}
