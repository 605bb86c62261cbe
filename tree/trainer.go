package tree

import (
	"math"
	"math/rand"

	"github.com/savthe/rafor/impurity"
)

// MaxFeaturesMode selects how Config.MaxFeatures resolves against the
// dataset's feature count F.
type MaxFeaturesMode int

const (
	// SQRTFeatures considers ceil(sqrt(F)) features per split.
	SQRTFeatures MaxFeaturesMode = iota
	// Log2Features considers ceil(log2(F)) features per split.
	Log2Features
	// ExactFeatures considers Config.MaxFeaturesK features per split,
	// clamped to F.
	ExactFeatures
	// AllFeatures considers every feature per split (single-tree default).
	AllFeatures
)

// Config holds the tree trainer's hyperparameters.
type Config struct {
	// MaxDepth limits tree depth; the root is depth 0. Negative means
	// unlimited.
	MaxDepth int
	// MinSamplesSplit: nodes smaller than this are never split.
	MinSamplesSplit int
	// MinSamplesLeaf: every leaf must hold at least this many sample
	// entries of the training space; bootstrap weights are not summed.
	MinSamplesLeaf int
	// MaxFeaturesMode/MaxFeaturesK together resolve the per-split feature
	// subset size (see ResolveMaxFeatures).
	MaxFeaturesMode MaxFeaturesMode
	MaxFeaturesK    int
	// Metric is the impurity criterion; must match the tree kind.
	Metric Metric
}

// DefaultConfig returns the single-tree defaults: unlimited depth,
// MinSamplesSplit=2, MinSamplesLeaf=1, all features.
func DefaultConfig(metric Metric) Config {
	return Config{
		MaxDepth:        -1,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		MaxFeaturesMode: AllFeatures,
		Metric:          metric,
	}
}

// ResolveMaxFeatures turns the configured mode into a concrete feature
// count, clamped to [1, numFeatures].
func (c Config) ResolveMaxFeatures(numFeatures int) int {
	var n int
	switch c.MaxFeaturesMode {
	case SQRTFeatures:
		n = int(math.Ceil(math.Sqrt(float64(numFeatures))))
	case Log2Features:
		n = int(math.Ceil(math.Log2(float64(numFeatures))))
	case ExactFeatures:
		n = c.MaxFeaturesK
	default:
		n = numFeatures
	}
	if n < 1 {
		n = 1
	}
	if n > numFeatures {
		n = numFeatures
	}
	return n
}

// stackEntry is one unit of work in the trainer's explicit node stack:
// a tree node, the training-space range it owns, and its depth.
type stackEntry struct {
	node  uint32
	lo    int
	hi    int
	depth int
}

// Fit grows a tree over space: an iterative, depth-agnostic loop over an
// explicit stack of (node, range, depth). rng drives feature-subset
// shuffling when MaxFeatures < numFeatures; callers seed it once per tree
// so per-tree determinism follows from the seed alone.
func Fit(space *Space, numFeatures, numClasses int, cfg Config, rng *rand.Rand) *Tree {
	t := NewTree(numClasses)
	maxFeatures := cfg.ResolveMaxFeatures(numFeatures)
	subsample := maxFeatures < numFeatures

	sp := NewSplitter(cfg.Metric, numClasses, cfg.MinSamplesLeaf)

	perm := make([]int, numFeatures)
	for i := range perm {
		perm[i] = i
	}

	stack := []stackEntry{{node: 0, lo: 0, hi: space.Len(), depth: 0}}

	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := e.hi - e.lo
		targets := space.Targets(e.lo, e.hi)
		base := rangeAccumulator(cfg.Metric, numClasses, targets)

		canSplit := n >= cfg.MinSamplesSplit &&
			n >= 2*cfg.MinSamplesLeaf &&
			(cfg.MaxDepth < 0 || e.depth < cfg.MaxDepth) &&
			base.Impurity() > 0

		var best candidate
		var bestFeature int

		if canSplit {
			if subsample {
				shuffle(perm, rng)
			}

			legalFound := 0
			for scanned, feature := range perm {
				c := sp.FindSplit(space, e.lo, e.hi, feature, base)
				if c.found {
					legalFound++
					if !best.found || c.score < best.score {
						best = c
						bestFeature = feature
					}
				}

				if scanned+1 >= maxFeatures && legalFound > 0 {
					break
				}
				if best.found && best.score == 0 {
					break
				}
			}
		}

		if best.found {
			pivot := space.Split(e.lo, e.hi, bestFeature, best.threshold)
			left, right := t.Split(e.node)
			t.SetSplit(e.node, bestFeature, best.threshold)

			stack = append(stack,
				stackEntry{node: left, lo: e.lo, hi: pivot, depth: e.depth + 1},
				stackEntry{node: right, lo: pivot, hi: e.hi, depth: e.depth + 1},
			)
			continue
		}

		setLeaf(t, e.node, numClasses, base)
	}

	return t
}

// setLeaf commits a node as a leaf, computing its value from the range's
// already-accumulated impurity statistics: classifier leaves normalize the
// per-class weighted counts into a probability chunk, regressor leaves
// store the weighted mean directly.
func setLeaf(t *Tree, node uint32, numClasses int, base impurity.Accumulator) {
	if numClasses > 0 {
		g := base.(*impurity.Gini)
		total := float64(g.Weight())
		probs := make([]float64, numClasses)
		if total > 0 {
			for k, w := range g.Bins() {
				probs[k] = float64(w) / total
			}
		}
		t.AppendLeafProbs(node, probs)
		return
	}

	m := base.(*impurity.MSE)
	t.SetLeafValue(node, m.Mean())
}

// shuffle performs an in-place Fisher-Yates shuffle of perm using rng.
func shuffle(perm []int, rng *rand.Rand) {
	for i := len(perm) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
}
