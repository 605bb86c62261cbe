// Package forest implements the bootstrap-resampled ensemble trainer and
// the parallel ensemble predictor. Most of the algorithms here follow
// Louppe, G. (2014) "Understanding Random Forests: From Theory to
// Practice", chapter 4.
package forest

import (
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/savthe/rafor/dataset"
	"github.com/savthe/rafor/tree"
)

// EnsembleConfig holds the random-forest-only hyperparameters layered on
// top of a per-tree tree.Config.
type EnsembleConfig struct {
	Tree       tree.Config
	NumTrees   int
	NumThreads int
	Seed       int64
	// ComputeOOB requests out-of-bag accuracy/error estimation alongside
	// Train.
	ComputeOOB bool
}

// DefaultEnsembleConfig returns the ensemble defaults: 100 trees, 1
// worker, master seed 42, SQRT feature subsampling (the per-tree default
// differs from a lone decision tree's AllFeatures).
func DefaultEnsembleConfig(metric tree.Metric) EnsembleConfig {
	tc := tree.DefaultConfig(metric)
	tc.MaxFeaturesMode = tree.SQRTFeatures
	return EnsembleConfig{
		Tree:       tc,
		NumTrees:   100,
		NumThreads: 1,
		Seed:       42,
	}
}

// Ensemble is an ordered vector of trees, indexed by tree id, plus the
// shared feature count every tree is trained over.
type Ensemble struct {
	Trees       []*tree.Tree
	NumFeatures int
	NumClasses  int // 0 for a regressor ensemble
	// OOB holds out-of-bag estimates gathered during Train when
	// EnsembleConfig.ComputeOOB is set; nil otherwise.
	OOB *OOBStats
}

// OOBStats holds out-of-bag accuracy/error estimates computed during
// Train, covering both classifier and regressor ensembles. For a
// classifier ensemble, ConfusionMatrix and Accuracy are populated; for a
// regressor ensemble, MSE is populated and the other two fields are left
// zero.
type OOBStats struct {
	ConfusionMatrix [][]int
	Accuracy        float64
	MSE             float64
}

// Train bootstraps NumTrees trees across NumThreads workers sharing a
// single atomic task counter. targets holds the raw (unweighted)
// per-sample training targets: class codes (as float32) for classifiers,
// real values for regressors.
//
// Per-tree seeds are pre-derived from the master seed on the calling
// goroutine before any worker starts, so the seed assigned to tree i is
// fixed independent of thread scheduling. Trees are written directly into
// their id-indexed slot in the result slice rather than appended to
// per-worker buffers and concatenated, which gives the same "sorted by
// id" determinism without a second sort pass.
func Train(view *dataset.Matrix, targets []float32, cfg EnsembleConfig) *Ensemble {
	if cfg.NumThreads < 1 {
		panic("forest: NumThreads must be >= 1")
	}
	if cfg.NumTrees < 1 {
		panic("forest: NumTrees must be >= 1")
	}

	numFeatures := view.NumFeatures()
	numSamples := view.NumSamples()
	numClasses := 0
	if cfg.Tree.Metric == tree.Gini {
		numClasses = inferNumClasses(targets)
	}

	master := rand.New(rand.NewSource(cfg.Seed))
	seeds := make([]int64, cfg.NumTrees)
	for i := range seeds {
		seeds[i] = master.Int63()
	}

	trees := make([]*tree.Tree, cfg.NumTrees)

	var oobAcc *oobAccumulator
	if cfg.ComputeOOB {
		oobAcc = newOOBAccumulator(numSamples, numClasses)
	}

	var next atomic.Uint64
	var wg sync.WaitGroup
	privateOOB := make([]*oobAccumulator, cfg.NumThreads)
	wg.Add(cfg.NumThreads)

	for w := 0; w < cfg.NumThreads; w++ {
		w := w
		go func() {
			defer wg.Done()
			var private *oobAccumulator
			if cfg.ComputeOOB {
				private = newOOBAccumulator(numSamples, numClasses)
			}
			for {
				id := next.Add(1) - 1
				if id >= uint64(cfg.NumTrees) {
					break
				}

				rng := rand.New(rand.NewSource(seeds[id]))
				weights := bootstrapWeights(numSamples, rng)
				space := tree.NewSpace(view, targets, weights)
				t := tree.Fit(space, numFeatures, numClasses, cfg.Tree, rng)
				trees[id] = t

				if cfg.ComputeOOB {
					private.observe(view, t, weights, numClasses)
				}
			}
			privateOOB[w] = private
		}()
	}
	wg.Wait()

	var oobStats *OOBStats
	if cfg.ComputeOOB {
		for _, p := range privateOOB {
			oobAcc.merge(p)
		}
		oobStats = oobAcc.finish(targets, numClasses)
	}

	return &Ensemble{Trees: trees, NumFeatures: numFeatures, NumClasses: numClasses, OOB: oobStats}
}

// bootstrapWeights draws n uniform indices from [0, n) with replacement
// and returns the resulting per-sample multiplicities: weights[i] is the
// number of times i was drawn, 0 meaning i is excluded from this tree.
func bootstrapWeights(n int, rng *rand.Rand) []uint32 {
	weights := make([]uint32, n)
	for i := 0; i < n; i++ {
		weights[rng.Intn(n)]++
	}
	return weights
}

func inferNumClasses(targets []float32) int {
	max := 0
	for _, v := range targets {
		if k := int(v); k+1 > max {
			max = k + 1
		}
	}
	return max
}
