package forest

import (
	"github.com/savthe/rafor/dataset"
	"github.com/savthe/rafor/tree"
)

// oobAccumulator gathers out-of-bag predictions across the trees one
// worker fits. Classifier ensembles accumulate per-class vote counts;
// regressor ensembles accumulate a running sum and a draw count per
// sample. Both live side by side so Train needs only one accumulator type
// regardless of tree kind.
type oobAccumulator struct {
	classVotes [][]uint32 // nSamples x numClasses, classifiers only
	sum        []float64  // nSamples, regressors only
	count      []uint32   // nSamples, regressors only
}

func newOOBAccumulator(numSamples, numClasses int) *oobAccumulator {
	a := &oobAccumulator{}
	if numClasses > 0 {
		a.classVotes = make([][]uint32, numSamples)
		for i := range a.classVotes {
			a.classVotes[i] = make([]uint32, numClasses)
		}
	} else {
		a.sum = make([]float64, numSamples)
		a.count = make([]uint32, numSamples)
	}
	return a
}

// observe records tree t's predictions for every sample weights excluded
// from its bootstrap draw (weight == 0, i.e. out-of-bag for this tree).
func (a *oobAccumulator) observe(view *dataset.Matrix, t *tree.Tree, weights []uint32, numClasses int) {
	for s, w := range weights {
		if w != 0 {
			continue
		}
		featureVal := func(f int) float32 { return view.FeatureVal(s, f) }
		if numClasses > 0 {
			probs := t.PredictProbs(featureVal)
			best, bestP := 0, -1.0
			for k, p := range probs {
				if p > bestP {
					bestP = p
					best = k
				}
			}
			a.classVotes[s][best]++
		} else {
			a.sum[s] += t.PredictValue(featureVal)
			a.count[s]++
		}
	}
}

func (a *oobAccumulator) merge(other *oobAccumulator) {
	if other == nil {
		return
	}
	if a.classVotes != nil {
		for i, row := range other.classVotes {
			for k, v := range row {
				a.classVotes[i][k] += v
			}
		}
	} else {
		for i, v := range other.sum {
			a.sum[i] += v
		}
		for i, v := range other.count {
			a.count[i] += v
		}
	}
}

// finish reduces the accumulated votes/sums into OOBStats. targets holds
// the raw per-sample training targets (class codes as float32 for
// classifiers, real values for regressors); a sample that was in every
// tree's bootstrap draw (never out-of-bag) contributes nothing and is
// skipped.
func (a *oobAccumulator) finish(targets []float32, numClasses int) *OOBStats {
	if numClasses > 0 {
		confMat := make([][]int, numClasses)
		for i := range confMat {
			confMat[i] = make([]int, numClasses)
		}
		total, correct := 0, 0
		for s, votes := range a.classVotes {
			seen := false
			best, bestV := 0, uint32(0)
			for k, v := range votes {
				if v > 0 {
					seen = true
				}
				if v > bestV {
					bestV = v
					best = k
				}
			}
			if !seen {
				continue
			}
			actual := int(targets[s])
			confMat[actual][best]++
			total++
			if actual == best {
				correct++
			}
		}
		acc := 0.0
		if total > 0 {
			acc = float64(correct) / float64(total)
		}
		return &OOBStats{ConfusionMatrix: confMat, Accuracy: acc}
	}

	var sumSq float64
	var total int
	for s, c := range a.count {
		if c == 0 {
			continue
		}
		pred := a.sum[s] / float64(c)
		diff := float64(targets[s]) - pred
		sumSq += diff * diff
		total++
	}
	mse := 0.0
	if total > 0 {
		mse = sumSq / float64(total)
	}
	return &OOBStats{MSE: mse}
}
