package forest

import (
	"sync"
	"sync/atomic"

	"github.com/savthe/rafor/dataset"
)

// Predict evaluates every tree in the ensemble against view in parallel
// and returns the per-sample average. The result has length
// view.NumSamples()*P, where P is 1 for a regressor ensemble or
// NumClasses for a classifier ensemble (an averaged probability vector per
// sample, decoded by the caller).
//
// With one worker, trees are summed serially into the shared result. With
// more than one, each worker owns a private zero buffer and pulls tree
// indices from the same kind of atomic counter Train uses; all private
// buffers are summed into the shared result after every worker joins, and
// only then is the result divided by the tree count — the reduction
// across workers stays single-threaded, with no shared-buffer locking.
func (e *Ensemble) Predict(view *dataset.Matrix, numThreads int) []float64 {
	if numThreads < 1 {
		panic("forest: numThreads must be >= 1")
	}

	outWidth := 1
	if e.NumClasses > 0 {
		outWidth = e.NumClasses
	}
	n := view.NumSamples()
	result := make([]float64, n*outWidth)

	accumulate := func(dst []float64, treeIdx int) {
		t := e.Trees[treeIdx]
		for s := 0; s < n; s++ {
			featureVal := func(f int) float32 { return view.FeatureVal(s, f) }
			if e.NumClasses > 0 {
				probs := t.PredictProbs(featureVal)
				base := s * outWidth
				for k, p := range probs {
					dst[base+k] += p
				}
			} else {
				dst[s] += t.PredictValue(featureVal)
			}
		}
	}

	if numThreads == 1 {
		for i := range e.Trees {
			accumulate(result, i)
		}
	} else {
		var next atomic.Uint64
		var wg sync.WaitGroup
		privates := make([][]float64, numThreads)
		wg.Add(numThreads)

		for w := 0; w < numThreads; w++ {
			w := w
			go func() {
				defer wg.Done()
				private := make([]float64, n*outWidth)
				for {
					id := next.Add(1) - 1
					if id >= uint64(len(e.Trees)) {
						break
					}
					accumulate(private, int(id))
				}
				privates[w] = private
			}()
		}
		wg.Wait()

		for _, private := range privates {
			for i, v := range private {
				result[i] += v
			}
		}
	}

	t := float64(len(e.Trees))
	for i := range result {
		result[i] /= t
	}

	return result
}
