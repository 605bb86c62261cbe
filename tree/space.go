package tree

import "github.com/savthe/rafor/dataset"

// Space is a per-tree mutable working set: a vector of sample indices into
// the dataset paired with a parallel vector of weighted targets, permuted
// together as the tree grows. A node under construction owns a contiguous
// range [lo, hi) of these vectors; every node's range is a slice of the
// same two backing arrays rather than an allocated subset, which keeps
// fit-time memory at O(M) regardless of tree depth.
//
// Samples with weight 0 (excluded by bootstrap resampling) are omitted at
// construction time, so both vectors have length M = count(w > 0) <= N.
type Space struct {
	view    *dataset.Matrix
	samples []int32
	targets []weightedTarget
}

// NewSpace builds a Space from a dataset view, raw per-sample targets, and
// per-sample weights. len(targets) == len(weights) == view.NumSamples().
func NewSpace(view *dataset.Matrix, targets []float32, weights []uint32) *Space {
	if len(targets) != view.NumSamples() || len(weights) != view.NumSamples() {
		panic("tree: targets/weights length must equal the dataset's sample count")
	}

	samples := make([]int32, 0, view.NumSamples())
	wt := make([]weightedTarget, 0, view.NumSamples())
	for i, w := range weights {
		if w == 0 {
			continue
		}
		samples = append(samples, int32(i))
		wt = append(wt, weightedTarget{target: targets[i], weight: w})
	}

	return &Space{view: view, samples: samples, targets: wt}
}

// Len returns M, the number of (weight > 0) samples in the space.
func (s *Space) Len() int { return len(s.samples) }

// Samples borrows the sample-index slice over [lo, hi).
func (s *Space) Samples(lo, hi int) []int32 { return s.samples[lo:hi] }

// Targets borrows the weighted-target slice over [lo, hi).
func (s *Space) Targets(lo, hi int) []weightedTarget { return s.targets[lo:hi] }

// FeatureVal forwards to the dataset view for the sample at position idx
// within the space's arrays (not the original dataset row id).
func (s *Space) FeatureVal(idx int, feature int) float32 {
	return s.view.FeatureVal(int(s.samples[idx]), feature)
}

// Split performs the in-place two-way partition that is the central memory
// trick of the training space: a standard two-pointer scheme over
// [lo, hi), swapping both the sample and weighted-target arrays whenever
// feature_val(samples[i], feature) > threshold. Returns the pivot; after
// the call every index in [lo, pivot) satisfies feature_val <= threshold
// and every index in [pivot, hi) satisfies feature_val > threshold. Order
// within each side is not preserved.
func (s *Space) Split(lo, hi, feature int, threshold float32) (pivot int) {
	i, j := lo, hi
	for i < j {
		if s.view.FeatureVal(int(s.samples[i]), feature) > threshold {
			j--
			s.samples[i], s.samples[j] = s.samples[j], s.samples[i]
			s.targets[i], s.targets[j] = s.targets[j], s.targets[i]
		} else {
			i++
		}
	}
	return i
}
