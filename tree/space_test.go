package tree

import (
	"testing"

	"github.com/savthe/rafor/dataset"
)

func TestNewSpaceExcludesZeroWeight(t *testing.T) {
	view := dataset.NewMatrix([]float32{1, 2, 3, 4, 5}, 1)
	targets := []float32{10, 20, 30, 40, 50}
	weights := []uint32{1, 0, 2, 0, 1}

	sp := NewSpace(view, targets, weights)
	if sp.Len() != 3 {
		t.Fatalf("expected 3 weight>0 samples, got %d", sp.Len())
	}

	for i, want := range []int32{0, 2, 4} {
		if sp.Samples(0, sp.Len())[i] != want {
			t.Errorf("sample %d: expected index %d, got %d", i, want, sp.Samples(0, sp.Len())[i])
		}
	}
}

func TestSplitPartitionsByThreshold(t *testing.T) {
	// Single feature, values 0..9.
	rowMajor := make([]float32, 10)
	targets := make([]float32, 10)
	weights := make([]uint32, 10)
	for i := range rowMajor {
		rowMajor[i] = float32(i)
		targets[i] = float32(i)
		weights[i] = 1
	}
	view := dataset.NewMatrix(rowMajor, 1)
	sp := NewSpace(view, targets, weights)

	pivot := sp.Split(0, sp.Len(), 0, 4.5)

	for i := 0; i < pivot; i++ {
		if sp.FeatureVal(i, 0) > 4.5 {
			t.Errorf("left side index %d has feature value %v > threshold", i, sp.FeatureVal(i, 0))
		}
	}
	for i := pivot; i < sp.Len(); i++ {
		if sp.FeatureVal(i, 0) <= 4.5 {
			t.Errorf("right side index %d has feature value %v <= threshold", i, sp.FeatureVal(i, 0))
		}
	}
	if pivot != 5 {
		t.Error("expected pivot at 5 (values 0..4 left of 4.5), got:", pivot)
	}
}

func TestSplitKeepsSamplesAndTargetsPaired(t *testing.T) {
	rowMajor := []float32{0, 1, 2, 3}
	targets := []float32{100, 101, 102, 103}
	weights := []uint32{1, 1, 1, 1}
	view := dataset.NewMatrix(rowMajor, 1)
	sp := NewSpace(view, targets, weights)

	sp.Split(0, sp.Len(), 0, 1.5)

	for i, id := range sp.Samples(0, sp.Len()) {
		want := weightedTarget{target: float32(id) + 100, weight: 1}
		got := sp.Targets(0, sp.Len())[i]
		if got != want {
			t.Errorf("index %d: sample %d paired with target %+v, expected %+v", i, id, got, want)
		}
	}
}
