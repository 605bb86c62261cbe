package tree

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/savthe/rafor/dataset"
)

func fitClassifier(t *testing.T, data []float32, numFeatures int, labels []float32, numClasses int, cfg Config) *Tree {
	t.Helper()
	view := dataset.NewMatrix(data, numFeatures)
	weights := make([]uint32, len(labels))
	for i := range weights {
		weights[i] = 1
	}
	space := NewSpace(view, labels, weights)
	return Fit(space, numFeatures, numClasses, cfg, rand.New(rand.NewSource(1)))
}

func TestFitTinyClassifierOverfit(t *testing.T) {
	// External labels [1,5,1] dense-encode to codes [0,1,0].
	data := []float32{0.7, 0.0, 0.8, 1.0, 0.7, 0.0}
	codes := []float32{0, 1, 0}

	cfg := DefaultConfig(Gini)
	tr := fitClassifier(t, data, 2, codes, 2, cfg)

	view := dataset.NewMatrix(data, 2)
	for s := 0; s < 3; s++ {
		probs := tr.PredictProbs(func(f int) float32 { return view.FeatureVal(s, f) })
		best := 0
		for k, p := range probs {
			if p > probs[best] {
				best = k
			}
		}
		if float32(best) != codes[s] {
			t.Errorf("sample %d: expected predicted code %v, got %v", s, codes[s], best)
		}
	}
}

func TestFitPureLeafSingleValue(t *testing.T) {
	data := []float32{0.0, 1.0, 2.0}
	codes := []float32{0, 0, 0}

	cfg := DefaultConfig(Gini)
	tr := fitClassifier(t, data, 1, codes, 1, cfg)

	if !tr.Nodes[0].isLeaf() {
		t.Error("expected an all-identical-target fit to produce a single-leaf tree")
	}

	probs := tr.PredictProbs(func(int) float32 { return 42.0 })
	if probs[0] != 1.0 {
		t.Error("expected the single class's probability to be 1, got:", probs[0])
	}
}

func TestFitRegressorAveragesDuplicateRows(t *testing.T) {
	data := []float32{0.7, 0.0, 0.8, 1.0, 0.7, 0.0}
	targets := []float32{1.0, 0.5, 0.2}

	view := dataset.NewMatrix(data, 2)
	weights := []uint32{1, 1, 1}
	space := NewSpace(view, targets, weights)

	cfg := DefaultConfig(MSE)
	tr := Fit(space, 2, 0, cfg, rand.New(rand.NewSource(1)))

	got := tr.PredictValue(func(f int) float32 {
		return []float32{0.7, 0.0}[f]
	})
	want := (float64(targets[0]) + float64(targets[2])) / 2.0
	if got < want-1e-9 || got > want+1e-9 {
		t.Error("expected averaged leaf value:", want, "got:", got)
	}
}

func TestFitOverfitsWithUnlimitedDepth(t *testing.T) {
	// No duplicated feature rows: every row distinguishable by feature 0.
	n := 30
	data := make([]float32, n)
	codes := make([]float32, n)
	for i := 0; i < n; i++ {
		data[i] = float32(i)
		codes[i] = float32(i % 3)
	}

	cfg := DefaultConfig(Gini)
	cfg.MinSamplesSplit = 2
	tr := fitClassifier(t, data, 1, codes, 3, cfg)

	view := dataset.NewMatrix(data, 1)
	for s := 0; s < n; s++ {
		probs := tr.PredictProbs(func(f int) float32 { return view.FeatureVal(s, f) })
		best := 0
		for k, p := range probs {
			if p > probs[best] {
				best = k
			}
		}
		if float32(best) != codes[s] {
			t.Errorf("expected exact training accuracy at sample %d, predicted %d want %v", s, best, codes[s])
		}
	}
}

func TestFitIgnoresConstantAppendedFeature(t *testing.T) {
	n := 12
	base := make([]float32, n)
	codes := make([]float32, n)
	for i := 0; i < n; i++ {
		base[i] = float32(i)
		codes[i] = float32(i % 2)
	}

	cfg := DefaultConfig(Gini)
	cfg.MaxFeaturesMode = AllFeatures

	without := fitClassifier(t, base, 1, codes, 2, cfg)

	withConst := make([]float32, 0, n*2)
	for i := 0; i < n; i++ {
		withConst = append(withConst, base[i], 9.0)
	}
	plus := fitClassifier(t, withConst, 2, codes, 2, cfg)

	viewA := dataset.NewMatrix(base, 1)
	viewB := dataset.NewMatrix(withConst, 2)
	for s := 0; s < n; s++ {
		pa := without.PredictProbs(func(f int) float32 { return viewA.FeatureVal(s, f) })
		pb := plus.PredictProbs(func(f int) float32 { return viewB.FeatureVal(s, f) })
		for k := range pa {
			if pa[k] != pb[k] {
				t.Errorf("sample %d class %d: expected identical probabilities with/without constant column, got %v vs %v", s, k, pa[k], pb[k])
			}
		}
	}
}

func TestFitSplitsCleanlyOnULPAdjacentValues(t *testing.T) {
	a := float32(0.5)
	b := math.Float32frombits(math.Float32bits(a) + 1) // one ULP above a
	data := []float32{a, b}
	codes := []float32{0, 1}

	view := dataset.NewMatrix(data, 1)
	weights := []uint32{1, 1}

	done := make(chan *Tree, 1)
	go func() {
		space := NewSpace(view, codes, weights)
		done <- Fit(space, 1, 2, DefaultConfig(Gini), rand.New(rand.NewSource(1)))
	}()

	var tr *Tree
	select {
	case tr = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Fit did not terminate on a two-sample, one-ULP-apart impure node")
	}

	if tr.Nodes[0].isLeaf() {
		t.Fatal("expected the root to split on ULP-adjacent values, not collapse to a single leaf")
	}

	for s, want := range codes {
		probs := tr.PredictProbs(func(f int) float32 { return view.FeatureVal(s, f) })
		best := 0
		for k, p := range probs {
			if p > probs[best] {
				best = k
			}
		}
		if float32(best) != want {
			t.Errorf("sample %d: expected predicted code %v, got %v", s, want, best)
		}
	}
}

func TestFitContinuesScanningPastExhaustedMaxFeatures(t *testing.T) {
	// Feature 0 is constant (no legal split); feature 1 separates the two
	// classes. MaxFeaturesK=1 means only one feature is budgeted per node,
	// but the budget must extend past a constant feature that yields no
	// legal split rather than stopping the node as a leaf.
	data := []float32{5.0, 0.0, 5.0, 10.0}
	codes := []float32{0, 1}

	cfg := DefaultConfig(Gini)
	cfg.MaxFeaturesMode = ExactFeatures
	cfg.MaxFeaturesK = 1
	tr := fitClassifier(t, data, 2, codes, 2, cfg)

	if tr.Nodes[0].isLeaf() {
		t.Fatal("expected the trainer to keep scanning past the exhausted feature budget and split on feature 1")
	}

	view := dataset.NewMatrix(data, 2)
	for s, want := range codes {
		probs := tr.PredictProbs(func(f int) float32 { return view.FeatureVal(s, f) })
		best := 0
		for k, p := range probs {
			if p > probs[best] {
				best = k
			}
		}
		if float32(best) != want {
			t.Errorf("sample %d: expected predicted code %v, got %v", s, want, best)
		}
	}
}

func TestResolveMaxFeatures(t *testing.T) {
	cases := []struct {
		mode MaxFeaturesMode
		k    int
		f    int
		want int
	}{
		{SQRTFeatures, 0, 16, 4},
		{Log2Features, 0, 8, 3},
		{ExactFeatures, 5, 10, 5},
		{ExactFeatures, 100, 10, 10},
		{AllFeatures, 0, 7, 7},
	}
	for _, c := range cases {
		cfg := Config{MaxFeaturesMode: c.mode, MaxFeaturesK: c.k}
		if got := cfg.ResolveMaxFeatures(c.f); got != c.want {
			t.Errorf("mode=%v k=%d f=%d: expected %d, got %d", c.mode, c.k, c.f, c.want, got)
		}
	}
}
